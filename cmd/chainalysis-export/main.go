package main

import (
	"context"
	"os"

	chainalysis "github.com/0xsequence/chainalysis-export"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
)

const (
	explorerAPIKeyFlag = "etherscan-api-key"
	providerAPIKeyFlag = "infura-api-key"
)

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if err := newApp().Run(context.Background(), os.Args); err != nil {
		log.Fatal().Err(err).Msg("chainalysis-export failed")
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:        "chainalysis-export",
		Usage:       "chainalysis-export --etherscan-api-key KEY --infura-api-key KEY",
		Description: "Writes the hacker investigation and the Chainalysis oracle sanctioned addresses to CSV files.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     explorerAPIKeyFlag,
				Aliases:  []string{"EtherscanApiKey"},
				Usage:    "block explorer API key",
				Required: true,
			},
			&cli.StringFlag{
				Name:     providerAPIKeyFlag,
				Aliases:  []string{"infuraApiKey"},
				Usage:    "node provider API key",
				Required: true,
			},
		},
		Action: run,
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	cfg, err := chainalysis.LoadConfig()
	if err != nil {
		return err
	}
	cfg.ExplorerAPIKey = cmd.String(explorerAPIKeyFlag)
	cfg.ProviderAPIKey = cmd.String(providerAPIKeyFlag)

	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(level)

	api := chainalysis.NewExplorerClient(cfg)

	if _, err := chainalysis.InvestigateTransactions(ctx, cfg, api); err != nil {
		return err
	}

	src, err := chainalysis.NewSanctionSource(cfg, api)
	if err != nil {
		return err
	}
	if _, err := chainalysis.ExtractSanctionedAddresses(ctx, cfg, src); err != nil {
		return err
	}

	return nil
}
