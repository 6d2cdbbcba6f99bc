package chainalysis

import (
	"encoding/csv"
	"os"
	"slices"

	"github.com/pkg/errors"
)

var sanctionsHeader = []string{"Sanctioned Addresses"}

// WriteSanctionedAddressesToCSV overwrites path with a one column header and one
// address per row, sorted.
func WriteSanctionedAddressesToCSV(path string, set AddressSet) error {
	addrs := set.Sorted()
	rows := make([][]string, 0, len(addrs))
	for _, addr := range addrs {
		rows = append(rows, []string{addr.String()})
	}
	return writeCSV(path, sanctionsHeader, rows)
}

// writeCSV overwrites path. The file is not written atomically, a failure midway
// leaves a partial file behind.
func writeCSV(path string, header []string, rows [][]string) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", path)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "failed to close %s", path)
		}
	}()

	w := csv.NewWriter(file)
	if err := w.Write(slices.Clone(header)); err != nil {
		return errors.Wrapf(err, "failed to write header to %s", path)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return errors.Wrapf(err, "failed to write row to %s", path)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.Wrapf(err, "failed to flush %s", path)
	}
	return nil
}
