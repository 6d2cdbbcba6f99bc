package chainalysis

import (
	"cmp"
	"maps"
	"slices"

	"github.com/0xsequence/go-sequence/lib/prototyp"
)

// AddressSet is a set of addresses keyed by their lowercase 0x form.
type AddressSet map[prototyp.Hash]struct{}

func NewAddressSet(addrs ...string) AddressSet {
	set := AddressSet{}
	set.Add(addrs...)
	return set
}

func (s AddressSet) Add(addrs ...string) {
	for _, addr := range addrs {
		s[prototyp.HashFromString(addr)] = struct{}{}
	}
}

func (s AddressSet) Remove(addrs ...string) {
	for _, addr := range addrs {
		delete(s, prototyp.HashFromString(addr))
	}
}

func (s AddressSet) Contains(addr string) bool {
	_, ok := s[prototyp.HashFromString(addr)]
	return ok
}

// Sorted returns the addresses in ascending order.
func (s AddressSet) Sorted() []prototyp.Hash {
	return slices.Sorted(maps.Keys(s))
}

type SanctionEventKind int

const (
	SanctionAdded SanctionEventKind = iota
	SanctionRemoved
)

func (k SanctionEventKind) String() string {
	switch k {
	case SanctionAdded:
		return SanctionedAddressesAddedEvent
	case SanctionRemoved:
		return SanctionedAddressesRemovedEvent
	default:
		return "unknown"
	}
}

// SanctionEvent is one decoded emission of the oracle.
type SanctionEvent struct {
	Kind      SanctionEventKind `json:"kind"`
	BlockNum  uint64            `json:"blockNum"`
	BlockHash string            `json:"blockHash"`
	LogIndex  uint              `json:"logIndex"`
	Addrs     []prototyp.Hash   `json:"addrs"`
}

// Reconcile replays events in chain order, one address at a time: an added address
// is in the set until a later removed event names it, and a later added event
// brings it back.
func Reconcile(events []SanctionEvent) AddressSet {
	ordered := slices.Clone(events)
	slices.SortStableFunc(ordered, func(a, b SanctionEvent) int {
		if c := cmp.Compare(a.BlockNum, b.BlockNum); c != 0 {
			return c
		}
		return cmp.Compare(a.LogIndex, b.LogIndex)
	})

	set := AddressSet{}
	for _, event := range ordered {
		for _, addr := range event.Addrs {
			switch event.Kind {
			case SanctionAdded:
				set.Add(addr.String())
			case SanctionRemoved:
				set.Remove(addr.String())
			}
		}
	}
	return set
}
