package model

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// EventStore is the aggregate root for one blockchain transaction. It is
// created once per transaction, mutated only by appends (plus the bounded
// bundle rewrite), and discarded after the report is read out. No
// cross-transaction state exists.
type EventStore struct {
	TxHash           common.Hash        `json:"tx_hash"`
	BlockNumber      uint64             `json:"block_number"`
	Timestamp        uint64             `json:"timestamp"`
	Transfers        []*Transfer        `json:"transfers"`
	Bundles          []*Bundle          `json:"bundles"`
	Markers          []Marker           `json:"markers"`
	TransactionTypes []*TransactionType `json:"transaction_types"`
}

// NewEventStore builds an empty store for one transaction.
func NewEventStore(txHash common.Hash, blockNumber, timestamp uint64) *EventStore {
	return &EventStore{
		TxHash:      txHash,
		BlockNumber: blockNumber,
		Timestamp:   timestamp,
	}
}

// AppendTransfer assigns the transfer its ordinal id and appends it.
func (s *EventStore) AppendTransfer(t *Transfer) {
	t.ID = TransferID(s.TxHash, t.LogIndex, len(s.Transfers))
	s.Transfers = append(s.Transfers, t)
}

// AppendMarker records a marker event.
func (s *EventStore) AppendMarker(m Marker) {
	s.Markers = append(s.Markers, m)
}

// FirstUnbundled returns the index of the first transfer without a bundle
// id, or -1 if every transfer is bundled.
func (s *EventStore) FirstUnbundled() int {
	for i, t := range s.Transfers {
		if t.BundleID == "" {
			return i
		}
	}
	return -1
}

// FirstUntypedBundle returns the type-matching frontier: the index just
// after the last bundle carrying a transaction type, or 0 when none does.
// Untyped bundles before that point were skipped by earlier matches and
// stay skipped.
func (s *EventStore) FirstUntypedBundle() int {
	for i := len(s.Bundles); i > 0; i-- {
		if s.Bundles[i-1].TransactionTypeID != "" {
			return i
		}
	}
	return 0
}

// BundleTransfers returns the transfers owned by the bundle, in emission
// order.
func (s *EventStore) BundleTransfers(b *Bundle) []*Transfer {
	return s.Transfers[b.StartIndex:b.EndIndex]
}

// TransferID derives a stable transfer identifier. The ordinal position
// disambiguates batch entries sharing one log index.
func TransferID(txHash common.Hash, logIndex uint64, ordinal int) string {
	return fmt.Sprintf("%s:%03d:%02d", txHash.Hex(), logIndex, ordinal)
}
