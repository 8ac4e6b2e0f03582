package model

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Bundle owns a contiguous run of Transfers classified under one bundle
// name. StartIndex/EndIndex are positions into EventStore.Transfers
// (half-open range); StartLogIndex/EndLogIndex are the log positions of the
// first and last owned transfer.
type Bundle struct {
	BundleID      string `json:"bundle_id"`
	Name          string `json:"bundle_name"`
	StartLogIndex uint64 `json:"start_log_index"`
	EndLogIndex   uint64 `json:"end_log_index"`
	StartIndex    int    `json:"start_index"`
	EndIndex      int    `json:"end_index"`
	Rewritten     bool   `json:"rewritten,omitempty"`

	TransactionTypeID string `json:"transaction_type_id,omitempty"`
}

// BundleID derives the stable bundle identifier from the transaction hash,
// the owned log position range, and the bundle name. No counter is needed:
// the id is a pure function of its inputs.
func BundleID(txHash common.Hash, startLogIndex, endLogIndex uint64, name string) string {
	return fmt.Sprintf("%s:%03d:%03d:%s", txHash.Hex(), startLogIndex, endLogIndex, name)
}

// Marker records a non-transfer event of interest. It is read-only once
// recorded and is used only to gate transaction-type pattern termination.
type Marker struct {
	Name     string   `json:"name"`
	LogIndex uint64   `json:"log_index"`
	Event    RawEvent `json:"event"`
}

// TransactionType is the top-level classification of a contiguous run of
// Bundles, plus the structured fields its extractor produced.
type TransactionType struct {
	TransactionTypeID string                 `json:"transaction_type_id"`
	Name              string                 `json:"transaction_type"`
	StartBundle       int                    `json:"start_bundle"`
	EndBundle         int                    `json:"end_bundle"`
	Marker            *Marker                `json:"marker,omitempty"`
	Fields            map[string]interface{} `json:"fields,omitempty"`
}

// TransactionTypeID derives the stable transaction-type identifier.
func TransactionTypeID(txHash common.Hash, startLogIndex uint64, name string) string {
	return fmt.Sprintf("%s:%03d:%s", txHash.Hex(), startLogIndex, name)
}
