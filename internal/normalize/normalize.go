package normalize

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"ledgerscope/internal/env"
	"ledgerscope/internal/model"
)

// Event names the normalizer understands.
const (
	EventTransfer       = "Transfer"
	EventTransferSingle = "TransferSingle"
	EventTransferBatch  = "TransferBatch"
)

var zeroAddress common.Address

// Normalizer turns raw ledger events into canonical Transfer records.
type Normalizer struct {
	env *env.Environment
}

// NewNormalizer builds a normalizer over the given environment metadata.
func NewNormalizer(environment *env.Environment) *Normalizer {
	return &Normalizer{env: environment}
}

// IsTransferEvent reports whether the event name carries asset movements.
func IsTransferEvent(name string) bool {
	switch name {
	case EventTransfer, EventTransferSingle, EventTransferBatch:
		return true
	}
	return false
}

// Transfers normalizes one raw event into zero or more Transfer records.
// A batch event yields one Transfer per sub-entry, in array order.
// Fungible events from addresses that are not ledger assets are skipped.
func (n *Normalizer) Transfers(txn model.RawTransaction, event model.RawEvent) ([]*model.Transfer, error) {
	switch event.Name {
	case EventTransfer:
		return n.fungible(txn, event)
	case EventTransferSingle, EventTransferBatch:
		return n.semiFungible(txn, event)
	}
	return nil, nil
}

func (n *Normalizer) fungible(txn model.RawTransaction, event model.RawEvent) ([]*model.Transfer, error) {
	info, ok := n.env.AssetInfo(event.Address)
	if !ok {
		return nil, nil
	}

	transfer := n.newTransfer(txn, event)
	transfer.Asset = event.Address
	transfer.AssetType = info.Type
	transfer.AssetIface = model.InterfaceFungible
	transfer.Underlying = info.Currency
	transfer.Value = copyValue(event.Value)
	return []*model.Transfer{transfer}, nil
}

func (n *Normalizer) semiFungible(txn model.RawTransaction, event model.RawEvent) ([]*model.Transfer, error) {
	if len(event.IDs) != len(event.Values) {
		return nil, fmt.Errorf("batch length mismatch: %d ids, %d values", len(event.IDs), len(event.Values))
	}

	out := make([]*model.Transfer, 0, len(event.IDs))
	for i, id := range event.IDs {
		decoded, err := DecodeAssetID(id)
		if err != nil {
			return nil, fmt.Errorf("log %d entry %d: %w", event.LogIndex, i, err)
		}

		transfer := n.newTransfer(txn, event)
		transfer.Asset = event.Address
		transfer.AssetType = decoded.Type
		transfer.AssetIface = model.InterfaceSemiFungible
		transfer.Underlying = decoded.Currency
		transfer.Maturity = decoded.Maturity
		transfer.Vault = decoded.Vault
		transfer.Value = copyValue(event.Values[i])
		if decoded.IsDebt {
			transfer.Value.Neg(transfer.Value)
		}
		out = append(out, transfer)
	}
	return out, nil
}

func (n *Normalizer) newTransfer(txn model.RawTransaction, event model.RawEvent) *model.Transfer {
	return &model.Transfer{
		BlockNumber: txn.BlockNumber,
		Timestamp:   txn.Timestamp,
		TxHash:      txn.TxHash,
		LogIndex:    event.LogIndex,
		From:        event.From,
		To:          event.To,
		Operator:    event.Operator,
		Kind:        transferKind(event.From, event.To),
		FromSystem:  n.env.SystemAccount(event.From),
		ToSystem:    n.env.SystemAccount(event.To),
	}
}

// transferKind is derived purely from the zero address appearing as sender
// or receiver.
func transferKind(from, to common.Address) model.TransferKind {
	switch {
	case from == zeroAddress:
		return model.KindMint
	case to == zeroAddress:
		return model.KindBurn
	}
	return model.KindTransfer
}

func copyValue(value *big.Int) *big.Int {
	if value == nil {
		return big.NewInt(0)
	}
	return new(big.Int).Set(value)
}
