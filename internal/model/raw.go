package model

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// RawTransaction is the already-decoded event log of one blockchain
// transaction, the pipeline's only per-transaction input.
type RawTransaction struct {
	TxHash      common.Hash `json:"tx_hash"`
	BlockNumber uint64      `json:"block_number"`
	Timestamp   uint64      `json:"timestamp"`
	Events      []RawEvent  `json:"events"`
}

// RawEvent is one decoded log entry. Only the fields relevant to the
// emitting event name are populated; the rest stay zero.
type RawEvent struct {
	Address  common.Address `json:"address"`
	Name     string         `json:"name"`
	LogIndex uint64         `json:"log_index"`

	From     common.Address `json:"from,omitempty"`
	To       common.Address `json:"to,omitempty"`
	Operator common.Address `json:"operator,omitempty"`
	Value    *big.Int       `json:"-"`
	IDs      []*big.Int     `json:"-"`
	Values   []*big.Int     `json:"-"`

	// Marker-event fields.
	Account              common.Address `json:"account,omitempty"`
	Liquidator           common.Address `json:"liquidator,omitempty"`
	Vault                common.Address `json:"vault,omitempty"`
	CurrencyID           uint16         `json:"currency_id,omitempty"`
	LocalCurrencyID      uint16         `json:"local_currency_id,omitempty"`
	CollateralCurrencyID uint16         `json:"collateral_currency_id,omitempty"`
}

// MarshalJSON encodes big integer fields as decimal strings.
func (e RawEvent) MarshalJSON() ([]byte, error) {
	type Alias RawEvent
	return json.Marshal(struct {
		Alias
		Value  string   `json:"value,omitempty"`
		IDs    []string `json:"ids,omitempty"`
		Values []string `json:"values,omitempty"`
	}{
		Alias:  Alias(e),
		Value:  optBigString(e.Value),
		IDs:    bigStrings(e.IDs),
		Values: bigStrings(e.Values),
	})
}

// UnmarshalJSON decodes big integer fields from decimal strings.
func (e *RawEvent) UnmarshalJSON(data []byte) error {
	type Alias RawEvent
	var aux struct {
		Alias
		Value  string   `json:"value"`
		IDs    []string `json:"ids"`
		Values []string `json:"values"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*e = RawEvent(aux.Alias)
	var err error
	if aux.Value != "" {
		if e.Value, err = parseBigString(aux.Value); err != nil {
			return fmt.Errorf("event value: %w", err)
		}
	}
	if e.IDs, err = parseBigStrings(aux.IDs); err != nil {
		return fmt.Errorf("event ids: %w", err)
	}
	if e.Values, err = parseBigStrings(aux.Values); err != nil {
		return fmt.Errorf("event values: %w", err)
	}
	return nil
}

func optBigString(value *big.Int) string {
	if value == nil {
		return ""
	}
	return value.String()
}

func bigStrings(values []*big.Int) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, bigString(v))
	}
	return out
}

func parseBigStrings(values []string) ([]*big.Int, error) {
	if len(values) == 0 {
		return nil, nil
	}
	out := make([]*big.Int, 0, len(values))
	for _, v := range values {
		parsed, err := parseBigString(v)
		if err != nil {
			return nil, err
		}
		out = append(out, parsed)
	}
	return out, nil
}
