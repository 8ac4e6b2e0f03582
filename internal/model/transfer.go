package model

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Transfer is one normalized atomic asset movement derived from a raw
// ledger event. The core fields are immutable once created; the bundle and
// transaction-type tags are filled in later by the scanner and matcher
// (empty string means unclassified).
type Transfer struct {
	ID          string         `json:"id"`
	BlockNumber uint64         `json:"block_number"`
	Timestamp   uint64         `json:"timestamp"`
	TxHash      common.Hash    `json:"tx_hash"`
	LogIndex    uint64         `json:"log_index"`
	From        common.Address `json:"from"`
	To          common.Address `json:"to"`
	Asset       common.Address `json:"asset"`
	AssetType   AssetType      `json:"asset_type"`
	AssetIface  AssetInterface `json:"asset_interface"`
	Underlying  uint16         `json:"underlying"`
	Value       *big.Int       `json:"-"`
	Maturity    uint64         `json:"maturity,omitempty"`
	Vault       common.Address `json:"vault_address,omitempty"`
	Operator    common.Address `json:"operator,omitempty"`
	Kind        TransferKind   `json:"transfer_type"`
	FromSystem  SystemAccount  `json:"from_system_account,omitempty"`
	ToSystem    SystemAccount  `json:"to_system_account,omitempty"`

	BundleID          string `json:"bundle_id,omitempty"`
	BundleName        string `json:"bundle_name,omitempty"`
	TransactionTypeID string `json:"transaction_type_id,omitempty"`
	TransactionType   string `json:"transaction_type,omitempty"`
}

// IsMint reports whether the transfer mints new supply.
func (t *Transfer) IsMint() bool { return t.Kind == KindMint }

// IsBurn reports whether the transfer burns supply.
func (t *Transfer) IsBurn() bool { return t.Kind == KindBurn }

// IsTransfer reports whether the transfer moves supply between accounts.
func (t *Transfer) IsTransfer() bool { return t.Kind == KindTransfer }

// MarshalJSON encodes the signed value as a decimal string.
func (t Transfer) MarshalJSON() ([]byte, error) {
	type Alias Transfer
	return json.Marshal(struct {
		Alias
		Value string `json:"value"`
	}{Alias: Alias(t), Value: bigString(t.Value)})
}

// UnmarshalJSON decodes the signed value from a decimal string.
func (t *Transfer) UnmarshalJSON(data []byte) error {
	type Alias Transfer
	var aux struct {
		Alias
		Value string `json:"value"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	value, err := parseBigString(aux.Value)
	if err != nil {
		return fmt.Errorf("transfer value: %w", err)
	}
	*t = Transfer(aux.Alias)
	t.Value = value
	return nil
}

func bigString(value *big.Int) string {
	if value == nil {
		return "0"
	}
	return value.String()
}

func parseBigString(value string) (*big.Int, error) {
	if value == "" {
		return big.NewInt(0), nil
	}
	parsed, ok := new(big.Int).SetString(value, 10)
	if !ok {
		return nil, fmt.Errorf("invalid int: %s", value)
	}
	return parsed, nil
}
