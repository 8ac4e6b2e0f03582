package normalize

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"ledgerscope/internal/model"
)

// Packed semi-fungible id layout, low bit first:
//
//	bits 0..7    subtype
//	bits 8..23   currency id
//	bits 24..63  maturity (unix seconds)
//	bits 64..223 vault address (zero unless a vault subtype)
//	bit  224     debt flag (value transfers negated)
const (
	subtypeFixedClaim = 1
	subtypeVaultShare = 9
	subtypeVaultDebt  = 10
	subtypeVaultCash  = 11
)

// AssetID is the decoded form of a packed semi-fungible identifier.
type AssetID struct {
	Type     model.AssetType
	Currency uint16
	Maturity uint64
	Vault    common.Address
	IsDebt   bool
}

// DecodeAssetID unpacks a semi-fungible id. Unknown subtypes are a fatal
// decode error: they indicate the rule tables are out of date, not bad
// input.
func DecodeAssetID(id *big.Int) (AssetID, error) {
	if id == nil || id.Sign() < 0 {
		return AssetID{}, fmt.Errorf("invalid asset id")
	}

	subtype := uint8(extractBits(id, 0, 8).Uint64())
	decoded := AssetID{
		Currency: uint16(extractBits(id, 8, 16).Uint64()),
		Maturity: extractBits(id, 24, 40).Uint64(),
		IsDebt:   id.Bit(224) == 1,
	}
	decoded.Vault = common.BigToAddress(extractBits(id, 64, 160))

	switch subtype {
	case subtypeFixedClaim:
		decoded.Type = model.AssetFixedClaim
	case subtypeVaultShare:
		decoded.Type = model.AssetVaultShare
	case subtypeVaultDebt:
		decoded.Type = model.AssetVaultDebt
	case subtypeVaultCash:
		decoded.Type = model.AssetVaultCash
	default:
		return AssetID{}, fmt.Errorf("unknown asset subtype: %d", subtype)
	}
	return decoded, nil
}

// EncodeAssetID packs the decoded form back into an id.
func EncodeAssetID(decoded AssetID) (*big.Int, error) {
	var subtype uint8
	switch decoded.Type {
	case model.AssetFixedClaim:
		subtype = subtypeFixedClaim
	case model.AssetVaultShare:
		subtype = subtypeVaultShare
	case model.AssetVaultDebt:
		subtype = subtypeVaultDebt
	case model.AssetVaultCash:
		subtype = subtypeVaultCash
	default:
		return nil, fmt.Errorf("asset type %s has no packed form", decoded.Type)
	}

	id := new(big.Int).SetUint64(uint64(subtype))
	id.Or(id, new(big.Int).Lsh(new(big.Int).SetUint64(uint64(decoded.Currency)), 8))
	id.Or(id, new(big.Int).Lsh(new(big.Int).SetUint64(decoded.Maturity), 24))
	id.Or(id, new(big.Int).Lsh(decoded.Vault.Big(), 64))
	if decoded.IsDebt {
		id.SetBit(id, 224, 1)
	}
	return id, nil
}

func extractBits(id *big.Int, shift, width uint) *big.Int {
	mask := new(big.Int).Lsh(big.NewInt(1), width)
	mask.Sub(mask, big.NewInt(1))
	out := new(big.Int).Rsh(id, shift)
	return out.And(out, mask)
}
