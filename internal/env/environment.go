package env

import (
	"github.com/ethereum/go-ethereum/common"

	"ledgerscope/internal/model"
)

// AssetInfo describes a fungible asset the ledger emits Transfer events
// for: its balance kind and the currency it tracks (0 for the governance
// token).
type AssetInfo struct {
	Type     model.AssetType
	Currency uint16
}

// Environment is the static address metadata the classifier needs: which
// addresses are ledger assets, which are liquidity pools or vaults, and
// where the well-known system accounts live. It is read-only configuration,
// safe to share across transactions.
type Environment struct {
	Ledger     common.Address
	FeeReserve common.Address
	Settlement common.Address

	Assets  map[common.Address]AssetInfo
	NTokens map[common.Address]uint16
	Vaults  map[common.Address]bool
}

// AssetInfo looks up the emitting address of a fungible transfer. The
// second return is false for addresses that are not ledger assets.
func (e *Environment) AssetInfo(addr common.Address) (AssetInfo, bool) {
	info, ok := e.Assets[addr]
	return info, ok
}

// IsVault reports whether the address is a registered vault.
func (e *Environment) IsVault(addr common.Address) bool {
	return e.Vaults[addr]
}

// SystemAccount resolves the role an address plays, checking in fixed
// priority order: liquidity pool membership, vault membership, the fee
// reserve, the settlement account, then the ledger contract itself.
func (e *Environment) SystemAccount(addr common.Address) model.SystemAccount {
	if _, ok := e.NTokens[addr]; ok {
		return model.SystemNToken
	}
	if e.Vaults[addr] {
		return model.SystemVault
	}
	switch addr {
	case e.FeeReserve:
		return model.SystemFeeReserve
	case e.Settlement:
		return model.SystemSettlement
	case e.Ledger:
		return model.SystemLedger
	}
	return model.SystemNone
}
