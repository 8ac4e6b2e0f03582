package classify

import (
	"ledgerscope/internal/model"
)

// BundleCriterion is one row of the ordered bundle-matching table.
//
// The predicate receives a window of WindowSize unmatched transfers,
// prefixed by lookBehind already-matched predecessors (lookBehind is the
// number actually included, which is zero when the criterion fires at the
// start of the transfer list under CanStart).
type BundleCriterion struct {
	Name       string
	WindowSize int
	LookBehind int
	// BundleSize is how many unmatched transfers the bundle claims; zero
	// means WindowSize. It lets a criterion inspect a wider window than it
	// tags.
	BundleSize int
	// CanStart lets a look-behind criterion fire with no predecessors when
	// the window starts at the very first transfer.
	CanStart bool
	// Rewrite pops the most recent bundle and retags its transfers into
	// this one.
	Rewrite bool
	Match   func(window []*model.Transfer, lookBehind int) bool
}

// DefaultBundleCriteria returns the ordered criteria table. Order is load
// bearing: specific, longer, look-behind and rewrite rules come first so
// the catch-all plain-transfer rule only sees what nothing else claimed.
func DefaultBundleCriteria() []BundleCriterion {
	return []BundleCriterion{
		{
			// Matured fixed claims burned by the settlement pass.
			Name: "Settle fCash", WindowSize: 1,
			Match: func(w []*model.Transfer, _ int) bool {
				t := w[0]
				return t.AssetType == model.AssetFixedClaim && t.IsBurn() &&
					t.Maturity != 0 && t.Maturity <= t.Timestamp
			},
		},
		{
			Name: "Settle Cash", WindowSize: 1,
			Match: func(w []*model.Transfer, _ int) bool {
				t := w[0]
				return t.AssetType == model.AssetPrimeCash && t.IsTransfer() &&
					t.FromSystem == model.SystemSettlement
			},
		},
		{
			Name: "Borrow fCash", WindowSize: 1,
			Match: func(w []*model.Transfer, _ int) bool {
				t := w[0]
				return t.AssetType == model.AssetFixedClaim && t.IsMint() &&
					t.Value.Sign() < 0 && t.ToSystem == model.SystemNone
			},
		},
		{
			Name: "Lend fCash", WindowSize: 1,
			Match: func(w []*model.Transfer, _ int) bool {
				t := w[0]
				return t.AssetType == model.AssetFixedClaim && t.IsMint() &&
					t.Value.Sign() > 0 && t.ToSystem == model.SystemNone
			},
		},
		{
			Name: "Repay fCash", WindowSize: 1,
			Match: func(w []*model.Transfer, _ int) bool {
				t := w[0]
				return t.AssetType == model.AssetFixedClaim && t.IsBurn() &&
					t.Value.Sign() < 0
			},
		},
		{
			Name: "Transfer fCash", WindowSize: 1,
			Match: func(w []*model.Transfer, _ int) bool {
				return w[0].AssetType == model.AssetFixedClaim && w[0].IsTransfer()
			},
		},
		{
			// Cash minted against a fixed-claim debt in the same log entry.
			Name: "Borrow Prime Cash", WindowSize: 1, LookBehind: 1,
			Match: func(w []*model.Transfer, lb int) bool {
				if lb != 1 {
					return false
				}
				prev, cur := w[0], w[1]
				return cur.AssetType == model.AssetPrimeCash && cur.IsMint() &&
					cur.ToSystem == model.SystemNone &&
					prev.AssetType == model.AssetFixedClaim && prev.IsMint() &&
					prev.Value.Sign() < 0 && prev.To == cur.To &&
					prev.LogIndex == cur.LogIndex
			},
		},
		{
			Name: "Borrow Prime Cash", WindowSize: 1,
			Match: func(w []*model.Transfer, _ int) bool {
				return w[0].AssetType == model.AssetPrimeDebt && w[0].IsMint()
			},
		},
		{
			Name: "Repay Prime Cash", WindowSize: 1,
			Match: func(w []*model.Transfer, _ int) bool {
				return w[0].AssetType == model.AssetPrimeDebt && w[0].IsBurn()
			},
		},
		{
			Name: "Mint nToken", WindowSize: 1,
			Match: func(w []*model.Transfer, _ int) bool {
				t := w[0]
				return t.AssetType == model.AssetPrimeCash && t.IsTransfer() &&
					t.ToSystem == model.SystemNToken
			},
		},
		{
			Name: "Redeem nToken", WindowSize: 1,
			Match: func(w []*model.Transfer, _ int) bool {
				t := w[0]
				return t.AssetType == model.AssetPrimeCash && t.IsTransfer() &&
					t.FromSystem == model.SystemNToken
			},
		},
		{
			// Supply change on the pool's own token. The incentive token
			// carries currency 0, pool tokens their tracked currency.
			Name: "Mint nToken", WindowSize: 1,
			Match: func(w []*model.Transfer, _ int) bool {
				t := w[0]
				return t.AssetType == model.AssetGovernance && t.IsMint() &&
					t.Underlying != 0
			},
		},
		{
			Name: "Redeem nToken", WindowSize: 1,
			Match: func(w []*model.Transfer, _ int) bool {
				t := w[0]
				return t.AssetType == model.AssetGovernance && t.IsBurn() &&
					t.Underlying != 0
			},
		},
		{
			// The funding leg lands first and is claimed by the catch-all;
			// the share mint pulls it back into a single entry bundle.
			Name: "Vault Entry Transfer", WindowSize: 1, LookBehind: 1, Rewrite: true,
			Match: func(w []*model.Transfer, lb int) bool {
				if lb != 1 {
					return false
				}
				funding, shares := w[0], w[1]
				if funding.BundleName != "Transfer Asset" || funding.ToSystem != model.SystemVault {
					return false
				}
				if funding.AssetType != model.AssetPrimeCash && funding.AssetType != model.AssetUnderlying {
					return false
				}
				return shares.AssetType == model.AssetVaultShare && shares.IsMint() &&
					shares.ToSystem == model.SystemNone
			},
		},
		{
			Name: "Vault Entry Transfer", WindowSize: 1,
			Match: func(w []*model.Transfer, _ int) bool {
				return w[0].AssetType == model.AssetVaultShare && w[0].IsMint() &&
					w[0].ToSystem == model.SystemNone
			},
		},
		{
			Name: "Vault Secondary Borrow", WindowSize: 1,
			Match: func(w []*model.Transfer, _ int) bool {
				return w[0].AssetType == model.AssetVaultDebt && w[0].IsMint()
			},
		},
		{
			Name: "Repay Vault Debt", WindowSize: 1,
			Match: func(w []*model.Transfer, _ int) bool {
				return w[0].AssetType == model.AssetVaultDebt && w[0].IsBurn()
			},
		},
		{
			Name: "Vault Burn", WindowSize: 1,
			Match: func(w []*model.Transfer, _ int) bool {
				return w[0].AssetType == model.AssetVaultShare && w[0].IsBurn()
			},
		},
		{
			Name: "Vault Settle", WindowSize: 1,
			Match: func(w []*model.Transfer, _ int) bool {
				return w[0].AssetType == model.AssetVaultCash
			},
		},
		{
			// A deposit whose minted cash moves straight on to another
			// account collapses into a single bundle covering both legs.
			Name: "Deposit and Transfer", WindowSize: 1, LookBehind: 1, Rewrite: true,
			Match: func(w []*model.Transfer, lb int) bool {
				if lb != 1 {
					return false
				}
				prev, cur := w[0], w[1]
				return prev.BundleName == "Deposit" && cur.IsTransfer() &&
					cur.Asset == prev.Asset && cur.AssetType == prev.AssetType &&
					cur.From == prev.To && cur.ToSystem == model.SystemNone
			},
		},
		{
			Name: "Deposit", WindowSize: 1,
			Match: func(w []*model.Transfer, _ int) bool {
				t := w[0]
				return t.AssetType == model.AssetPrimeCash && t.IsMint() &&
					t.ToSystem == model.SystemNone
			},
		},
		{
			Name: "Withdraw", WindowSize: 1,
			Match: func(w []*model.Transfer, _ int) bool {
				t := w[0]
				return t.AssetType == model.AssetPrimeCash && t.IsBurn() &&
					t.FromSystem == model.SystemNone
			},
		},
		{
			Name: "Fee Paid", WindowSize: 1,
			Match: func(w []*model.Transfer, _ int) bool {
				return w[0].ToSystem == model.SystemFeeReserve
			},
		},
		{
			Name: "Transfer Incentive", WindowSize: 1,
			Match: func(w []*model.Transfer, _ int) bool {
				t := w[0]
				return t.AssetType == model.AssetGovernance &&
					t.FromSystem == model.SystemLedger
			},
		},
		{
			// Catch-all; must stay last.
			Name: "Transfer Asset", WindowSize: 1,
			Match: func(_ []*model.Transfer, _ int) bool {
				return true
			},
		},
	}
}
