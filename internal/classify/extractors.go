package classify

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"ledgerscope/internal/model"
)

// ExtractorFunc builds the structured summary for one classified
// transaction type from exactly the matched transfers (in emission order)
// and the qualifying marker, nil when the type carries none. Extractors
// are pure: they never mutate their inputs and hold no state.
type ExtractorFunc func(transfers []*model.Transfer, marker *model.Marker) map[string]interface{}

func extractAccountAction(transfers []*model.Transfer, _ *model.Marker) map[string]interface{} {
	account := actingAccount(transfers)

	netFixed := make(map[string]string)
	for key, sum := range sumByCurrencyMaturity(transfers, model.AssetFixedClaim, account) {
		netFixed[key] = sum.String()
	}
	netCash := make(map[string]string)
	for key, sum := range sumByCurrency(transfers, model.AssetPrimeCash, account) {
		netCash[key] = sum.String()
	}

	return map[string]interface{}{
		"account":        account.Hex(),
		"netfCashAssets": netFixed,
		"netCash":        netCash,
	}
}

func extractLiquidation(transfers []*model.Transfer, marker *model.Marker) map[string]interface{} {
	fields := map[string]interface{}{}
	var liquidator common.Address
	if marker != nil {
		liquidator = marker.Event.Liquidator
		fields["liquidated"] = marker.Event.Account.Hex()
		fields["liquidator"] = liquidator.Hex()
		fields["localCurrencyID"] = marker.Event.LocalCurrencyID
		fields["collateralCurrencyID"] = marker.Event.CollateralCurrencyID
	}

	netLocal := big.NewInt(0)
	for _, t := range transfers {
		if t.AssetType == model.AssetPrimeCash && t.From == liquidator {
			netLocal = new(big.Int).Add(netLocal, t.Value)
		}
	}
	fields["netLocalFromLiquidator"] = netLocal.String()
	return fields
}

func extractSettleAccount(transfers []*model.Transfer, marker *model.Marker) map[string]interface{} {
	settledCash := make(map[string]string)
	for key, sum := range sumBundleValues(transfers, "Settle Cash") {
		settledCash[key] = sum.String()
	}
	settledFixed := make(map[string]string)
	for key, sum := range sumBundleMaturityValues(transfers, "Settle fCash") {
		settledFixed[key] = sum.String()
	}

	fields := map[string]interface{}{
		"settledCash":  settledCash,
		"settledfCash": settledFixed,
	}
	if marker != nil {
		fields["account"] = marker.Event.Account.Hex()
	}
	return fields
}

func extractInitializeMarkets(transfers []*model.Transfer, marker *model.Marker) map[string]interface{} {
	fields := map[string]interface{}{
		"transferCount": len(transfers),
	}
	if marker != nil {
		fields["currencyID"] = marker.Event.CurrencyID
	}
	return fields
}

func extractSweepCash(transfers []*model.Transfer, marker *model.Marker) map[string]interface{} {
	swept := big.NewInt(0)
	for _, t := range transfers {
		if t.AssetType == model.AssetPrimeCash && t.ToSystem == model.SystemNToken {
			swept = new(big.Int).Add(swept, t.Value)
		}
	}
	fields := map[string]interface{}{"cashIntoMarkets": swept.String()}
	if marker != nil {
		fields["currencyID"] = marker.Event.CurrencyID
	}
	return fields
}

func extractVaultEntry(transfers []*model.Transfer, _ *model.Marker) map[string]interface{} {
	fields := map[string]interface{}{}

	shares := firstTransfer(transfers, func(t *model.Transfer) bool {
		return t.AssetType == model.AssetVaultShare && t.IsMint()
	})
	if shares != nil {
		fields["vault"] = shares.Vault.Hex()
		fields["account"] = shares.To.Hex()
		fields["vaultShares"] = shares.Value.String()
	}

	debtChange := make(map[string]string)
	for key, sum := range sumByCurrencyAll(transfers, model.AssetVaultDebt) {
		debtChange[key] = sum.String()
	}
	fields["debtChange"] = debtChange
	return fields
}

func extractVaultExit(transfers []*model.Transfer, _ *model.Marker) map[string]interface{} {
	fields := map[string]interface{}{}

	burn := firstTransfer(transfers, func(t *model.Transfer) bool {
		return t.AssetType == model.AssetVaultShare && t.IsBurn()
	})
	if burn != nil {
		fields["vault"] = burn.Vault.Hex()
		fields["account"] = burn.From.Hex()
		fields["vaultShares"] = new(big.Int).Neg(burn.Value).String()
	}

	repaid := make(map[string]string)
	for key, sum := range sumByCurrencyAll(transfers, model.AssetVaultDebt) {
		repaid[key] = sum.String()
	}
	fields["debtRepaid"] = repaid
	return fields
}

func extractVaultDeleverage(transfers []*model.Transfer, marker *model.Marker) map[string]interface{} {
	fields := map[string]interface{}{}
	if marker != nil {
		fields["vault"] = marker.Event.Vault.Hex()
		fields["account"] = marker.Event.Account.Hex()
		fields["liquidator"] = marker.Event.Liquidator.Hex()
	}

	burn := firstTransfer(transfers, func(t *model.Transfer) bool {
		return t.AssetType == model.AssetVaultShare && t.IsBurn()
	})
	if burn != nil {
		fields["sharesBurned"] = burn.Value.String()
	}
	return fields
}

func extractVaultSettlement(transfers []*model.Transfer, _ *model.Marker) map[string]interface{} {
	net := make(map[string]string)
	for key, sum := range sumByCurrencyAll(transfers, model.AssetVaultCash) {
		net[key] = sum.String()
	}
	return map[string]interface{}{"netVaultCash": net}
}

func extractMintNToken(transfers []*model.Transfer, _ *model.Marker) map[string]interface{} {
	cashToPool := big.NewInt(0)
	tokensMinted := big.NewInt(0)
	var currency uint16
	for _, t := range transfers {
		switch {
		case t.ToSystem == model.SystemNToken:
			cashToPool = new(big.Int).Add(cashToPool, t.Value)
			currency = t.Underlying
		case t.AssetType == model.AssetGovernance && t.IsMint():
			tokensMinted = new(big.Int).Add(tokensMinted, t.Value)
		}
	}
	return map[string]interface{}{
		"currencyID":   currency,
		"cashToPool":   cashToPool.String(),
		"tokensMinted": tokensMinted.String(),
	}
}

func extractRedeemNToken(transfers []*model.Transfer, _ *model.Marker) map[string]interface{} {
	cashFromPool := big.NewInt(0)
	tokensRedeemed := big.NewInt(0)
	var currency uint16
	for _, t := range transfers {
		switch {
		case t.FromSystem == model.SystemNToken:
			cashFromPool = new(big.Int).Add(cashFromPool, t.Value)
			currency = t.Underlying
		case t.AssetType == model.AssetGovernance && t.IsBurn():
			tokensRedeemed = new(big.Int).Add(tokensRedeemed, t.Value)
		}
	}
	return map[string]interface{}{
		"currencyID":     currency,
		"cashFromPool":   cashFromPool.String(),
		"tokensRedeemed": tokensRedeemed.String(),
	}
}

// actingAccount is the first ordinary (non-system, non-zero) party on the
// matched transfers.
func actingAccount(transfers []*model.Transfer) common.Address {
	for _, t := range transfers {
		if t.ToSystem == model.SystemNone && t.To != zeroAddress {
			return t.To
		}
		if t.FromSystem == model.SystemNone && t.From != zeroAddress {
			return t.From
		}
	}
	return common.Address{}
}

// signedDelta is the transfer's effect on the account's balance of its
// asset: positive when the account receives, negative when it pays.
func signedDelta(t *model.Transfer, account common.Address) *big.Int {
	switch {
	case t.IsMint() && t.To == account:
		return t.Value
	case t.IsBurn() && t.From == account:
		return new(big.Int).Neg(t.Value)
	case t.IsTransfer() && t.To == account:
		return t.Value
	case t.IsTransfer() && t.From == account:
		return new(big.Int).Neg(t.Value)
	}
	return nil
}

func sumByCurrency(transfers []*model.Transfer, assetType model.AssetType, account common.Address) map[string]*big.Int {
	out := make(map[string]*big.Int)
	for _, t := range transfers {
		if t.AssetType != assetType {
			continue
		}
		delta := signedDelta(t, account)
		if delta == nil {
			continue
		}
		addTo(out, fmt.Sprintf("%d", t.Underlying), delta)
	}
	return out
}

func sumByCurrencyMaturity(transfers []*model.Transfer, assetType model.AssetType, account common.Address) map[string]*big.Int {
	out := make(map[string]*big.Int)
	for _, t := range transfers {
		if t.AssetType != assetType {
			continue
		}
		delta := signedDelta(t, account)
		if delta == nil {
			continue
		}
		addTo(out, fmt.Sprintf("%d:%d", t.Underlying, t.Maturity), delta)
	}
	return out
}

func sumByCurrencyAll(transfers []*model.Transfer, assetType model.AssetType) map[string]*big.Int {
	out := make(map[string]*big.Int)
	for _, t := range transfers {
		if t.AssetType != assetType {
			continue
		}
		addTo(out, fmt.Sprintf("%d", t.Underlying), t.Value)
	}
	return out
}

func sumBundleValues(transfers []*model.Transfer, bundleName string) map[string]*big.Int {
	out := make(map[string]*big.Int)
	for _, t := range transfers {
		if t.BundleName != bundleName {
			continue
		}
		addTo(out, fmt.Sprintf("%d", t.Underlying), t.Value)
	}
	return out
}

func sumBundleMaturityValues(transfers []*model.Transfer, bundleName string) map[string]*big.Int {
	out := make(map[string]*big.Int)
	for _, t := range transfers {
		if t.BundleName != bundleName {
			continue
		}
		addTo(out, fmt.Sprintf("%d:%d", t.Underlying, t.Maturity), t.Value)
	}
	return out
}

func addTo(sums map[string]*big.Int, key string, delta *big.Int) {
	if existing, ok := sums[key]; ok {
		sums[key] = new(big.Int).Add(existing, delta)
		return
	}
	sums[key] = new(big.Int).Set(delta)
}

func firstTransfer(transfers []*model.Transfer, pred func(*model.Transfer) bool) *model.Transfer {
	for _, t := range transfers {
		if pred(t) {
			return t
		}
	}
	return nil
}
