package classify

// Marker event names the ledger emits alongside transfers. They carry no
// asset movement and are used only to gate transaction-type matches.
const (
	MarkerMarketsInitialized          = "MarketsInitialized"
	MarkerSweepCashIntoMarkets        = "SweepCashIntoMarkets"
	MarkerAccountSettled              = "AccountSettled"
	MarkerLiquidateLocalCurrency      = "LiquidateLocalCurrency"
	MarkerLiquidateCollateralCurrency = "LiquidateCollateralCurrency"
	MarkerLiquidatefCash              = "LiquidatefCash"
	MarkerVaultDeleverageAccount      = "VaultDeleverageAccount"
	MarkerVaultLiquidatorProfit       = "VaultLiquidatorProfit"
)

var markerNames = map[string]bool{
	MarkerMarketsInitialized:          true,
	MarkerSweepCashIntoMarkets:        true,
	MarkerAccountSettled:              true,
	MarkerLiquidateLocalCurrency:      true,
	MarkerLiquidateCollateralCurrency: true,
	MarkerLiquidatefCash:              true,
	MarkerVaultDeleverageAccount:      true,
	MarkerVaultLiquidatorProfit:       true,
}

// IsMarkerEvent reports whether the event name is a recognized marker.
func IsMarkerEvent(name string) bool {
	return markerNames[name]
}
