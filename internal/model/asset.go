package model

// AssetType identifies the kind of balance an asset address or packed id
// represents inside the ledger.
type AssetType string

const (
	AssetUnderlying AssetType = "underlying-token"
	AssetPrimeCash  AssetType = "tracked-cash"
	AssetPrimeDebt  AssetType = "tracked-debt"
	AssetFixedClaim AssetType = "fixed-claim"
	AssetVaultShare AssetType = "vault-share"
	AssetVaultDebt  AssetType = "vault-debt"
	AssetVaultCash  AssetType = "vault-cash"
	AssetGovernance AssetType = "governance-token"
)

// AssetInterface is the token standard the asset is transferred under.
type AssetInterface string

const (
	InterfaceFungible     AssetInterface = "fungible"
	InterfaceSemiFungible AssetInterface = "semi-fungible"
)

// TransferKind is derived purely from the zero address appearing as the
// sender or receiver.
type TransferKind string

const (
	KindMint     TransferKind = "Mint"
	KindBurn     TransferKind = "Burn"
	KindTransfer TransferKind = "Transfer"
)

// SystemAccount names the well-known role an address plays in the ledger,
// or SystemNone for an ordinary account.
type SystemAccount string

const (
	SystemNone       SystemAccount = ""
	SystemNToken     SystemAccount = "nToken"
	SystemVault      SystemAccount = "Vault"
	SystemSettlement SystemAccount = "Settlement"
	SystemFeeReserve SystemAccount = "FeeReserve"
	SystemLedger     SystemAccount = "Ledger"
)
