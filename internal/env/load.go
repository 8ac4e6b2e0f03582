package env

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/viper"

	"ledgerscope/internal/model"
)

type assetEntry struct {
	Address  string `mapstructure:"address"`
	Type     string `mapstructure:"type"`
	Currency uint16 `mapstructure:"currency"`
}

type ntokenEntry struct {
	Address  string `mapstructure:"address"`
	Currency uint16 `mapstructure:"currency"`
}

// Load reads environment metadata from a config file.
func Load(path string) (*Environment, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}

	environment := &Environment{
		Assets:  make(map[common.Address]AssetInfo),
		NTokens: make(map[common.Address]uint16),
		Vaults:  make(map[common.Address]bool),
	}

	var err error
	if environment.Ledger, err = parseAddress(v.GetString("ledger")); err != nil {
		return nil, fmt.Errorf("ledger: %w", err)
	}
	if environment.FeeReserve, err = parseAddress(v.GetString("fee-reserve")); err != nil {
		return nil, fmt.Errorf("fee-reserve: %w", err)
	}
	if environment.Settlement, err = parseAddress(v.GetString("settlement")); err != nil {
		return nil, fmt.Errorf("settlement: %w", err)
	}

	var assets []assetEntry
	if err := v.UnmarshalKey("assets", &assets); err != nil {
		return nil, fmt.Errorf("assets: %w", err)
	}
	for _, entry := range assets {
		addr, err := parseAddress(entry.Address)
		if err != nil {
			return nil, fmt.Errorf("asset address: %w", err)
		}
		assetType, err := parseAssetType(entry.Type)
		if err != nil {
			return nil, err
		}
		environment.Assets[addr] = AssetInfo{Type: assetType, Currency: entry.Currency}
	}

	var ntokens []ntokenEntry
	if err := v.UnmarshalKey("ntokens", &ntokens); err != nil {
		return nil, fmt.Errorf("ntokens: %w", err)
	}
	for _, entry := range ntokens {
		addr, err := parseAddress(entry.Address)
		if err != nil {
			return nil, fmt.Errorf("ntoken address: %w", err)
		}
		environment.NTokens[addr] = entry.Currency
	}

	for _, raw := range v.GetStringSlice("vaults") {
		addr, err := parseAddress(raw)
		if err != nil {
			return nil, fmt.Errorf("vault address: %w", err)
		}
		environment.Vaults[addr] = true
	}

	return environment, nil
}

func parseAddress(raw string) (common.Address, error) {
	if !common.IsHexAddress(raw) {
		return common.Address{}, fmt.Errorf("invalid address: %q", raw)
	}
	return common.HexToAddress(raw), nil
}

func parseAssetType(raw string) (model.AssetType, error) {
	switch model.AssetType(raw) {
	case model.AssetUnderlying, model.AssetPrimeCash, model.AssetPrimeDebt,
		model.AssetFixedClaim, model.AssetVaultShare, model.AssetVaultDebt,
		model.AssetVaultCash, model.AssetGovernance:
		return model.AssetType(raw), nil
	default:
		return "", fmt.Errorf("unknown asset type: %q", raw)
	}
}
