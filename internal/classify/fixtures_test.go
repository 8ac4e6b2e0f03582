package classify

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"ledgerscope/internal/env"
	"ledgerscope/internal/model"
	"ledgerscope/internal/normalize"
)

var (
	testTxHash = common.HexToHash("0xdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeef")

	ledgerAddr     = common.HexToAddress("0x1000000000000000000000000000000000000001")
	feeReserveAddr = common.HexToAddress("0x1000000000000000000000000000000000000002")
	settlementAddr = common.HexToAddress("0x1000000000000000000000000000000000000003")
	pCashAddr      = common.HexToAddress("0x2000000000000000000000000000000000000001")
	pDebtAddr      = common.HexToAddress("0x2000000000000000000000000000000000000002")
	noteAddr       = common.HexToAddress("0x2000000000000000000000000000000000000003")
	nTokenAddr     = common.HexToAddress("0x3000000000000000000000000000000000000001")
	vaultAddr      = common.HexToAddress("0x4000000000000000000000000000000000000001")
	aliceAddr      = common.HexToAddress("0x5000000000000000000000000000000000000001")
	bobAddr        = common.HexToAddress("0x5000000000000000000000000000000000000002")
	liquidatorAddr = common.HexToAddress("0x5000000000000000000000000000000000000003")
)

func testEnvironment() *env.Environment {
	return &env.Environment{
		Ledger:     ledgerAddr,
		FeeReserve: feeReserveAddr,
		Settlement: settlementAddr,
		Assets: map[common.Address]env.AssetInfo{
			pCashAddr:  {Type: model.AssetPrimeCash, Currency: 1},
			pDebtAddr:  {Type: model.AssetPrimeDebt, Currency: 1},
			noteAddr:   {Type: model.AssetGovernance},
			nTokenAddr: {Type: model.AssetGovernance, Currency: 1},
		},
		NTokens: map[common.Address]uint16{nTokenAddr: 1},
		Vaults:  map[common.Address]bool{vaultAddr: true},
	}
}

// fungibleEvent builds an ERC20-style Transfer event from the given asset
// proxy.
func fungibleEvent(asset common.Address, logIndex uint64, from, to common.Address, value int64) model.RawEvent {
	return model.RawEvent{
		Address:  asset,
		Name:     normalize.EventTransfer,
		LogIndex: logIndex,
		From:     from,
		To:       to,
		Value:    big.NewInt(value),
	}
}

// fCashSingle builds a TransferSingle event carrying one fixed-claim
// entry.
func fCashSingle(logIndex uint64, from, to common.Address, currency uint16, maturity uint64, value int64) model.RawEvent {
	id, err := normalize.EncodeAssetID(normalize.AssetID{
		Type:     model.AssetFixedClaim,
		Currency: currency,
		Maturity: maturity,
	})
	if err != nil {
		panic(err)
	}
	return model.RawEvent{
		Address:  ledgerAddr,
		Name:     normalize.EventTransferSingle,
		LogIndex: logIndex,
		From:     from,
		To:       to,
		IDs:      []*big.Int{id},
		Values:   []*big.Int{big.NewInt(value)},
	}
}

// vaultSingle builds a TransferSingle event for a vault-side subtype.
func vaultSingle(logIndex uint64, from, to common.Address, assetType model.AssetType, currency uint16, maturity uint64, value int64) model.RawEvent {
	id, err := normalize.EncodeAssetID(normalize.AssetID{
		Type:     assetType,
		Currency: currency,
		Maturity: maturity,
		Vault:    vaultAddr,
	})
	if err != nil {
		panic(err)
	}
	return model.RawEvent{
		Address:  ledgerAddr,
		Name:     normalize.EventTransferSingle,
		LogIndex: logIndex,
		From:     from,
		To:       to,
		IDs:      []*big.Int{id},
		Values:   []*big.Int{big.NewInt(value)},
	}
}

func rawTransaction(events ...model.RawEvent) model.RawTransaction {
	return model.RawTransaction{
		TxHash:      testTxHash,
		BlockNumber: 1_500_000,
		Timestamp:   1_700_000_000,
		Events:      events,
	}
}

func mustPipeline(environment *env.Environment) *Pipeline {
	pipeline, err := NewPipeline(environment, nil)
	if err != nil {
		panic(err)
	}
	return pipeline
}
