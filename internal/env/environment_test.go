package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"ledgerscope/internal/model"
)

func TestSystemAccountPriority(t *testing.T) {
	shared := common.HexToAddress("0x9000000000000000000000000000000000000001")
	ordinary := common.HexToAddress("0x9000000000000000000000000000000000000002")

	environment := &Environment{
		Ledger:     common.HexToAddress("0x1000000000000000000000000000000000000001"),
		FeeReserve: shared,
		NTokens:    map[common.Address]uint16{shared: 1},
		Vaults:     map[common.Address]bool{shared: true},
	}

	// Pool membership outranks vault membership and the fixed roles.
	if got := environment.SystemAccount(shared); got != model.SystemNToken {
		t.Fatalf("priority mismatch: %s", got)
	}
	if got := environment.SystemAccount(environment.Ledger); got != model.SystemLedger {
		t.Fatalf("ledger address misclassified: %s", got)
	}
	if got := environment.SystemAccount(ordinary); got != model.SystemNone {
		t.Fatalf("ordinary address misclassified: %s", got)
	}
}

func TestLoadEnvironment(t *testing.T) {
	raw := `
ledger: "0x1000000000000000000000000000000000000001"
fee-reserve: "0x1000000000000000000000000000000000000002"
settlement: "0x1000000000000000000000000000000000000003"
assets:
  - address: "0x2000000000000000000000000000000000000001"
    type: tracked-cash
    currency: 1
  - address: "0x2000000000000000000000000000000000000003"
    type: governance-token
ntokens:
  - address: "0x3000000000000000000000000000000000000001"
    currency: 1
vaults:
  - "0x4000000000000000000000000000000000000001"
`
	path := filepath.Join(t.TempDir(), "env.yaml")
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	environment, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	pCash := common.HexToAddress("0x2000000000000000000000000000000000000001")
	info, ok := environment.AssetInfo(pCash)
	if !ok || info.Type != model.AssetPrimeCash || info.Currency != 1 {
		t.Fatalf("asset lookup failed: %+v ok=%v", info, ok)
	}

	vault := common.HexToAddress("0x4000000000000000000000000000000000000001")
	if !environment.IsVault(vault) {
		t.Fatalf("vault membership lost")
	}
	if got := environment.SystemAccount(common.HexToAddress("0x1000000000000000000000000000000000000003")); got != model.SystemSettlement {
		t.Fatalf("settlement misclassified: %s", got)
	}
}

func TestLoadEnvironmentRejectsBadAsset(t *testing.T) {
	raw := `
ledger: "0x1000000000000000000000000000000000000001"
fee-reserve: "0x1000000000000000000000000000000000000002"
settlement: "0x1000000000000000000000000000000000000003"
assets:
  - address: "0x2000000000000000000000000000000000000001"
    type: no-such-type
`
	path := filepath.Join(t.TempDir(), "env.yaml")
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatalf("unknown asset type should be rejected")
	}
}
