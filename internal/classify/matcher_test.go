package classify

import (
	"testing"

	"ledgerscope/internal/model"
)

func nopExtract(_ []*model.Transfer, _ *model.Marker) map[string]interface{} { return nil }

func mustTypeScanner(t *testing.T, matchers []TypeMatcher) *TypeScanner {
	t.Helper()
	scanner, err := NewTypeScanner(matchers)
	if err != nil {
		t.Fatalf("build type scanner: %v", err)
	}
	return scanner
}

func storeWithBundles(names ...string) *model.EventStore {
	store := newTestStore()
	for i, name := range names {
		logIndex := uint64(i + 1)
		store.Bundles = append(store.Bundles, &model.Bundle{
			BundleID:      model.BundleID(store.TxHash, logIndex, logIndex, name),
			Name:          name,
			StartLogIndex: logIndex,
			EndLogIndex:   logIndex,
		})
	}
	return store
}

func TestTypeScannerEndMarkerPosition(t *testing.T) {
	scanner := mustTypeScanner(t, []TypeMatcher{{
		Name:       "Marked",
		Pattern:    []PatternOp{{Op: OpLiteral, Names: []string{"A"}}},
		EndMarkers: []string{"Done"},
		Extract:    nopExtract,
	}})

	store := storeWithBundles("A")
	store.AppendMarker(model.Marker{Name: "Done", LogIndex: 0})

	// The marker precedes the match end, so it does not qualify.
	typeID, err := scanner.ScanTransactionType(store)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if typeID != "" {
		t.Fatalf("marker before the match must not qualify")
	}

	store.AppendMarker(model.Marker{Name: "Done", LogIndex: 9})
	typeID, err = scanner.ScanTransactionType(store)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if typeID == "" {
		t.Fatalf("trailing marker should qualify")
	}
	if marker := store.TransactionTypes[0].Marker; marker == nil || marker.LogIndex != 9 {
		t.Fatalf("qualifying marker not attached: %+v", marker)
	}
}

func TestTypeScannerTableOrderWins(t *testing.T) {
	scanner := mustTypeScanner(t, []TypeMatcher{
		{
			Name:    "First",
			Pattern: []PatternOp{{Op: OpLiteral, Names: []string{"A"}}},
			Extract: nopExtract,
		},
		{
			Name:    "Second",
			Pattern: []PatternOp{{Op: OpLiteral, Names: []string{"A"}}},
			Extract: nopExtract,
		},
	})

	store := storeWithBundles("A")
	if _, err := scanner.ScanTransactionType(store); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if store.TransactionTypes[0].Name != "First" {
		t.Fatalf("earlier table row must win, got %s", store.TransactionTypes[0].Name)
	}
}

func TestTypeScannerAdvancesFrontier(t *testing.T) {
	scanner := mustTypeScanner(t, []TypeMatcher{{
		Name:    "Single",
		Pattern: []PatternOp{{Op: OpLiteral, Names: []string{"A"}}},
		Extract: nopExtract,
	}})

	store := storeWithBundles("A", "A")
	for i := 0; i < 2; i++ {
		typeID, err := scanner.ScanTransactionType(store)
		if err != nil {
			t.Fatalf("scan %d: %v", i, err)
		}
		if typeID == "" {
			t.Fatalf("scan %d should classify a bundle", i)
		}
	}

	typeID, err := scanner.ScanTransactionType(store)
	if err != nil {
		t.Fatalf("final scan: %v", err)
	}
	if typeID != "" {
		t.Fatalf("no bundles left to classify")
	}
	if len(store.TransactionTypes) != 2 {
		t.Fatalf("expected two classified runs, got %d", len(store.TransactionTypes))
	}
}

func TestTypeScannerSkipsUnmatchedPrefix(t *testing.T) {
	scanner := mustTypeScanner(t, []TypeMatcher{{
		Name:    "OnlyB",
		Pattern: []PatternOp{{Op: OpLiteral, Names: []string{"B"}}},
		Extract: nopExtract,
	}})

	store := storeWithBundles("A", "B")
	typeID, err := scanner.ScanTransactionType(store)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if typeID == "" {
		t.Fatalf("match should be found past the unmatched prefix")
	}
	if store.Bundles[0].TransactionTypeID != "" {
		t.Fatalf("skipped bundle must stay unclassified")
	}
	if store.Bundles[1].TransactionTypeID == "" {
		t.Fatalf("matched bundle must be classified")
	}
}
