package classify

import (
	"fmt"

	"ledgerscope/internal/model"
)

// TypeScanner applies the ordered transaction-type table to the bundle
// list of one transaction.
type TypeScanner struct {
	matchers []TypeMatcher
}

// NewTypeScanner validates every row's pattern and builds the scanner.
func NewTypeScanner(matchers []TypeMatcher) (*TypeScanner, error) {
	for _, m := range matchers {
		if err := validatePattern(m.Pattern); err != nil {
			return nil, fmt.Errorf("matcher %q: %w", m.Name, err)
		}
		if m.Extract == nil {
			return nil, fmt.Errorf("matcher %q: missing extractor", m.Name)
		}
	}
	return &TypeScanner{matchers: matchers}, nil
}

// ScanTransactionType attempts to classify one more run of bundles,
// scanning from the first bundle not yet carrying a transaction type. It
// returns the new transaction type id, or "" when no row matches (normal:
// the transaction may still be incomplete, or fully classified already).
func (s *TypeScanner) ScanTransactionType(store *model.EventStore) (string, error) {
	startIndex := store.FirstUntypedBundle()
	if startIndex >= len(store.Bundles) {
		return "", nil
	}

	for _, matcher := range s.matchers {
		start := startIndex
		for {
			matchStart, matchEnd, ok := matchPattern(store.Bundles, start, matcher.Pattern)
			if !ok {
				break
			}

			marker, ok := qualifyingMarker(store, matcher, matchEnd)
			if !ok {
				// The required marker may simply not have arrived; retry
				// from the next candidate start.
				start = matchStart + 1
				continue
			}
			return s.emit(store, matcher, matchStart, matchEnd, marker)
		}
	}
	return "", nil
}

// qualifyingMarker finds the first marker satisfying the matcher's end
// requirement: named in EndMarkers and positioned strictly after the
// match. Matchers without end markers accept with a nil marker.
func qualifyingMarker(store *model.EventStore, matcher TypeMatcher, matchEnd int) (*model.Marker, bool) {
	if len(matcher.EndMarkers) == 0 {
		return nil, true
	}

	endLogIndex := store.Bundles[matchEnd-1].EndLogIndex
	for i := range store.Markers {
		m := &store.Markers[i]
		if m.LogIndex <= endLogIndex {
			continue
		}
		for _, name := range matcher.EndMarkers {
			if m.Name == name {
				return m, true
			}
		}
	}
	return nil, false
}

func (s *TypeScanner) emit(store *model.EventStore, matcher TypeMatcher, matchStart, matchEnd int, marker *model.Marker) (string, error) {
	matched := store.Bundles[matchStart:matchEnd]
	typeID := model.TransactionTypeID(store.TxHash, matched[0].StartLogIndex, matcher.Name)

	var transfers []*model.Transfer
	for _, bundle := range matched {
		bundle.TransactionTypeID = typeID
		for _, t := range store.BundleTransfers(bundle) {
			t.TransactionTypeID = typeID
			t.TransactionType = matcher.Name
			transfers = append(transfers, t)
		}
	}

	store.TransactionTypes = append(store.TransactionTypes, &model.TransactionType{
		TransactionTypeID: typeID,
		Name:              matcher.Name,
		StartBundle:       matchStart,
		EndBundle:         matchEnd,
		Marker:            marker,
		Fields:            matcher.Extract(transfers, marker),
	})
	return typeID, nil
}
