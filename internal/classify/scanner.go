package classify

import (
	"fmt"

	"ledgerscope/internal/model"
)

// Scanner applies the ordered bundle criteria table to the growing
// transfer list of one transaction.
type Scanner struct {
	criteria []BundleCriterion
}

// NewScanner builds a scanner over an ordered criteria table.
func NewScanner(criteria []BundleCriterion) *Scanner {
	return &Scanner{criteria: criteria}
}

// ScanTransferBundle incorporates the most recently appended transfer.
// It returns the new bundle's id, or "" when no criterion matches yet
// (normal while later transfers are still pending). It must be called once
// per appended transfer; finding no unmatched transfer is a contract
// violation.
func (s *Scanner) ScanTransferBundle(store *model.EventStore) (string, error) {
	startIndex := store.FirstUnbundled()
	if startIndex < 0 {
		return "", fmt.Errorf("no unmatched transfer after append")
	}

	for _, criterion := range s.criteria {
		if len(store.Transfers)-startIndex < criterion.WindowSize {
			continue
		}

		lookBehind := criterion.LookBehind
		if startIndex < lookBehind {
			if !criterion.CanStart || startIndex != 0 {
				continue
			}
			lookBehind = 0
		}

		window := store.Transfers[startIndex-lookBehind : startIndex+criterion.WindowSize]
		if !criterion.Match(window, lookBehind) {
			continue
		}
		return s.emit(store, criterion, startIndex, lookBehind)
	}

	return "", nil
}

func (s *Scanner) emit(store *model.EventStore, criterion BundleCriterion, startIndex, lookBehind int) (string, error) {
	bundleSize := criterion.BundleSize
	if bundleSize == 0 {
		bundleSize = criterion.WindowSize
	}

	claimStart := startIndex
	if criterion.Rewrite {
		if err := popRewritten(store, criterion, startIndex, lookBehind); err != nil {
			return "", err
		}
		claimStart = startIndex - lookBehind
	}
	claimEnd := startIndex + bundleSize

	claimed := store.Transfers[claimStart:claimEnd]
	bundleID := model.BundleID(store.TxHash, claimed[0].LogIndex, claimed[len(claimed)-1].LogIndex, criterion.Name)
	for _, t := range claimed {
		t.BundleID = bundleID
		t.BundleName = criterion.Name
	}

	store.Bundles = append(store.Bundles, &model.Bundle{
		BundleID:      bundleID,
		Name:          criterion.Name,
		StartLogIndex: claimed[0].LogIndex,
		EndLogIndex:   claimed[len(claimed)-1].LogIndex,
		StartIndex:    claimStart,
		EndIndex:      claimEnd,
		Rewritten:     criterion.Rewrite,
	})
	return bundleID, nil
}

// popRewritten removes the bundle being rewritten after checking the
// rewrite is legal: the popped bundle must be the most recent one, must
// own exactly the look-behind transfers, and must not itself be the
// product of a rewrite.
func popRewritten(store *model.EventStore, criterion BundleCriterion, startIndex, lookBehind int) error {
	if lookBehind == 0 {
		return fmt.Errorf("rewrite criterion %q fired without look-behind", criterion.Name)
	}
	if len(store.Bundles) == 0 {
		return fmt.Errorf("rewrite criterion %q with no prior bundle", criterion.Name)
	}

	last := store.Bundles[len(store.Bundles)-1]
	if last.Rewritten {
		return fmt.Errorf("bundle %s already rewritten", last.BundleID)
	}
	if last.StartIndex != startIndex-lookBehind || last.EndIndex != startIndex {
		return fmt.Errorf("rewrite criterion %q does not cover bundle %s", criterion.Name, last.BundleID)
	}
	if last.TransactionTypeID != "" {
		return fmt.Errorf("rewrite of classified bundle %s", last.BundleID)
	}

	store.Bundles = store.Bundles[:len(store.Bundles)-1]
	return nil
}
