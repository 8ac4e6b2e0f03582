package classify

import (
	"fmt"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"ledgerscope/internal/env"
	"ledgerscope/internal/model"
	"ledgerscope/internal/normalize"
)

var zeroAddress common.Address

// Pipeline wires the normalizer, bundle scanner, and transaction-type
// scanner behind a single entry point. The rule tables are injected at
// construction and shared read-only across transactions.
type Pipeline struct {
	normalizer *normalize.Normalizer
	scanner    *Scanner
	types      *TypeScanner
	logger     *zap.Logger
}

// NewPipeline builds a pipeline with the default rule tables.
func NewPipeline(environment *env.Environment, logger *zap.Logger) (*Pipeline, error) {
	return NewPipelineWithTables(environment, DefaultBundleCriteria(), DefaultTypeMatchers(), logger)
}

// NewPipelineWithTables builds a pipeline with caller-supplied rule
// tables.
func NewPipelineWithTables(environment *env.Environment, criteria []BundleCriterion, matchers []TypeMatcher, logger *zap.Logger) (*Pipeline, error) {
	types, err := NewTypeScanner(matchers)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		normalizer: normalize.NewNormalizer(environment),
		scanner:    NewScanner(criteria),
		types:      types,
		logger:     logger,
	}, nil
}

// ProcessTransaction classifies one transaction's event log: events are
// normalized in log order, each transfer is fed to the bundle scanner, and
// once all events are in, the type scanner runs until it stops making
// progress. Fatal errors abort the transaction's classification and
// propagate; a partially classified store is normal when the rule tables
// have no answer.
func (p *Pipeline) ProcessTransaction(raw model.RawTransaction) (*model.EventStore, error) {
	store := model.NewEventStore(raw.TxHash, raw.BlockNumber, raw.Timestamp)

	events := make([]model.RawEvent, len(raw.Events))
	copy(events, raw.Events)
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].LogIndex < events[j].LogIndex
	})

	for _, event := range events {
		if IsMarkerEvent(event.Name) {
			store.AppendMarker(model.Marker{
				Name:     event.Name,
				LogIndex: event.LogIndex,
				Event:    event,
			})
			continue
		}
		if !normalize.IsTransferEvent(event.Name) {
			continue
		}

		transfers, err := p.normalizer.Transfers(raw, event)
		if err != nil {
			return store, fmt.Errorf("normalize %s: %w", raw.TxHash.Hex(), err)
		}
		for _, transfer := range transfers {
			store.AppendTransfer(transfer)
			if _, err := p.scanner.ScanTransferBundle(store); err != nil {
				return store, fmt.Errorf("scan %s: %w", raw.TxHash.Hex(), err)
			}
		}
	}

	// Keep matching while the classified-bundle frontier advances: one
	// match can unlock the next.
	for {
		typeID, err := p.types.ScanTransactionType(store)
		if err != nil {
			return store, fmt.Errorf("match %s: %w", raw.TxHash.Hex(), err)
		}
		if typeID == "" {
			break
		}
	}

	p.logger.Debug("transaction classified",
		zap.String("tx_hash", raw.TxHash.Hex()),
		zap.Int("transfers", len(store.Transfers)),
		zap.Int("bundles", len(store.Bundles)),
		zap.Int("markers", len(store.Markers)),
		zap.Int("transaction_types", len(store.TransactionTypes)),
	)
	return store, nil
}
