package storage

import "ledgerscope/internal/model"

// Storage defines a sink for classified transaction reports.
type Storage interface {
	PutReportBatch(reports []*model.EventStore) error
}
