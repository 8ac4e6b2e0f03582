package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ledgerscope/internal/classify"
	"ledgerscope/internal/config"
	"ledgerscope/internal/env"
	"ledgerscope/internal/model"
	"ledgerscope/internal/storage"
	"ledgerscope/internal/storage/postgres"
)

func runClassify(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.In == "" {
		return fmt.Errorf("input path is required")
	}
	if cfg.Out == "" {
		return fmt.Errorf("output path is required")
	}

	environment, err := env.Load(cfg.Env)
	if err != nil {
		return err
	}

	pipeline, err := classify.NewPipeline(environment, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var pgStore *postgres.Store
	if cfg.PgDSN != "" {
		pgStore, err = postgres.NewStore(ctx, cfg.PgDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer pgStore.Close()
	}

	inputFile, err := os.Open(cfg.In)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer inputFile.Close()

	sink := storage.NewJsonlStorage(cfg.Out)

	logger.Info("classify start",
		zap.String("in", cfg.In),
		zap.String("out", cfg.Out),
		zap.String("env", cfg.Env),
		zap.Bool("postgres", pgStore != nil),
	)

	scanner := bufio.NewScanner(inputFile)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	var total, classified, unclassified, failed int
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		total++

		var txn model.RawTransaction
		if err := json.Unmarshal(line, &txn); err != nil {
			failed++
			logger.Error("parse transaction", zap.Error(err))
			continue
		}

		report, err := pipeline.ProcessTransaction(txn)
		if err != nil {
			failed++
			logger.Error("classify transaction",
				zap.String("tx_hash", txn.TxHash.Hex()),
				zap.Error(err),
			)
			continue
		}

		if len(report.TransactionTypes) == 0 && len(report.Transfers) > 0 {
			unclassified++
			logger.Warn("transaction did not classify",
				zap.String("tx_hash", txn.TxHash.Hex()),
				zap.Int("transfers", len(report.Transfers)),
				zap.Int("bundles", len(report.Bundles)),
			)
		} else {
			classified++
		}

		if err := sink.PutReportBatch([]*model.EventStore{report}); err != nil {
			return err
		}
		if pgStore != nil {
			if err := pgStore.UpsertTransactionTypes(ctx, []*model.EventStore{report}); err != nil {
				return fmt.Errorf("upsert transaction types: %w", err)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	logger.Info("classify done",
		zap.Int("total", total),
		zap.Int("classified", classified),
		zap.Int("unclassified", unclassified),
		zap.Int("failed", failed),
	)

	if failed > 0 {
		return fmt.Errorf("%d of %d transactions failed classification", failed, total)
	}
	return nil
}
