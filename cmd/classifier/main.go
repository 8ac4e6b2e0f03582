package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	root := &cobra.Command{
		Use:          "classifier",
		Short:        "Ledger event transaction classifier",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	classifyCmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify transaction event logs into typed reports",
		RunE:  runClassify,
	}

	classifyCmd.Flags().String("in", "", "input transactions JSONL")
	classifyCmd.Flags().String("out", "./data/reports.jsonl", "output reports JSONL")
	classifyCmd.Flags().String("env", "./env.yaml", "environment metadata file")
	classifyCmd.Flags().String("pg-dsn", "", "optional Postgres DSN for transaction summaries")
	classifyCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(classifyCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
