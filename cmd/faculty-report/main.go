// Package main is the entry point for the faculty-report CLI. It recomputes
// every professor's metrics from the configured store and prints a
// productivity report.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	repository "github.com/okian/facultyhub/internal/adapters/repository"
	app "github.com/okian/facultyhub/internal/app"
	"github.com/okian/facultyhub/internal/config"
	"github.com/okian/facultyhub/internal/report"
	"github.com/okian/facultyhub/pkg/logger"
)

type reportFlags struct {
	format       string
	top          int
	universities []string
	fields       []string
	sort         string
	order        string
	driver       string
	seedFile     string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var f reportFlags

	cmd := &cobra.Command{
		Use:   "faculty-report",
		Short: "Print faculty productivity metrics",
		Long: `faculty-report loads professors and research articles from the configured
store, recomputes publication metrics for every professor and prints overall
totals, the top researchers and the leading professors of the ranked
directory.

Store settings come from the same FACULTY_* environment and config file as
the API server; --driver and --seed-file override them.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), f, stdout, stderr)
		},
	}

	cmd.Flags().StringVar(&f.format, "format", report.FormatText, "output format: text or json")
	cmd.Flags().IntVar(&f.top, "top", report.DefaultTop, "number of ranked professors to list")
	cmd.Flags().StringSliceVar(&f.universities, "university", nil, "restrict to a university (repeatable)")
	cmd.Flags().StringSliceVar(&f.fields, "field", nil, "restrict to a field of interest (repeatable)")
	cmd.Flags().StringVar(&f.sort, "sort", "total_papers", "sort key")
	cmd.Flags().StringVar(&f.order, "order", "desc", "sort order: asc or desc")
	cmd.Flags().StringVar(&f.driver, "driver", "", "store driver override: memory, sqlite or postgres")
	cmd.Flags().StringVar(&f.seedFile, "seed-file", "", "YAML fixture override")

	return cmd
}

func run(ctx context.Context, f reportFlags, stdout, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	if f.driver != "" {
		cfg.StoreDriver = f.driver
	}
	if f.seedFile != "" {
		cfg.SeedFile = f.seedFile
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat), logger.WithOutput(stderr)); err != nil {
		return err
	}
	_ = logger.SetLevelString(cfg.LogLevel)

	store, err := repository.Open(ctx, cfg.StoreDriver,
		repository.WithDSN(cfg.DatabaseURL),
		repository.WithSQLitePath(cfg.SQLitePath),
		repository.WithSeedFile(cfg.SeedFile),
		repository.WithConnectRetry(cfg.DBConnectRetries, cfg.RetryDelay()),
		repository.WithConnectTimeout(cfg.ConnectTimeout()),
		repository.WithLogger(logger.Named("store")),
	)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.StoreDriver, err)
	}

	svc := app.New(app.WithStore(store), app.WithMaxPageSize(cfg.MaxPageSize))
	if err := svc.Start(ctx); err != nil {
		_ = store.Close()
		return err
	}
	defer svc.Stop()

	rep, err := report.Build(ctx, svc, report.Options{
		Universities: f.universities,
		Fields:       f.fields,
		Sort:         f.sort,
		Order:        f.order,
		Top:          f.top,
	}, time.Now())
	if err != nil {
		return err
	}
	return report.Write(stdout, rep, f.format)
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
