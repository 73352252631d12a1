// Command libris is a library management CLI over a pluggable persistence
// backend: in-memory, CSV files, a caching hybrid of the two, or SQLite.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"libris/internal/clock"
	"libris/internal/service"
	"libris/internal/storage"
	"libris/internal/storage/cached"
	"libris/internal/storage/file"
	"libris/internal/storage/instrumented"
	"libris/internal/storage/memory"
	"libris/internal/storage/sqlite"
	"libris/pkg/logging"
)

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// app holds the wired services for one CLI invocation.
type app struct {
	store   storage.PersistenceService
	catalog *service.CatalogService
	users   *service.UserService
	loans   *service.LoanService

	// checkpointer is set for the cached backend: flushed on shutdown and
	// by the save-all command.
	checkpointer storage.Checkpointer
	closer       func() error
}

func (a *app) close() error {
	if a.closer != nil {
		return a.closer()
	}
	return nil
}

type options struct {
	backend     string
	dataDir     string
	dbPath      string
	loanDays    int
	metricsAddr string
}

// openStore builds the selected backend. The cached backend checkpoints to
// file on close, mirroring the save-on-exit behavior of the interactive
// session.
func openStore(opts *options) (storage.PersistenceService, storage.Checkpointer, func() error, error) {
	switch opts.backend {
	case "memory":
		return memory.New(), nil, nil, nil
	case "file":
		s, err := file.New(opts.dataDir)
		return s, nil, nil, err
	case "cached":
		s, err := cached.New(opts.dataDir)
		if err != nil {
			return nil, nil, nil, err
		}
		return s, s, func() error { return s.PersistAllToFile(context.Background()) }, nil
	case "sqlite":
		s, err := sqlite.New(opts.dbPath)
		if err != nil {
			return nil, nil, nil, err
		}
		return s, nil, s.Close, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown backend %q (want memory, file, cached or sqlite)", opts.backend)
	}
}

func newApp(opts *options) (*app, error) {
	store, checkpointer, closer, err := openStore(opts)
	if err != nil {
		return nil, err
	}

	if opts.metricsAddr != "" {
		store = instrumented.New(store, prometheus.DefaultRegisterer)
		go func() {
			slog.Info("metrics listener starting", "addr", opts.metricsAddr)
			if err := http.ListenAndServe(opts.metricsAddr, promhttp.Handler()); err != nil {
				slog.Error("metrics listener failed", "error", err)
			}
		}()
	}

	catalog := service.NewCatalogService(store)
	users := service.NewUserService(store)
	loans := service.NewLoanService(catalog, users, store,
		service.NewConsoleNotifier(), clock.System{}, opts.loanDays)

	return &app{
		store:        store,
		catalog:      catalog,
		users:        users,
		loans:        loans,
		checkpointer: checkpointer,
		closer:       closer,
	}, nil
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	var a *app

	root := &cobra.Command{
		Use:           "libris",
		Short:         "Library management over pluggable persistence backends",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			a, err = newApp(opts)
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return a.close()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.backend, "backend", getEnv("LIBRIS_BACKEND", "cached"),
		"persistence backend: memory, file, cached or sqlite")
	flags.StringVar(&opts.dataDir, "data-dir", getEnv("LIBRIS_DATA_DIR", "./data"),
		"directory for CSV files (file and cached backends)")
	flags.StringVar(&opts.dbPath, "db", getEnv("LIBRIS_DB_PATH", "./data/libris.db"),
		"SQLite database path (sqlite backend)")
	flags.IntVar(&opts.loanDays, "loan-days", service.DefaultLoanDurationDays,
		"loan duration in days")
	flags.StringVar(&opts.metricsAddr, "metrics-addr", os.Getenv("LIBRIS_METRICS_ADDR"),
		"serve prometheus metrics on this address (empty disables)")

	root.AddCommand(
		newAddUserCmd(&a), newFindUserCmd(&a), newListUsersCmd(&a),
		newUpdateUserCmd(&a), newRemoveUserCmd(&a),
		newAddBookCmd(&a), newFindItemCmd(&a), newSearchCmd(&a),
		newListItemsCmd(&a), newRemoveItemCmd(&a),
		newBorrowCmd(&a), newReturnCmd(&a), newUserLoansCmd(&a),
		newItemHistoryCmd(&a), newCheckOverdueCmd(&a), newSaveAllCmd(&a),
	)
	return root
}

func main() {
	logging.Setup()
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
