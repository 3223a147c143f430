package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-keychain/internal/config"
	"github.com/MKhiriev/go-keychain/internal/logger"
	"github.com/MKhiriev/go-keychain/internal/service"
	"github.com/MKhiriev/go-keychain/internal/store"
	"github.com/MKhiriev/go-keychain/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	cfg, args, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "error getting configs:", err)
		os.Exit(2)
	}

	log := logger.NewLogger("keychain", cfg.Log.Level)

	cmd, err := parseCommand(args, cfg.Item)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if cmd.name == cmdVersion {
		fmt.Print(models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg, cmd, os.Stdout, log)
	// Fatal exits without running deferred calls
	stop()
	if err != nil {
		log.Fatal().Err(err).Str("status", store.StatusOf(err).String()).Msg(cmd.name + " failed")
	}
}

// run opens the configured store and executes cmd against it.
func run(ctx context.Context, cfg *config.StructuredConfig, cmd command, out io.Writer, log *logger.Logger) error {
	keychain, err := store.NewStore(ctx, cfg.Store, log)
	if err != nil {
		return fmt.Errorf("create store: %w", err)
	}
	defer func() {
		if closeErr := keychain.Close(); closeErr != nil {
			log.Err(closeErr).Msg("error closing store")
		}
	}()

	if cfg.Store.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Store.Timeout)
		defer cancel()
	}

	items := service.NewItemLoggingService(log).Wrap(service.NewItemService(keychain, log))

	return execute(ctx, items, cmd, out)
}
