package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"gitlab.com/dirk.krummacker/peoplehub/internal/command"
	"gitlab.com/dirk.krummacker/peoplehub/internal/config"
	"gitlab.com/dirk.krummacker/peoplehub/internal/model"
	"gitlab.com/dirk.krummacker/peoplehub/internal/persist"
	"gitlab.com/dirk.krummacker/peoplehub/internal/seed"
	"gitlab.com/dirk.krummacker/peoplehub/internal/service"
	"gitlab.com/dirk.krummacker/peoplehub/internal/store"
)

const shutdownTimeout = 5 * time.Second

// Usage example on the command line:
// > PORT=8080 STORE_DRIVER=bolt BOLT_PATH=peoplehub.db GIN_MODE=release GIN_LOGGING=OFF go run main.go
func main() {
	if err := run(); err != nil {
		slog.Error("service stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	slot, err := cfg.OpenSlot()
	if err != nil {
		return err
	}
	defer slot.Close()
	adapter := persist.NewAdapter(slot, cfg.SlotName, nil, persist.NewMetrics(reg))
	people, _ := adapter.Load(ctx)

	s := store.New(model.State{People: people, Theme: cfg.Theme},
		store.WithNotificationTTL(cfg.NotificationTTL),
		store.WithMetrics(store.NewMetrics(reg)),
	)
	defer s.Close()
	writer := persist.NewWriter(adapter)
	s.Subscribe(writer.Observe)

	svc := service.New(s, command.New(s, nil),
		service.WithGatherer(reg),
		service.WithRequestLogging(cfg.GinLogging),
	)
	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           svc.SetupHttpRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return writer.Run(ctx)
	})
	if !cfg.SeedDisabled {
		seeder := seed.NewSeeder(s, seed.NewHTTPFetcher(cfg.SeedURL, cfg.SeedResults, cfg.SeedNationality, cfg.HTTPTimeout), nil)
		g.Go(func() error {
			seeder.Seed(ctx)
			return nil
		})
	}
	g.Go(func() error {
		slog.Info("listening", "addr", server.Addr, "driver", cfg.StoreDriver)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
