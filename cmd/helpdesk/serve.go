package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/0xcro3dile/assessiq-helpdesk/internal/adapters/filewatcher"
	"github.com/0xcro3dile/assessiq-helpdesk/internal/adapters/loader"
	"github.com/0xcro3dile/assessiq-helpdesk/internal/adapters/metrics"
	"github.com/0xcro3dile/assessiq-helpdesk/internal/adapters/store"
	"github.com/0xcro3dile/assessiq-helpdesk/internal/domain/ports"
	"github.com/0xcro3dile/assessiq-helpdesk/internal/domain/usecases"
	"github.com/0xcro3dile/assessiq-helpdesk/internal/infrastructure/config"
	httpserver "github.com/0xcro3dile/assessiq-helpdesk/internal/infrastructure/http"
)

type serveOptions struct {
	configPath string
	addr       string
	knowledge  string
	watch      bool
}

func newServeCmd() *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and chat UI",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = opts.addr
			}
			if cmd.Flags().Changed("knowledge") {
				cfg.Knowledge.Path = opts.knowledge
			}
			if cmd.Flags().Changed("watch") {
				cfg.Knowledge.Watch = opts.watch
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "config file (default $CONFIG_PATH or config.yaml)")
	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address")
	cmd.Flags().StringVar(&opts.knowledge, "knowledge", "", "knowledge file (.yaml, .yml, .json); empty uses the built-in base")
	cmd.Flags().BoolVar(&opts.watch, "watch", false, "reload the knowledge file when it changes")
	return cmd
}

func runServe(ctx context.Context, cfg *config.Config) error {
	source, err := loader.NewSource(cfg.Knowledge.Path)
	if err != nil {
		return err
	}

	kb, err := source.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading knowledge from %s: %w", source.Name(), err)
	}
	klog.Infof("knowledge base loaded from %s: %d entries", source.Name(), kb.Len())

	kbStore := store.NewInMemoryStore(kb)

	var (
		recorder ports.MatchRecorder
		gatherer prometheus.Gatherer
	)
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		recorder = metrics.NewRecorder(reg)
		gatherer = reg
	}

	queryUC := usecases.NewQueryUseCase(kbStore, recorder)

	if cfg.Knowledge.Watch && cfg.Knowledge.Path != "" {
		watcher, err := filewatcher.NewFSNotifyWatcher()
		if err != nil {
			return fmt.Errorf("creating file watcher: %w", err)
		}
		defer watcher.Stop()

		reloadUC := usecases.NewReloadUseCase(source, kbStore)
		go func() {
			if err := reloadUC.Watch(ctx, watcher, cfg.Knowledge.Path); err != nil {
				klog.Errorf("knowledge watcher stopped: %v", err)
			}
		}()
		klog.Infof("watching %s for changes", cfg.Knowledge.Path)
	}

	server := httpserver.NewServer(queryUC, httpserver.Options{
		Addr:        cfg.Server.Addr,
		Mode:        cfg.Server.Mode,
		TypingDelay: cfg.Chat.TypingDelay,
		Gatherer:    gatherer,
	})
	return server.Start(ctx)
}
