package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/Chative-core-poc-v1/storefront/internal/agent/catalog"
	"github.com/Chative-core-poc-v1/storefront/internal/agent/fixtures"
	"github.com/Chative-core-poc-v1/storefront/internal/agent/graph/tools"
	"github.com/Chative-core-poc-v1/storefront/internal/agent/model"
	"github.com/Chative-core-poc-v1/storefront/internal/agent/orders"
	"github.com/Chative-core-poc-v1/storefront/internal/transport/httpapi"
	logx "github.com/Chative-core-poc-v1/storefront/pkg/logger"
)

// demoNow puts the bundled A1003 order 10 minutes old and A1002 outside the window.
const demoNow = "2025-01-15T10:10:00Z"

var demoPrompts = []struct {
	description string
	query       string
}{
	{description: "Product assist with tags, budget, size and ZIP", query: "Wedding guest, midi, under $120 — I'm between M/L. ETA to 560001?"},
	{description: "Cancellation inside the window", query: "Cancel order A1003 — email mira@example.com"},
	{description: "Cancellation outside the window", query: "Cancel order A1002 — email alex@example.com"},
	{description: "Guardrail", query: "Can you give me a discount code that doesn't exist?"},
}

func newRootCmd() *cobra.Command {
	var (
		envFile string
		cfg     *AppConfig
	)

	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Rule-based storefront assistant",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = loadConfig(envFile)
			if err != nil {
				return err
			}
			logx.Init(logx.LoggerOpts{Environment: cfg.env(), Level: cfg.LogLevel})
			return nil
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Env file to load before reading the environment")

	cfgFn := func() *AppConfig { return cfg }
	root.AddCommand(newServeCmd(cfgFn), newAskCmd(cfgFn), newDemoCmd(cfgFn), newSeedCmd(cfgFn), newToolsCmd())
	return root
}

func newServeCmd(cfg func() *AppConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the assistant over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			c := cfg()
			a, err := newApp(ctx, c)
			if err != nil {
				return err
			}
			defer a.Close()

			if c.env().IsProduction() {
				gin.SetMode(gin.ReleaseMode)
			}
			srv := &http.Server{
				Addr: c.HTTP.Addr,
				Handler: httpapi.NewRouter(httpapi.Deps{
					Runner:        a.runner,
					Traces:        a.traces,
					Metrics:       a.metrics,
					AllowedOrigin: c.HTTP.AllowedOrigin,
				}),
				ReadHeaderTimeout: 5 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logx.Info().Str("addr", c.HTTP.Addr).Bool("trace_archive", a.traces != nil).Msg("HTTP server listening")
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
			}

			logx.Info().Msg("Shutting down HTTP server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}

func newAskCmd(cfg func() *AppConfig) *cobra.Command {
	var now string

	cmd := &cobra.Command{
		Use:   "ask <text>",
		Short: "Run one utterance and print the trace as JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := parseNow(now)
			if err != nil {
				return err
			}
			a, err := newApp(cmd.Context(), cfg())
			if err != nil {
				return err
			}
			defer a.Close()

			trace, err := a.runner.Invoke(cmd.Context(), model.Request{
				UserInput: strings.Join(args, " "),
				Now:       at,
			})
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(trace)
		},
	}
	cmd.Flags().StringVar(&now, "now", "", "Reference time (RFC3339) for the cancellation window; defaults to the current time")
	return cmd
}

func newDemoCmd(cfg func() *AppConfig) *cobra.Command {
	var now string

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the reference prompts against the loaded fixtures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := parseNow(now)
			if err != nil {
				return err
			}
			a, err := newApp(cmd.Context(), cfg())
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			for i, p := range demoPrompts {
				fmt.Fprintf(out, "\nTest %d: %s\n", i+1, p.description)
				fmt.Fprintf(out, "Prompt: %q\n", p.query)

				trace, err := a.runner.Invoke(cmd.Context(), model.Request{UserInput: p.query, Now: at})
				if err != nil {
					return fmt.Errorf("demo prompt %d: %w", i+1, err)
				}
				b, err := json.Marshal(trace)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Trace: %s\n", b)
				fmt.Fprintf(out, "Reply: %s\n", trace.FinalMessage)
				fmt.Fprintln(out, strings.Repeat("-", 60))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&now, "now", demoNow, "Reference time (RFC3339) for the cancellation window")
	return cmd
}

func newSeedCmd(cfg func() *AppConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Copy the file fixtures into the configured Redis keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cfg()
			if !c.Redis.Enabled() {
				return fmt.Errorf("seed needs REDIS_URL")
			}
			file := &fixtures.FileSource{CatalogPath: c.Fixtures.CatalogPath, OrdersPath: c.Fixtures.OrdersPath}
			tables, err := file.Load(cmd.Context())
			if err != nil {
				return err
			}

			rdb, err := c.Redis.New(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to initialise Redis client: %w", err)
			}
			defer rdb.Close()

			dst := &fixtures.RedisSource{Client: rdb, CatalogKey: c.Fixtures.CatalogKey, OrdersKey: c.Fixtures.OrdersKey}
			if err := dst.Save(cmd.Context(), tables); err != nil {
				return err
			}
			logx.Info().
				Int("products", len(tables.Products)).
				Int("orders", len(tables.Orders)).
				Str("catalog_key", c.Fixtures.CatalogKey).
				Str("orders_key", c.Fixtures.OrdersKey).
				Msg("Fixtures seeded")
			return nil
		},
	}
}

func newToolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List the business tools the dispatcher can call",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// schemas do not depend on table contents
			infos, err := tools.GetToolInfos(cmd.Context(), tools.GetQueryTools(catalog.New(nil), orders.NewDirectory(nil)))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, info := range infos {
				fmt.Fprintf(out, "%-18s %s\n", info.Name, info.Desc)
			}
			return nil
		},
	}
}

func parseNow(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --now %q: %w", v, err)
	}
	return t.UTC(), nil
}
