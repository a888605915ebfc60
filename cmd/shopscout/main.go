package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/shopscout/backend/config"
	httpdelivery "github.com/shopscout/backend/internal/delivery/http"
	"github.com/shopscout/backend/internal/domain"
	"github.com/shopscout/backend/internal/infrastructure/cache"
	"github.com/shopscout/backend/internal/infrastructure/catalog"
	"github.com/shopscout/backend/internal/usecase"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "shopscout",
		Short:        "ShopScout backend for product search and price comparison",
		SilenceUsage: true,
	}

	root.AddCommand(newServeCmd())
	root.AddCommand(newCompareCmd())
	root.AddCommand(newSearchCmd())

	return root
}

// app bundles the wired services shared by every command.
type app struct {
	cfg     *config.Config
	cache   *cache.MemoryCache
	client  *catalog.Client
	compare *usecase.CompareService
	browse  *usecase.BrowseService
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	memCache := cache.NewMemoryCache()

	client := catalog.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.Timeout)
	if cfg.Catalog.Debug || cfg.Server.Environment == "development" {
		client.SetDebug(true)
	}

	return &app{
		cfg:     cfg,
		cache:   memCache,
		client:  client,
		compare: usecase.NewCompareService(client),
		browse: usecase.NewBrowseService(memCache, client, usecase.BrowseServiceConfig{
			CacheTTL: cfg.Cache.TTL,
		}),
	}, nil
}

func (a *app) close() {
	a.cache.Close()
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			handler := httpdelivery.NewHandler(a.compare, a.browse, a.client)
			router := httpdelivery.SetupRouter(a.cfg, handler)

			addr := ":" + a.cfg.Server.Port
			log.Printf("Starting server on %s (environment: %s)", addr, a.cfg.Server.Environment)
			log.Printf("Catalog upstream: %s", a.cfg.Catalog.BaseURL)

			if err := router.Run(addr); err != nil {
				return fmt.Errorf("failed to start server: %w", err)
			}
			return nil
		},
	}
}

func newCompareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compare <np_id>",
		Short: "Fetch the full comparison view for one product and print it as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			view, err := a.compare.BuildView(ctx, args[0])
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(view)
		},
	}
}

func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search",
		Short: "Interactive debounced search against the catalog",
		Long: "Reads queries line by line from stdin. Each line is treated as the\n" +
			"current state of a search box: requests are debounced, queries of\n" +
			"two characters or fewer clear the results, and stale responses are\n" +
			"discarded.",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			out := cmd.OutOrStdout()

			debouncer := usecase.NewSearchDebouncer(
				a.cfg.Search.QuietPeriod,
				func(ctx context.Context, query string) ([]domain.Product, error) {
					return a.browse.Search(ctx, query)
				},
				func(query string, products []domain.Product, err error) {
					switch {
					case err != nil:
						fmt.Fprintf(out, "search %q failed: %v\n", query, err)
					case products == nil:
						fmt.Fprintln(out, "(cleared)")
					default:
						fmt.Fprintf(out, "%d results for %q:\n", len(products), query)
						for _, p := range products {
							fmt.Fprintf(out, "  %s  %s\n", p.NpID, p.Name)
						}
					}
				},
			)
			defer debouncer.Stop()

			fmt.Fprintln(out, "Type queries, one per line (Ctrl-D to quit).")

			scanner := bufio.NewScanner(cmd.InOrStdin())
			for scanner.Scan() {
				debouncer.Keystroke(cmd.Context(), scanner.Text())
			}

			// Let an in-flight debounce window flush before exiting.
			time.Sleep(a.cfg.Search.QuietPeriod + 100*time.Millisecond)
			return scanner.Err()
		},
	}
}
