package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/wichananm65/artisan-market-backend/internal/logging"
	"github.com/wichananm65/artisan-market-backend/internal/product"
	"github.com/wichananm65/artisan-market-backend/internal/recommended"
	"github.com/wichananm65/artisan-market-backend/internal/search"
)

type options struct {
	catalogPath string
	rulesPath   string
	maxResults  int
	exclude     []string
	categories  []string
	artisans    []string
	minPrice    float64
	maxPrice    float64
	logLevel    string
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "catalog-search [query]",
		Short: "Search the artisan catalog from the command line",
		Long: `catalog-search runs one free-text query through the same search engine the
HTTP server uses and prints the ranked products, reasoning and confidence as JSON.
Without --catalog the built-in sample catalog is searched.`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, strings.Join(args, " "))
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.catalogPath, "catalog", "", "JSON file holding a product array")
	f.StringVar(&opts.rulesPath, "rules", os.Getenv("SEARCH_RULES_PATH"), "YAML file overriding the search rules")
	f.IntVarP(&opts.maxResults, "max", "n", 10, "maximum number of products to print")
	f.StringSliceVar(&opts.exclude, "exclude", nil, "product ids to leave out")
	f.StringSliceVar(&opts.categories, "category", nil, "restrict to these categories")
	f.StringSliceVar(&opts.artisans, "artisan", nil, "restrict to these artisans")
	f.Float64Var(&opts.minPrice, "min-price", 0, "lowest acceptable price")
	f.Float64Var(&opts.maxPrice, "max-price", 0, "highest acceptable price")
	f.StringVar(&opts.logLevel, "log-level", "warn", "log level written to stderr")
	return cmd
}

func run(cmd *cobra.Command, opts *options, query string) error {
	log := logging.NewWithWriter(cmd.ErrOrStderr(), opts.logLevel, "console", "catalog-search")

	rules := search.DefaultRules()
	if opts.rulesPath != "" {
		loaded, err := search.LoadRules(opts.rulesPath)
		if err != nil {
			return err
		}
		rules = loaded
	}
	engine, err := search.NewEngine(rules)
	if err != nil {
		return err
	}

	catalog := product.SampleCatalog()
	if opts.catalogPath != "" {
		if catalog, err = readCatalog(opts.catalogPath); err != nil {
			return err
		}
	}

	products := product.NewService(product.NewInMemoryRepository(catalog), log)
	svc := recommended.NewService(engine, products, opts.maxResults, log)

	req := recommended.Request{
		UserPrompt:      query,
		MaxResults:      opts.maxResults,
		ExcludeProducts: opts.exclude,
		UserPreferences: preferences(cmd, opts),
	}
	resp, err := svc.Recommend(cmd.Context(), req)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

// preferences is nil unless at least one preference flag was given.
func preferences(cmd *cobra.Command, opts *options) *search.Preferences {
	prefs := &search.Preferences{Categories: opts.categories, Artisans: opts.artisans}
	if cmd.Flags().Changed("min-price") {
		prefs.MinPrice = &opts.minPrice
	}
	if cmd.Flags().Changed("max-price") {
		prefs.MaxPrice = &opts.maxPrice
	}
	if len(prefs.Categories) == 0 && len(prefs.Artisans) == 0 && prefs.MinPrice == nil && prefs.MaxPrice == nil {
		return nil
	}
	return prefs
}

func readCatalog(path string) ([]product.Product, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var out []product.Product
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	return out, nil
}
