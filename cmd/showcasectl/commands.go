package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/example/ec-showcase/internal/app"
	"github.com/example/ec-showcase/internal/auth"
	"github.com/example/ec-showcase/internal/config"
	"github.com/example/ec-showcase/internal/domain/catalog"
	"github.com/example/ec-showcase/internal/domain/showcase"
	"github.com/example/ec-showcase/internal/infrastructure/kafka"
	"github.com/example/ec-showcase/internal/products"
	"github.com/example/ec-showcase/internal/query"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	variantFlag  string
	tickFlag     int
	operatorFlag string
	roleFlag     string
)

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return cfg, nil
}

func selectedVariants() ([]showcase.Variant, error) {
	if variantFlag == "" {
		return showcase.Variants, nil
	}
	v := showcase.Variant(variantFlag)
	if !v.Valid() {
		return nil, fmt.Errorf("unknown variant %q (want compact or wide)", variantFlag)
	}
	return []showcase.Variant{v}, nil
}

func runLayout(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	variants, err := selectedVariants()
	if err != nil {
		return err
	}

	store := catalog.Default()
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, v := range variants {
		layout := showcase.Assemble(cfg.LayoutConfig(), store, v)
		fmt.Fprintf(tw, "%s (%d columns)\n", v, layout.Columns)
		fmt.Fprintln(tw, "INDEX\tSLOT\tCOLLECTION\tSTRATEGY\tSPAN\tDELAY")
		for _, s := range layout.Slots {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%s\n",
				s.Index, s.Name, s.Collection.Slug, s.Strategy, s.Span, s.Delay)
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

func runCards(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	variants, err := selectedVariants()
	if err != nil {
		return err
	}
	if tickFlag < 0 {
		return fmt.Errorf("tick must not be negative")
	}

	ctx := commandContext(cmd)
	store := catalog.Default()
	prods, err := app.OpenProducts(ctx, cfg, store, logger)
	if err != nil {
		return err
	}
	defer prods.Close()
	delivery, err := app.NewDelivery(cfg.Imaging, logger)
	if err != nil {
		return err
	}

	handler := query.NewHandler(store, prods.Source, config.NewHolder(cfg), delivery, logger)
	view := handler.Showcase(ctx, variants, tickFlag, cfg.GetRotationInterval())

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(view)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var errs []error
	if err := cfg.Validate(); err != nil {
		errs = append(errs, err)
	}
	// the server tolerates unknown collections; here they are errors
	for _, p := range cfg.LayoutConfig().Problems(catalog.Default()) {
		if errors.Is(p, showcase.ErrUnknownCollection) {
			errs = append(errs, p)
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", configPath)
	return nil
}

func runToken(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cfg.IsAdminEnabled() {
		return fmt.Errorf("no JWT secret configured (set JWT_SECRET)")
	}
	if roleFlag != auth.RoleAdmin && roleFlag != auth.RoleEditor {
		return fmt.Errorf("unknown role %q", roleFlag)
	}

	svc, err := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.GetTokenExpiry())
	if err != nil {
		return err
	}
	token, expiresAt, err := svc.GenerateAccessToken(operatorFlag, roleFlag)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	fmt.Fprintf(cmd.ErrOrStderr(), "expires %s\n", expiresAt.Format(time.RFC3339))
	return nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Products.Source != config.SourcePostgres {
		return fmt.Errorf("seed needs the postgres product source (set DATABASE_URL)")
	}
	cfg.Products.Seed = true
	cfg.Cache.Enabled = false

	ctx := commandContext(cmd)
	store := catalog.Default()
	prods, err := app.OpenProducts(ctx, cfg, store, logger)
	if err != nil {
		return err
	}
	defer prods.Close()

	changes := collectionChanges(products.SeedProducts(store))
	fmt.Fprintf(cmd.OutOrStdout(), "seeded %d collections\n", len(changes))

	if !cfg.Kafka.Enabled {
		return nil
	}
	producer := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	defer producer.Close()
	for _, change := range changes {
		if _, err := producer.PublishEvent(ctx, change.CollectionSlug, catalog.AggregateType, catalog.EventCollectionProductsChanged, change); err != nil {
			return fmt.Errorf("announce %s: %w", change.CollectionSlug, err)
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "announced %d collection changes\n", len(changes))
	return nil
}

func runInitConfig(cmd *cobra.Command, args []string) error {
	path := configPath
	if len(args) == 1 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := config.Default().Save(path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}

// collectionChanges groups product ids by collection, ordered by slug
func collectionChanges(list []catalog.Product) []catalog.CollectionProductsChanged {
	now := time.Now().UTC()
	bySlug := make(map[string]*catalog.CollectionProductsChanged)
	for _, p := range list {
		c, ok := bySlug[p.Collection.Slug]
		if !ok {
			c = &catalog.CollectionProductsChanged{CollectionSlug: p.Collection.Slug, ChangedAt: now}
			bySlug[p.Collection.Slug] = c
		}
		c.ProductIDs = append(c.ProductIDs, p.ID)
	}

	out := make([]catalog.CollectionProductsChanged, 0, len(bySlug))
	for _, c := range bySlug {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CollectionSlug < out[j].CollectionSlug })
	return out
}
