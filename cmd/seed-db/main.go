// Command seed-db loads an initial product catalog (and optionally a demo
// customer) into the database. The catalog file is JSON; files ending in
// .gz are decompressed on the fly.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/go-faster/errors"
	"github.com/klauspost/pgzip"
	"github.com/shopspring/decimal"

	"github.com/xenking/storefront-api/internal/domain/customer"
	"github.com/xenking/storefront-api/internal/domain/product"
	"github.com/xenking/storefront-api/internal/storage/postgres"
)

type productJSON struct {
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	StockLevel int             `json:"stock_level"`
}

func main() {
	var (
		databaseURL  string
		productsFile string
		demoCustomer bool
	)

	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.StringVar(&productsFile, "products-file", "db/seed/products.json", "path to products JSON file (.gz supported)")
	flag.BoolVar(&demoCustomer, "demo-customer", false, "also create a demo customer")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, databaseURL, productsFile, demoCustomer); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("seed completed successfully")
}

func run(ctx context.Context, databaseURL, productsFile string, demoCustomer bool) error {
	slog.Info("connecting to database")

	pool, err := postgres.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	slog.Info("running migrations")

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	if err := seedProducts(ctx, postgres.NewProductRepository(pool), productsFile); err != nil {
		return errors.Wrap(err, "seed products")
	}

	if demoCustomer {
		if err := seedDemoCustomer(ctx, postgres.NewCustomerRepository(pool)); err != nil {
			return errors.Wrap(err, "seed demo customer")
		}
	}

	return nil
}

func seedProducts(ctx context.Context, repo product.Repository, path string) error {
	slog.Info("reading products file", slog.String("path", path))

	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "open products file")
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := pgzip.NewReader(f)
		if err != nil {
			return errors.Wrap(err, "open gzip reader")
		}
		defer gz.Close()
		r = gz
	}

	var products []productJSON
	if err := json.NewDecoder(r).Decode(&products); err != nil {
		return errors.Wrap(err, "parse products JSON")
	}

	for _, p := range products {
		id, err := repo.Create(ctx, &product.Product{
			Name:       p.Name,
			Price:      p.Price,
			StockLevel: p.StockLevel,
		})
		if err != nil {
			return errors.Wrapf(err, "create product %q", p.Name)
		}
		slog.Info("created product", slog.Int64("id", id), slog.String("name", p.Name))
	}

	slog.Info("products seeded", slog.Int("count", len(products)))
	return nil
}

func seedDemoCustomer(ctx context.Context, repo customer.Repository) error {
	id, err := repo.Create(ctx, &customer.Customer{
		Name:        "Demo Customer",
		Email:       "demo@example.com",
		PhoneNumber: "+15551234567",
	})
	if err != nil {
		if errors.Is(err, customer.ErrEmailTaken) {
			slog.Info("demo customer already exists")
			return nil
		}
		return err
	}

	slog.Info("created demo customer", slog.Int64("id", id))
	return nil
}
