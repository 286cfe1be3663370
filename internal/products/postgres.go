package products

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/ec-showcase/internal/domain/catalog"
	"github.com/lib/pq"
)

const productColumns = `id, name, slug, description, price, compare_at_price, images,
	category_slug, collection_slug, sizes, colors, in_stock, featured, created_at`

const schema = `
CREATE TABLE IF NOT EXISTS showcase_products (
	id               TEXT PRIMARY KEY,
	name             TEXT NOT NULL,
	slug             TEXT NOT NULL UNIQUE,
	description      TEXT NOT NULL DEFAULT '',
	price            NUMERIC(10,2) NOT NULL,
	compare_at_price NUMERIC(10,2),
	images           TEXT[] NOT NULL DEFAULT '{}',
	category_slug    TEXT NOT NULL DEFAULT '',
	collection_slug  TEXT NOT NULL,
	sizes            TEXT[] NOT NULL DEFAULT '{}',
	colors           JSONB NOT NULL DEFAULT '[]',
	in_stock         BOOLEAN NOT NULL DEFAULT TRUE,
	featured         BOOLEAN NOT NULL DEFAULT FALSE,
	position         INTEGER NOT NULL DEFAULT 0,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_showcase_products_collection
	ON showcase_products (collection_slug, position);
`

// Connect opens a PostgreSQL connection pool and verifies it
func Connect(connStr string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

// PostgresSource reads products from the showcase_products table.
// Category and collection details are joined from the catalog store.
type PostgresSource struct {
	db      *sql.DB
	catalog *catalog.Store
}

// NewPostgresSource creates a PostgreSQL-backed product source
func NewPostgresSource(db *sql.DB, store *catalog.Store) *PostgresSource {
	return &PostgresSource{db: db, catalog: store}
}

// EnsureSchema creates the products table if it does not exist
func (s *PostgresSource) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Upsert writes products, keeping their slice order as collection order
func (s *PostgresSource) Upsert(ctx context.Context, products []catalog.Product) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for i, p := range products {
		colors, err := json.Marshal(p.Colors)
		if err != nil {
			return fmt.Errorf("marshal colors for %s: %w", p.ID, err)
		}
		sizes := make([]string, len(p.Sizes))
		for j, size := range p.Sizes {
			sizes[j] = string(size)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO showcase_products (id, name, slug, description, price, compare_at_price, images,
				category_slug, collection_slug, sizes, colors, in_stock, featured, position, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				slug = EXCLUDED.slug,
				description = EXCLUDED.description,
				price = EXCLUDED.price,
				compare_at_price = EXCLUDED.compare_at_price,
				images = EXCLUDED.images,
				category_slug = EXCLUDED.category_slug,
				collection_slug = EXCLUDED.collection_slug,
				sizes = EXCLUDED.sizes,
				colors = EXCLUDED.colors,
				in_stock = EXCLUDED.in_stock,
				featured = EXCLUDED.featured,
				position = EXCLUDED.position
		`, p.ID, p.Name, p.Slug, p.Description, p.Price, p.CompareAtPrice, pq.Array(p.Images),
			p.Category.Slug, p.Collection.Slug, pq.Array(sizes), colors, p.InStock, p.Featured, i, p.CreatedAt)
		if err != nil {
			return fmt.Errorf("upsert product %s: %w", p.ID, err)
		}
	}
	return tx.Commit()
}

func (s *PostgresSource) ProductsForCollection(ctx context.Context, slug string) ([]catalog.Product, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+productColumns+`
		FROM showcase_products WHERE collection_slug = $1
		ORDER BY position, created_at
	`, slug)
	if err != nil {
		return nil, fmt.Errorf("query collection %q: %w", slug, err)
	}
	return s.scanProducts(rows)
}

func (s *PostgresSource) AllProducts(ctx context.Context) ([]catalog.Product, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+productColumns+`
		FROM showcase_products ORDER BY position, created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	return s.scanProducts(rows)
}

func (s *PostgresSource) scanProducts(rows *sql.Rows) ([]catalog.Product, error) {
	defer rows.Close()

	products := []catalog.Product{}
	for rows.Next() {
		var (
			p              catalog.Product
			compareAt      sql.NullFloat64
			categorySlug   string
			collectionSlug string
			sizes          []string
			colors         []byte
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.Slug, &p.Description, &p.Price, &compareAt,
			pq.Array(&p.Images), &categorySlug, &collectionSlug, pq.Array(&sizes), &colors,
			&p.InStock, &p.Featured, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}

		if compareAt.Valid {
			v := compareAt.Float64
			p.CompareAtPrice = &v
		}
		for _, size := range sizes {
			p.Sizes = append(p.Sizes, catalog.Size(size))
		}
		if len(colors) > 0 {
			if err := json.Unmarshal(colors, &p.Colors); err != nil {
				return nil, fmt.Errorf("decode colors for %s: %w", p.ID, err)
			}
		}
		p.Category = s.category(categorySlug)
		p.Collection = s.collection(collectionSlug)

		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *PostgresSource) category(slug string) catalog.Category {
	if c, ok := s.catalog.CategoryBySlug(slug); ok {
		return c
	}
	return catalog.Category{ID: slug, Name: slug, Slug: slug}
}

func (s *PostgresSource) collection(slug string) catalog.Collection {
	if c, ok := s.catalog.CollectionBySlug(slug); ok {
		return c
	}
	return catalog.Collection{ID: slug, Name: slug, Slug: slug}
}
