package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metalscrape/backend/internal/domain"
	"github.com/metalscrape/backend/internal/platform/logger"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS product_infos (
	material      TEXT NOT NULL,
	shape         TEXT NOT NULL,
	position      INT NOT NULL,
	uuid          TEXT NOT NULL,
	product_id    TEXT NOT NULL,
	listing_index INT NOT NULL,
	size          TEXT NOT NULL,
	description   TEXT NOT NULL,
	length_skuids JSONB NOT NULL,
	base_weight   DOUBLE PRECISION NOT NULL,
	PRIMARY KEY (material, shape, uuid)
);
CREATE TABLE IF NOT EXISTS product_variations (
	material    TEXT NOT NULL,
	shape       TEXT NOT NULL,
	position    INT NOT NULL,
	parent_uuid TEXT NOT NULL,
	length      INT NOT NULL,
	price       DOUBLE PRECISION NOT NULL,
	PRIMARY KEY (material, shape, position)
);`

// PostgresStore persists bundles in two tables, preserving list order via a position column
type PostgresStore struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// OpenPostgres connects to dsn with at most maxConns connections
func OpenPostgres(ctx context.Context, dsn string, maxConns int, log *logger.Logger) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	if maxConns <= 0 {
		maxConns = 2
	}
	cfg.MaxConns = int32(maxConns)

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &PostgresStore{pool: pool, log: log.With("component", "PostgresStore")}, nil
}

// Migrate creates the catalog tables if they do not exist
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("migrate catalog schema: %w", err)
	}
	return nil
}

// Close releases the pool
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Save replaces the stored bundle for key in a single transaction
func (s *PostgresStore) Save(ctx context.Context, key domain.BundleKey, bundle *domain.ProductBundle) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback(ctx)

	b := &pgx.Batch{}
	b.Queue(`DELETE FROM product_infos WHERE material = $1 AND shape = $2`, key.Material, key.Shape)
	b.Queue(`DELETE FROM product_variations WHERE material = $1 AND shape = $2`, key.Material, key.Shape)

	for i, p := range bundle.Products {
		skus, err := json.Marshal(p.LengthSKUIDs)
		if err != nil {
			return fmt.Errorf("encode length skus for %s: %w", p.UUID, err)
		}
		b.Queue(`INSERT INTO product_infos
			(material, shape, position, uuid, product_id, listing_index, size, description, length_skuids, base_weight)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			key.Material, key.Shape, i, p.UUID, p.ProductID, p.Index, p.Size, p.Desc, skus, p.BaseWeight)
	}
	for i, v := range bundle.Variations {
		b.Queue(`INSERT INTO product_variations
			(material, shape, position, parent_uuid, length, price)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			key.Material, key.Shape, i, v.ParentUUID, v.Length, v.Price)
	}

	if err := tx.SendBatch(ctx, b).Close(); err != nil {
		return fmt.Errorf("save bundle %s/%s: %w", key.Material, key.Shape, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit bundle %s/%s: %w", key.Material, key.Shape, err)
	}

	s.log.Debug("Saved bundle", "material", key.Material, "shape", key.Shape,
		"products", len(bundle.Products), "variations", len(bundle.Variations))
	return nil
}

// Load reads the bundle stored for key
func (s *PostgresStore) Load(ctx context.Context, key domain.BundleKey) (*domain.ProductBundle, error) {
	bundles, err := s.load(ctx, &key)
	if err != nil {
		return nil, err
	}
	bundle, ok := bundles[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", domain.ErrBundleNotFound, key.Material, key.Shape)
	}
	return bundle, nil
}

// LoadAll reads every stored bundle
func (s *PostgresStore) LoadAll(ctx context.Context) (map[domain.BundleKey]*domain.ProductBundle, error) {
	return s.load(ctx, nil)
}

// Keys lists categories that have stored products
func (s *PostgresStore) Keys(ctx context.Context) ([]domain.BundleKey, error) {
	rows, err := s.pool.Query(ctx, `SELECT DISTINCT material, shape FROM product_infos ORDER BY material, shape`)
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.BundleKey, error) {
		var key domain.BundleKey
		err := row.Scan(&key.Material, &key.Shape)
		return key, err
	})
}

// load reads bundles, restricted to one key when only is non-nil
func (s *PostgresStore) load(ctx context.Context, only *domain.BundleKey) (map[domain.BundleKey]*domain.ProductBundle, error) {
	where, args := "", []interface{}{}
	if only != nil {
		where = " WHERE material = $1 AND shape = $2"
		args = append(args, only.Material, only.Shape)
	}

	out := make(map[domain.BundleKey]*domain.ProductBundle)
	bundleFor := func(key domain.BundleKey) *domain.ProductBundle {
		bundle, ok := out[key]
		if !ok {
			bundle = &domain.ProductBundle{Products: []domain.ProductInfo{}, Variations: []domain.ProductVariation{}}
			out[key] = bundle
		}
		return bundle
	}

	rows, err := s.pool.Query(ctx, `SELECT material, shape, uuid, product_id, listing_index, size, description, length_skuids, base_weight
		FROM product_infos`+where+` ORDER BY material, shape, position`, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	for rows.Next() {
		var (
			key  domain.BundleKey
			p    domain.ProductInfo
			skus []byte
		)
		if err := rows.Scan(&key.Material, &key.Shape, &p.UUID, &p.ProductID, &p.Index, &p.Size, &p.Desc, &skus, &p.BaseWeight); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan product: %w", err)
		}
		if err := json.Unmarshal(skus, &p.LengthSKUIDs); err != nil {
			rows.Close()
			return nil, fmt.Errorf("decode length skus for %s: %w", p.UUID, err)
		}
		bundle := bundleFor(key)
		bundle.Products = append(bundle.Products, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read products: %w", err)
	}

	rows, err = s.pool.Query(ctx, `SELECT material, shape, parent_uuid, length, price
		FROM product_variations`+where+` ORDER BY material, shape, position`, args...)
	if err != nil {
		return nil, fmt.Errorf("query variations: %w", err)
	}
	for rows.Next() {
		var (
			key domain.BundleKey
			v   domain.ProductVariation
		)
		if err := rows.Scan(&key.Material, &key.Shape, &v.ParentUUID, &v.Length, &v.Price); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan variation: %w", err)
		}
		bundle := bundleFor(key)
		bundle.Variations = append(bundle.Variations, v)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read variations: %w", err)
	}

	return out, nil
}
