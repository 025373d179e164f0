package main

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/bryanwahyu/marineiq/internal/config"
	"github.com/bryanwahyu/marineiq/internal/domain/catalog"
	infracat "github.com/bryanwahyu/marineiq/internal/infra/catalog"
	"github.com/bryanwahyu/marineiq/internal/infra/db/mysql"
	"github.com/bryanwahyu/marineiq/internal/infra/db/postgres"
	"github.com/bryanwahyu/marineiq/internal/infra/storage"
)

// checkedRepository is a catalog backend that can report its own health.
type checkedRepository interface {
	catalog.Repository
	Check(ctx context.Context) error
}

// backend is the catalog wiring chosen by catalog.backend.
type backend struct {
	name   string
	repo   checkedRepository
	seeder catalog.Seeder                  // nil for read-only backends
	watch  func(ctx context.Context) error // nil unless the file backend watches
	closer func() error

	object *storage.ObjectCatalog
}

func (b *backend) Close() error {
	if b.closer == nil {
		return nil
	}
	return b.closer()
}

// openBackend connects the configured catalog backend. The object-store
// backend serves nothing until load is called.
func openBackend(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*backend, error) {
	b := &backend{name: cfg.Catalog.Backend}
	switch cfg.Catalog.Backend {
	case config.BackendMemory:
		b.repo = infracat.NewBuiltin()

	case config.BackendFile:
		f, err := infracat.OpenFile(cfg.Catalog.Path, logger.Named("catalog"))
		if err != nil {
			return nil, err
		}
		b.repo = f
		if cfg.Catalog.Watch {
			b.watch = f.Watch
		}

	case config.BackendPostgres:
		db, err := postgres.Connect(ctx, cfg.Postgres.DSN)
		if err != nil {
			return nil, fmt.Errorf("postgres connect error: %w", err)
		}
		repo := postgres.NewCatalogRepository(db)
		b.repo, b.seeder, b.closer = repo, repo, db.Close

	case config.BackendMySQL:
		db, err := mysql.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			return nil, fmt.Errorf("mysql connect error: %w", err)
		}
		repo := mysql.NewCatalogRepository(db)
		b.repo, b.seeder, b.closer = repo, repo, db.Close

	case config.BackendMinio:
		store, err := storage.New(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.UseSSL,
		)
		if err != nil {
			return nil, fmt.Errorf("minio init error: %w", err)
		}
		oc := storage.NewObjectCatalog(store, cfg.Catalog.Object)
		b.repo, b.seeder, b.object = oc, oc, oc

	default:
		return nil, fmt.Errorf("unknown catalog backend %q", cfg.Catalog.Backend)
	}
	return b, nil
}

// load fetches the catalog document of the object-store backend. With
// seedMissing, a missing object is created from the built-in catalog.
func (b *backend) load(ctx context.Context, logger *zap.Logger, seedMissing bool) error {
	if b.object == nil {
		return nil
	}
	err := b.object.Load(ctx)
	if seedMissing && errors.Is(err, catalog.ErrNotFound) {
		logger.Warn("catalog object missing, seeding built-in catalog", zap.String("object", b.object.Key()))
		return b.object.Seed(ctx, infracat.Builtin())
	}
	return err
}
