package repository

import (
	"context"

	"github.com/bazaarhq/adminapi/internal/domain"
)

// Saver persists a catalog document.
// Small interface used by background jobs like the persistence scheduler.
type Saver interface {
	Save(ctx context.Context, doc *domain.Catalog) error
}

// CatalogStore defines the store operations needed by the watcher callback.
type CatalogStore interface {
	GetLastUpdate() int64
	IsDirty() bool
	Snapshot() (domain.Catalog, error)
	Replace(doc domain.Catalog) error
}

// Repository abstracts persistence and watching of the catalog file.
// JSONRepository implements this interface.
type Repository interface {
	Saver
	Load(ctx context.Context) (*domain.Catalog, error)
	StartWatcher(ctx context.Context, store CatalogStore) error
}
