package mockdb

import "github.com/bazaarhq/adminapi/internal/domain"

// ReadOnlyStore is the minimal store API for read-only consumers.
type ReadOnlyStore interface {
	Snapshot() (domain.Catalog, error)
}

// PersistableStore is the store API needed by the persistence scheduler.
type PersistableStore interface {
	IsDirty() bool
	Snapshot() (domain.Catalog, error)
	ClearDirty()
	SetLastUpdate(ts int64)
}
