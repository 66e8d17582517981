package app

import (
	"context"
	"errors"

	"github.com/bazaarhq/adminapi/internal/backend"
	"github.com/bazaarhq/adminapi/internal/config"
	"github.com/bazaarhq/adminapi/internal/mockdb"
	"github.com/bazaarhq/adminapi/internal/notify"
	"github.com/bazaarhq/adminapi/internal/repository"
)

// App is the application container (immutable dependencies + lifecycle context).
// It is not a request context; handlers should still use gin's request context.
type App struct {
	Config *config.Config
	Client backend.Client
	Center *notify.Center

	// Repo and Store are set only in mock backend mode; in http mode the
	// marketplace backend owns the data.
	Repo  repository.Repository
	Store *mockdb.Store

	BaseCtx context.Context
	Cancel  context.CancelFunc
}

func New(cfg *config.Config, client backend.Client, center *notify.Center) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if client == nil {
		return nil, errors.New("backend client is nil")
	}
	if center == nil {
		return nil, errors.New("notification center is nil")
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &App{
		Config:  cfg,
		Client:  client,
		Center:  center,
		BaseCtx: ctx,
		Cancel:  cancel,
	}, nil
}

func (a *App) Shutdown() {
	if a == nil || a.Cancel == nil {
		return
	}
	a.Cancel()
}

// StartWatchers starts the catalog file watcher and the persistence
// scheduler. Only meaningful in mock backend mode; it is a no-op when the
// repository or store is absent.
func (a *App) StartWatchers() error {
	if a.Repo == nil || a.Store == nil {
		return nil
	}

	if err := a.Repo.StartWatcher(a.BaseCtx, a.Store); err != nil {
		return err
	}

	mockdb.StartPersistenceScheduler(a.BaseCtx, a.Store, a.Repo, a.Config.Data.PersistInterval)
	return nil
}
