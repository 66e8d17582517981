package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-playground/validator/v10"

	"github.com/bazaarhq/adminapi/internal/domain"
	"github.com/bazaarhq/adminapi/internal/logger"
)

// JSONRepository handles disk persistence and watching of the catalog file.
type JSONRepository struct {
	path      string
	dir       string
	base      string
	validator *validator.Validate
	mu        sync.Mutex
}

// NewJSONRepository creates a repository for the given JSON file path.
// It returns the repository interface to avoid leaking implementation details.
func NewJSONRepository(path string) (Repository, error) {
	if path == "" {
		return nil, errors.New("catalog file path is required")
	}

	dir := filepath.Dir(path)
	base := filepath.Base(path)
	if dir == "" || dir == "." {
		dir = "."
	}

	return &JSONRepository{path: path, dir: dir, base: base, validator: validator.New()}, nil
}

// Load reads the catalog file, parses and validates it.
func (r *JSONRepository) Load(ctx context.Context) (*domain.Catalog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("open catalog file: %w", err)
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	var doc domain.Catalog
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode catalog file: %w", err)
	}

	doc.ApplyDefaults()

	if err := r.validator.Struct(&doc); err != nil {
		return nil, fmt.Errorf("validate catalog file: %w", err)
	}

	return &doc, nil
}

// Save validates and writes the catalog atomically to disk.
func (r *JSONRepository) Save(ctx context.Context, doc *domain.Catalog) error {
	if doc == nil {
		return errors.New("catalog is nil")
	}
	if err := r.validator.Struct(doc); err != nil {
		return fmt.Errorf("validate before save: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal catalog: %w", err)
	}

	tmpFile, err := os.CreateTemp(r.dir, r.base+".tmp-")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		tmpFile.Close()
		os.Remove(tmpFile.Name())
	}()

	if _, err := tmpFile.Write(payload); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpFile.Name(), r.path); err != nil {
		return fmt.Errorf("replace catalog file: %w", err)
	}

	return nil
}

// StartWatcher listens for changes to the catalog file and reloads the store
// after debounce. It watches the parent directory (not the file) so atomic
// replace sequences (temp+rename) are still observed. Events are filtered by
// basename and debounced to avoid double reloads on write+chmod/rename cycles.
// The caller owns the provided context: cancel it to stop the goroutine and
// close the watcher cleanly.
func (r *JSONRepository) StartWatcher(ctx context.Context, store CatalogStore) error {
	if store == nil {
		return errors.New("catalog store is required")
	}
	onChange := r.makeWatcherCallback(ctx, store)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(r.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch dir: %w", err)
	}

	go func() {
		defer watcher.Close()

		// debounce coalesces bursty fsnotify events (write+chmod/rename) into a single reload.
		var debounce *time.Timer
		schedule := func() {
			if debounce != nil {
				if !debounce.Stop() {
					select {
					case <-debounce.C:
					default:
					}
				}
			}
			debounce = time.AfterFunc(200*time.Millisecond, onChange)
		}

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != r.base {
					continue
				}
				// Writes/Create/Chmod cover normal edits and atomic replace; trigger reload.
				// Remove/Rename means the file was moved or replaced; the next Create follows.
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Chmod|fsnotify.Remove|fsnotify.Rename) != 0 {
					schedule()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.WithComponent("json-repo").Errorf("watcher error: %v", err)
			}
		}
	}()

	return nil
}

// makeWatcherCallback returns a callback that reloads the store from disk if needed.
func (r *JSONRepository) makeWatcherCallback(ctx context.Context, store CatalogStore) func() {
	log := logger.WithComponent("json-repo")
	return func() {
		diskDoc, loadErr := r.Load(ctx)
		if loadErr != nil {
			log.Errorf("watch reload failed: %v", loadErr)
			return
		}
		storeLastUpdate := store.GetLastUpdate()
		diskLastUpdate := diskDoc.Metadata.LastUpdate

		// If disk is not newer, skip reload
		if diskLastUpdate < storeLastUpdate {
			log.Debugf("disk version is not newer than store: disk=%d store=%d", diskLastUpdate, storeLastUpdate)
			return
		}

		if store.IsDirty() {
			log.Warn("disk data is newer but store is dirty; skipping reload")
			// the store content will be written to file soon anyway
			return
		}

		isDiskSameAsStore := false
		if diskLastUpdate == storeLastUpdate {
			// check if disk content is really the same as store content
			snapshot, err := store.Snapshot()
			if err != nil {
				log.Errorf("store reload error: failed to get snapshot: %v", err)
				return
			}
			isDiskSameAsStore = domain.AreCatalogsEqual(&snapshot, diskDoc)
		}
		if !isDiskSameAsStore {
			if err := store.Replace(*diskDoc); err != nil {
				log.Errorf("store reload error: %v", err)
				return
			}
			log.Info("store reloaded from newer disk version")
		}
	}
}
