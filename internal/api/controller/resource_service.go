package controller

import (
	"context"

	"github.com/bazaarhq/adminapi/internal/backend"
	"github.com/bazaarhq/adminapi/internal/fetch"
	"github.com/bazaarhq/adminapi/internal/notify"
)

// ResourceService wraps one backend collection behind a TTL-cached list.
// Item reads go straight to the backend; item writes invalidate the cached
// list and follow the success/error notification contract.
type ResourceService[T any] struct {
	name   string
	path   string
	client backend.Client
	center *notify.Center
	list   *fetch.Resource[[]T]
}

// NewResourceService builds a service for the collection at path
// (e.g. "/users"). name labels notifications and logs.
func NewResourceService[T any](name, path string, client backend.Client, center *notify.Center, opts fetch.Options) *ResourceService[T] {
	list := fetch.NewResource(name, func(ctx context.Context) ([]T, error) {
		var items []T
		if err := client.Get(ctx, path, &items); err != nil {
			return nil, err
		}
		return items, nil
	}, center, opts)

	return &ResourceService[T]{
		name:   name,
		path:   path,
		client: client,
		center: center,
		list:   list,
	}
}

// List returns the collection, from cache when fresh unless force is set.
func (s *ResourceService[T]) List(ctx context.Context, force bool) ([]T, error) {
	return s.list.Get(ctx, force)
}

// ListState exposes the cached list's fetch state.
func (s *ResourceService[T]) ListState() fetch.State[[]T] {
	return s.list.State()
}

// Get reads a single item by id, bypassing the list cache.
func (s *ResourceService[T]) Get(ctx context.Context, id string) (T, error) {
	var item T
	if err := s.client.Get(ctx, s.path+"/"+id, &item); err != nil {
		return item, err
	}
	return item, nil
}

// Save creates or updates an item. The server-returned object is
// authoritative. The cached list is invalidated so the next read refetches.
func (s *ResourceService[T]) Save(ctx context.Context, item T) (T, error) {
	var saved T
	if err := s.client.Post(ctx, s.path, item, &saved); err != nil {
		s.center.Error(backend.Humanize(err))
		return saved, err
	}
	s.list.Invalidate()
	s.center.Success(s.name + " saved")
	return saved, nil
}

// Remove deletes an item by id and invalidates the cached list.
func (s *ResourceService[T]) Remove(ctx context.Context, id string) error {
	if err := s.client.Delete(ctx, s.path+"/"+id); err != nil {
		s.center.Error(backend.Humanize(err))
		return err
	}
	s.list.Invalidate()
	s.center.Success(s.name + " deleted")
	return nil
}

// Invalidate drops list freshness; used by sibling operations that mutate
// collection members through non-CRUD endpoints.
func (s *ResourceService[T]) Invalidate() {
	s.list.Invalidate()
}
