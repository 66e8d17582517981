package mockdb

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bazaarhq/adminapi/internal/domain"
)

// Entity lookup failures surfaced by the store.
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrSupplierNotFound     = errors.New("supplier not found")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrOrderNotFound        = errors.New("order not found")
	ErrVerificationNotFound = errors.New("verification not found")
	ErrNoProfile            = errors.New("profile not configured")
	ErrBadTransition        = errors.New("status transition not allowed")
)

// Store keeps an in-memory copy of the catalog document. It backs the mock
// backend client during local development.
type Store struct {
	mu         sync.RWMutex
	data       domain.Catalog
	dirty      bool  // true if the store changed since last persist
	lastUpdate int64 // catalog metadata.lastUpdate
}

// NewStore creates a store seeded with the given catalog.
func NewStore(doc domain.Catalog) *Store {
	return &Store{data: doc, lastUpdate: doc.Metadata.LastUpdate}
}

// MarkDirty sets the dirty flag to true.
func (s *Store) MarkDirty() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dirty = true
}

// IsDirty returns true if the store has uncommitted changes.
func (s *Store) IsDirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirty
}

// ClearDirty resets the dirty flag.
func (s *Store) ClearDirty() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dirty = false
}

// GetLastUpdate returns the store's last update timestamp.
func (s *Store) GetLastUpdate() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastUpdate
}

// SetLastUpdate sets the store's last update timestamp.
func (s *Store) SetLastUpdate(ts int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUpdate = ts
}

// Snapshot returns a deep copy of the catalog.
func (s *Store) Snapshot() (domain.Catalog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneCatalog(s.data)
}

// Replace swaps the whole catalog.
func (s *Store) Replace(doc domain.Catalog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cloned, err := cloneCatalog(doc)
	if err != nil {
		return err
	}
	s.data = cloned
	s.lastUpdate = doc.Metadata.LastUpdate
	s.dirty = false

	return nil
}

// Users returns a copy of all users.
func (s *Store) Users() ([]domain.User, error) {
	doc, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	return doc.Users, nil
}

// User returns a single user by id.
func (s *Store) User(id string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.data.Users {
		if u.ID == id {
			return u, nil
		}
	}
	return domain.User{}, fmt.Errorf("%w: %s", ErrUserNotFound, id)
}

// UpsertUser inserts or replaces a user by id, assigning an id when absent.
func (s *Store) UpsertUser(u domain.User) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt == 0 {
		u.CreatedAt = time.Now().UnixMilli()
	}

	replaced := false
	for i := range s.data.Users {
		if s.data.Users[i].ID == u.ID {
			s.data.Users[i] = u
			replaced = true
			break
		}
	}
	if !replaced {
		s.data.Users = append(s.data.Users, u)
	}
	s.dirty = true
	return u, nil
}

// RemoveUser deletes a user by id.
func (s *Store) RemoveUser(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.data.Users {
		if s.data.Users[i].ID == id {
			s.data.Users = append(s.data.Users[:i], s.data.Users[i+1:]...)
			s.dirty = true
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUserNotFound, id)
}

// Suppliers returns a copy of all suppliers.
func (s *Store) Suppliers() ([]domain.Supplier, error) {
	doc, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	return doc.Suppliers, nil
}

// Supplier returns a single supplier by id.
func (s *Store) Supplier(id string) (domain.Supplier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sp := range s.data.Suppliers {
		if sp.ID == id {
			return sp, nil
		}
	}
	return domain.Supplier{}, fmt.Errorf("%w: %s", ErrSupplierNotFound, id)
}

// UpsertSupplier inserts or replaces a supplier by id.
func (s *Store) UpsertSupplier(sp domain.Supplier) (domain.Supplier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sp.ID == "" {
		sp.ID = uuid.NewString()
	}
	if sp.CreatedAt == 0 {
		sp.CreatedAt = time.Now().UnixMilli()
	}
	if sp.Status == "" {
		sp.Status = domain.SupplierPending
	}

	replaced := false
	for i := range s.data.Suppliers {
		if s.data.Suppliers[i].ID == sp.ID {
			s.data.Suppliers[i] = sp
			replaced = true
			break
		}
	}
	if !replaced {
		s.data.Suppliers = append(s.data.Suppliers, sp)
	}
	s.dirty = true
	return sp, nil
}

// RemoveSupplier deletes a supplier by id.
func (s *Store) RemoveSupplier(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.data.Suppliers {
		if s.data.Suppliers[i].ID == id {
			s.data.Suppliers = append(s.data.Suppliers[:i], s.data.Suppliers[i+1:]...)
			s.dirty = true
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrSupplierNotFound, id)
}

// Categories returns a copy of all categories.
func (s *Store) Categories() ([]domain.Category, error) {
	doc, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	return doc.Categories, nil
}

// Category returns a single category by id.
func (s *Store) Category(id string) (domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.data.Categories {
		if c.ID == id {
			return c, nil
		}
	}
	return domain.Category{}, fmt.Errorf("%w: %s", ErrCategoryNotFound, id)
}

// UpsertCategory inserts or replaces a category by id.
func (s *Store) UpsertCategory(c domain.Category) (domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID == "" {
		c.ID = uuid.NewString()
	}

	replaced := false
	for i := range s.data.Categories {
		if s.data.Categories[i].ID == c.ID {
			s.data.Categories[i] = c
			replaced = true
			break
		}
	}
	if !replaced {
		s.data.Categories = append(s.data.Categories, c)
	}
	s.dirty = true
	return c, nil
}

// RemoveCategory deletes a category by id.
func (s *Store) RemoveCategory(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.data.Categories {
		if s.data.Categories[i].ID == id {
			s.data.Categories = append(s.data.Categories[:i], s.data.Categories[i+1:]...)
			s.dirty = true
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrCategoryNotFound, id)
}

// Orders returns a copy of all orders.
func (s *Store) Orders() ([]domain.Order, error) {
	doc, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	return doc.Orders, nil
}

// Order returns a single order by id.
func (s *Store) Order(id string) (domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.data.Orders {
		if o.ID == id {
			return o, nil
		}
	}
	return domain.Order{}, fmt.Errorf("%w: %s", ErrOrderNotFound, id)
}

// SetOrderStatus moves an order to the next status, enforcing the
// allowed transitions, and returns the updated order.
func (s *Store) SetOrderStatus(id string, next domain.OrderStatus) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.data.Orders {
		if s.data.Orders[i].ID != id {
			continue
		}
		current := s.data.Orders[i].Status
		if !current.CanTransition(next) {
			return domain.Order{}, fmt.Errorf("%w: %s -> %s", ErrBadTransition, current, next)
		}
		s.data.Orders[i].Status = next
		s.dirty = true
		return s.data.Orders[i], nil
	}
	return domain.Order{}, fmt.Errorf("%w: %s", ErrOrderNotFound, id)
}

// Verifications returns a copy of all verification requests.
func (s *Store) Verifications() ([]domain.Verification, error) {
	doc, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	return doc.Verifications, nil
}

// ReviewVerification settles a pending verification and returns it.
func (s *Store) ReviewVerification(id string, status domain.VerificationStatus, note string) (domain.Verification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.data.Verifications {
		if s.data.Verifications[i].ID != id {
			continue
		}
		if s.data.Verifications[i].Status != domain.VerificationPending {
			return domain.Verification{}, fmt.Errorf("%w: already %s", ErrBadTransition, s.data.Verifications[i].Status)
		}
		now := time.Now().UnixMilli()
		s.data.Verifications[i].Status = status
		s.data.Verifications[i].Note = note
		s.data.Verifications[i].ReviewedAt = &now
		s.dirty = true
		return s.data.Verifications[i], nil
	}
	return domain.Verification{}, fmt.Errorf("%w: %s", ErrVerificationNotFound, id)
}

// Profile returns a copy of the admin profile.
func (s *Store) Profile() (domain.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data.Profile == nil {
		return domain.Profile{}, ErrNoProfile
	}
	return cloneProfile(*s.data.Profile)
}

// ReplaceProfile swaps the whole profile document and returns the stored copy.
// The server-side record is authoritative: the id never changes through a replace.
func (s *Store) ReplaceProfile(p domain.Profile) (domain.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data.Profile == nil {
		return domain.Profile{}, ErrNoProfile
	}
	p.ID = s.data.Profile.ID
	p.Preferences.ApplyDefaults()
	cloned, err := cloneProfile(p)
	if err != nil {
		return domain.Profile{}, err
	}
	s.data.Profile = &cloned
	s.dirty = true
	return cloneProfile(cloned)
}

// PatchPreferences applies a partial preference edit, leaving the rest of the
// profile untouched, and returns the updated profile.
func (s *Store) PatchPreferences(patch domain.PreferencesPatch) (domain.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data.Profile == nil {
		return domain.Profile{}, ErrNoProfile
	}
	patch.ApplyTo(&s.data.Profile.Preferences)
	s.dirty = true
	return cloneProfile(*s.data.Profile)
}

// cloneCatalog deep-copies the document to avoid shared slices between store and callers.
func cloneCatalog(doc domain.Catalog) (domain.Catalog, error) {
	bytes, err := json.Marshal(doc)
	if err != nil {
		return domain.Catalog{}, err
	}
	var copy domain.Catalog
	if err := json.Unmarshal(bytes, &copy); err != nil {
		return domain.Catalog{}, err
	}
	return copy, nil
}

// cloneProfile deep-copies a profile to avoid shared pointer fields.
func cloneProfile(p domain.Profile) (domain.Profile, error) {
	bytes, err := json.Marshal(p)
	if err != nil {
		return domain.Profile{}, err
	}
	var copy domain.Profile
	if err := json.Unmarshal(bytes, &copy); err != nil {
		return domain.Profile{}, err
	}
	return copy, nil
}
