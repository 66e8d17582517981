package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/bazaarhq/adminapi/internal/domain"
	"github.com/bazaarhq/adminapi/internal/mockdb"
)

// MockClient serves the Client contract from the local mock catalog store.
// It exists for local development: same paths, same verbs, same error kinds
// as the real backend, no network.
type MockClient struct {
	store *mockdb.Store
}

// NewMockClient wraps a catalog store.
func NewMockClient(store *mockdb.Store) (*MockClient, error) {
	if store == nil {
		return nil, errors.New("catalog store is required")
	}
	return &MockClient{store: store}, nil
}

func (m *MockClient) Get(ctx context.Context, path string, out any) error {
	if err := ctx.Err(); err != nil {
		return Classify(err)
	}
	head, id := splitPath(path)
	switch {
	case head == "profile" && id == "":
		p, err := m.store.Profile()
		return m.reply(out, p, err)
	case head == "users" && id == "":
		us, err := m.store.Users()
		return m.reply(out, us, err)
	case head == "users":
		u, err := m.store.User(id)
		return m.reply(out, u, err)
	case head == "suppliers" && id == "":
		sp, err := m.store.Suppliers()
		return m.reply(out, sp, err)
	case head == "suppliers":
		sp, err := m.store.Supplier(id)
		return m.reply(out, sp, err)
	case head == "categories" && id == "":
		cs, err := m.store.Categories()
		return m.reply(out, cs, err)
	case head == "categories":
		c, err := m.store.Category(id)
		return m.reply(out, c, err)
	case head == "orders" && id == "":
		os, err := m.store.Orders()
		return m.reply(out, os, err)
	case head == "orders":
		o, err := m.store.Order(id)
		return m.reply(out, o, err)
	case head == "verifications" && id == "":
		vs, err := m.store.Verifications()
		return m.reply(out, vs, err)
	default:
		return NotFound("GET " + path)
	}
}

func (m *MockClient) Post(ctx context.Context, path string, body, out any) error {
	if err := ctx.Err(); err != nil {
		return Classify(err)
	}
	head, rest := splitPath(path)
	switch head {
	case "users":
		var u domain.User
		if err := rebind(body, &u); err != nil {
			return err
		}
		saved, err := m.store.UpsertUser(u)
		return m.reply(out, saved, err)
	case "suppliers":
		var sp domain.Supplier
		if err := rebind(body, &sp); err != nil {
			return err
		}
		saved, err := m.store.UpsertSupplier(sp)
		return m.reply(out, saved, err)
	case "categories":
		var c domain.Category
		if err := rebind(body, &c); err != nil {
			return err
		}
		saved, err := m.store.UpsertCategory(c)
		return m.reply(out, saved, err)
	case "verifications":
		// POST /verifications/:id/approve and /verifications/:id/reject
		id, action := splitPath(rest)
		var review struct {
			Note string `json:"note"`
		}
		if body != nil {
			if err := rebind(body, &review); err != nil {
				return err
			}
		}
		var status domain.VerificationStatus
		switch action {
		case "approve":
			status = domain.VerificationApproved
		case "reject":
			status = domain.VerificationRejected
		default:
			return NotFound("POST " + path)
		}
		v, err := m.store.ReviewVerification(id, status, review.Note)
		return m.reply(out, v, err)
	default:
		return NotFound("POST " + path)
	}
}

func (m *MockClient) Put(ctx context.Context, path string, body, out any) error {
	if err := ctx.Err(); err != nil {
		return Classify(err)
	}
	head, rest := splitPath(path)
	switch {
	case head == "profile" && rest == "":
		var p domain.Profile
		if err := rebind(body, &p); err != nil {
			return err
		}
		saved, err := m.store.ReplaceProfile(p)
		return m.reply(out, saved, err)
	case head == "profile" && rest == "password":
		var change struct {
			CurrentPassword string `json:"currentPassword"`
			NewPassword     string `json:"newPassword"`
		}
		if err := rebind(body, &change); err != nil {
			return err
		}
		if change.CurrentPassword == "" || len(change.NewPassword) < 8 {
			return Invalid("password change rejected", map[string]string{
				"newPassword": "must be at least 8 characters",
			})
		}
		return nil
	case head == "orders" && strings.HasSuffix(rest, "/status"):
		id := strings.TrimSuffix(rest, "/status")
		var change struct {
			Status domain.OrderStatus `json:"status"`
		}
		if err := rebind(body, &change); err != nil {
			return err
		}
		o, err := m.store.SetOrderStatus(id, change.Status)
		return m.reply(out, o, err)
	default:
		return NotFound("PUT " + path)
	}
}

func (m *MockClient) Patch(ctx context.Context, path string, body, out any) error {
	if err := ctx.Err(); err != nil {
		return Classify(err)
	}
	head, rest := splitPath(path)
	if head == "profile" && rest == "preferences" {
		var patch domain.PreferencesPatch
		if err := rebind(body, &patch); err != nil {
			return err
		}
		p, err := m.store.PatchPreferences(patch)
		return m.reply(out, p, err)
	}
	return NotFound("PATCH " + path)
}

func (m *MockClient) Delete(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return Classify(err)
	}
	head, id := splitPath(path)
	if id == "" {
		return NotFound("DELETE " + path)
	}
	var err error
	switch head {
	case "users":
		err = m.store.RemoveUser(id)
	case "suppliers":
		err = m.store.RemoveSupplier(id)
	case "categories":
		err = m.store.RemoveCategory(id)
	default:
		return NotFound("DELETE " + path)
	}
	return m.translate(err)
}

// reply translates store errors and copies the result into out.
func (m *MockClient) reply(out, value any, err error) error {
	if err != nil {
		return m.translate(err)
	}
	if out == nil {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal mock response: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode mock response: %w", err)
	}
	return nil
}

// translate maps store sentinels onto the structured error taxonomy, so the
// mock behaves exactly like the HTTP client under failure.
func (m *MockClient) translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mockdb.ErrUserNotFound),
		errors.Is(err, mockdb.ErrSupplierNotFound),
		errors.Is(err, mockdb.ErrCategoryNotFound),
		errors.Is(err, mockdb.ErrOrderNotFound),
		errors.Is(err, mockdb.ErrVerificationNotFound),
		errors.Is(err, mockdb.ErrNoProfile):
		return NotFound(err.Error())
	case errors.Is(err, mockdb.ErrBadTransition):
		return Conflict(err.Error())
	default:
		return Classify(err)
	}
}

// rebind re-marshals an arbitrary request body into the concrete mock type.
func rebind(body, out any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return Invalid("malformed request body", nil)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return Invalid("malformed request body", nil)
	}
	return nil
}

// splitPath strips the leading slash and splits off the first segment.
func splitPath(path string) (head, rest string) {
	path = strings.Trim(path, "/")
	if i := strings.Index(path, "/"); i >= 0 {
		return path[:i], path[i+1:]
	}
	return path, ""
}
