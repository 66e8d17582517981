package domain

import (
	"encoding/json"
	"reflect"
)

// SupplierStatus is the closed set of supplier onboarding states.
type SupplierStatus string

const (
	SupplierPending   SupplierStatus = "pending"
	SupplierApproved  SupplierStatus = "approved"
	SupplierSuspended SupplierStatus = "suspended"
)

// OrderStatus is the closed set of order lifecycle states.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPaid      OrderStatus = "paid"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

// VerificationStatus is the closed set of verification review states.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationApproved VerificationStatus = "approved"
	VerificationRejected VerificationStatus = "rejected"
)

// orderTransitions lists the allowed next states per current order status.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:   {OrderPaid, OrderCancelled},
	OrderPaid:      {OrderShipped, OrderCancelled},
	OrderShipped:   {OrderDelivered},
	OrderDelivered: {},
	OrderCancelled: {},
}

// CanTransition reports whether an order may move from its current status to next.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Metadata holds versioning info for optimistic reload decisions.
type Metadata struct {
	LastUpdate int64 `json:"lastUpdate"` // Unix timestamp in milliseconds
}

// Catalog is the full marketplace document the mock backend persists.
type Catalog struct {
	Metadata      Metadata       `json:"metadata"`
	Users         []User         `json:"users" validate:"dive"`
	Suppliers     []Supplier     `json:"suppliers" validate:"dive"`
	Categories    []Category     `json:"categories" validate:"dive"`
	Orders        []Order        `json:"orders" validate:"dive"`
	Verifications []Verification `json:"verifications" validate:"dive"`
	Profile       *Profile       `json:"profile"`
}

// User is a marketplace customer account as seen by the admin panel.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Role      string `json:"role" validate:"required,oneof=customer admin support"`
	Active    *bool  `json:"active" validate:"required"`
	CreatedAt int64  `json:"createdAt"`
}

// Supplier is a selling party on the marketplace.
type Supplier struct {
	ID          string         `json:"id"`
	Name        string         `json:"name" validate:"required"`
	Email       string         `json:"email" validate:"required,email"`
	Phone       string         `json:"phone"`
	Status      SupplierStatus `json:"status" validate:"required,oneof=pending approved suspended"`
	CategoryIDs []string       `json:"categoryIds"`
	CreatedAt   int64          `json:"createdAt"`
}

// Category is a node of the marketplace catalog tree.
type Category struct {
	ID       string `json:"id"`
	Name     string `json:"name" validate:"required"`
	Slug     string `json:"slug" validate:"required"`
	ParentID string `json:"parentId"`
	Active   *bool  `json:"active" validate:"required"`
}

// OrderItem is a single line of an order.
type OrderItem struct {
	SKU      string  `json:"sku" validate:"required"`
	Title    string  `json:"title" validate:"required"`
	Quantity int     `json:"quantity" validate:"required,min=1"`
	Price    float64 `json:"price" validate:"min=0"`
}

// Order is a purchase placed by a user with a supplier.
type Order struct {
	ID         string      `json:"id"`
	UserID     string      `json:"userId" validate:"required"`
	SupplierID string      `json:"supplierId" validate:"required"`
	Items      []OrderItem `json:"items" validate:"dive"`
	Total      float64     `json:"total" validate:"min=0"`
	Currency   string      `json:"currency" validate:"required,len=3"`
	Status     OrderStatus `json:"status" validate:"required,oneof=pending paid shipped delivered cancelled"`
	CreatedAt  int64       `json:"createdAt"`
}

// Verification is a supplier document review request.
type Verification struct {
	ID           string             `json:"id"`
	SupplierID   string             `json:"supplierId" validate:"required"`
	DocumentType string             `json:"documentType" validate:"required"`
	Status       VerificationStatus `json:"status" validate:"required,oneof=pending approved rejected"`
	SubmittedAt  int64              `json:"submittedAt"`
	ReviewedAt   *int64             `json:"reviewedAt"`
	Note         string             `json:"note"`
}

// Preferences are the admin user's notification and locale settings.
type Preferences struct {
	EmailNotifications *bool  `json:"emailNotifications" validate:"required"`
	PushNotifications  *bool  `json:"pushNotifications" validate:"required"`
	WeeklyDigest       *bool  `json:"weeklyDigest" validate:"required"`
	Language           string `json:"language"`
	Timezone           string `json:"timezone"`
}

// Profile is the admin user's own account record.
type Profile struct {
	ID          string      `json:"id"`
	Name        string      `json:"name" validate:"required"`
	Email       string      `json:"email" validate:"required,email"`
	Phone       string      `json:"phone"`
	AvatarURL   string      `json:"avatarUrl"`
	Preferences Preferences `json:"preferences"`
}

// ApplyDefaults sets fallback values after decode.
func (c *Catalog) ApplyDefaults() {
	for i := range c.Users {
		c.Users[i].applyDefaults()
	}
	for i := range c.Suppliers {
		c.Suppliers[i].applyDefaults()
	}
	for i := range c.Categories {
		c.Categories[i].applyDefaults()
	}
	for i := range c.Orders {
		c.Orders[i].applyDefaults()
	}
	for i := range c.Verifications {
		c.Verifications[i].applyDefaults()
	}
	if c.Profile != nil {
		c.Profile.Preferences.ApplyDefaults()
	}
}

func (u *User) applyDefaults() {
	if u.Active == nil {
		v := true
		u.Active = &v
	}
	if u.Role == "" {
		u.Role = "customer"
	}
}

func (s *Supplier) applyDefaults() {
	if s.Status == "" {
		s.Status = SupplierPending
	}
	if s.CategoryIDs == nil {
		s.CategoryIDs = []string{}
	}
}

func (c *Category) applyDefaults() {
	if c.Active == nil {
		v := true
		c.Active = &v
	}
}

func (o *Order) applyDefaults() {
	if o.Status == "" {
		o.Status = OrderPending
	}
	if o.Items == nil {
		o.Items = []OrderItem{}
	}
	if o.Currency == "" {
		o.Currency = "USD"
	}
}

func (v *Verification) applyDefaults() {
	if v.Status == "" {
		v.Status = VerificationPending
	}
}

// ApplyDefaults fills preference fields left unset by older documents.
func (p *Preferences) ApplyDefaults() {
	if p.EmailNotifications == nil {
		v := true
		p.EmailNotifications = &v
	}
	if p.PushNotifications == nil {
		v := false
		p.PushNotifications = &v
	}
	if p.WeeklyDigest == nil {
		v := false
		p.WeeklyDigest = &v
	}
	if p.Language == "" {
		p.Language = "en"
	}
	if p.Timezone == "" {
		p.Timezone = "UTC"
	}
}

// PreferencesPatch is a partial preference edit. Nil fields are left alone.
type PreferencesPatch struct {
	EmailNotifications *bool   `json:"emailNotifications"`
	PushNotifications  *bool   `json:"pushNotifications"`
	WeeklyDigest       *bool   `json:"weeklyDigest"`
	Language           *string `json:"language"`
	Timezone           *string `json:"timezone"`
}

// ApplyTo writes the set fields of the patch onto prefs.
func (p PreferencesPatch) ApplyTo(prefs *Preferences) {
	if p.EmailNotifications != nil {
		prefs.EmailNotifications = p.EmailNotifications
	}
	if p.PushNotifications != nil {
		prefs.PushNotifications = p.PushNotifications
	}
	if p.WeeklyDigest != nil {
		prefs.WeeklyDigest = p.WeeklyDigest
	}
	if p.Language != nil {
		prefs.Language = *p.Language
	}
	if p.Timezone != nil {
		prefs.Timezone = *p.Timezone
	}
}

// AreCatalogsEqual compares two catalogs ignoring Metadata.
// Uses JSON serialization for flexible comparison (order-independent for object keys).
func AreCatalogsEqual(a, b *Catalog) bool {
	if a == nil || b == nil {
		return a == b
	}

	aBytes, err := json.Marshal(a)
	if err != nil {
		return false
	}
	bBytes, err := json.Marshal(b)
	if err != nil {
		return false
	}

	var aMap, bMap map[string]interface{}
	if err := json.Unmarshal(aBytes, &aMap); err != nil {
		return false
	}
	if err := json.Unmarshal(bBytes, &bMap); err != nil {
		return false
	}

	delete(aMap, "metadata")
	delete(bMap, "metadata")

	return reflect.DeepEqual(aMap, bMap)
}
