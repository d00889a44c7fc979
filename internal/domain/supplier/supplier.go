// Package supplier holds the directory entity subscriptions belong to.
// Registration, RNC verification, and approval are handled by the directory
// service; this service only needs the supplier as the owner of a
// subscription and the recipient of lifecycle email.
package supplier

import (
	"fmt"
	"strings"
	"time"
)

type Supplier struct {
	id           uint
	sid          string
	businessName string
	contactName  string
	email        string
	rnc          string
	createdAt    time.Time
}

func NewSupplier(businessName, contactName, email, rnc string) (*Supplier, error) {
	if strings.TrimSpace(businessName) == "" {
		return nil, fmt.Errorf("business name is required")
	}
	if strings.TrimSpace(email) == "" {
		return nil, fmt.Errorf("contact email is required")
	}
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("invalid contact email: %s", email)
	}

	return &Supplier{
		businessName: businessName,
		contactName:  contactName,
		email:        email,
		rnc:          rnc,
		createdAt:    time.Now().UTC(),
	}, nil
}

// ReconstructSupplier rebuilds a supplier from persistence.
func ReconstructSupplier(id uint, sid, businessName, contactName, email, rnc string, createdAt time.Time) (*Supplier, error) {
	if id == 0 {
		return nil, fmt.Errorf("supplier ID cannot be zero")
	}
	if businessName == "" {
		return nil, fmt.Errorf("business name is required")
	}

	return &Supplier{
		id:           id,
		sid:          sid,
		businessName: businessName,
		contactName:  contactName,
		email:        email,
		rnc:          rnc,
		createdAt:    createdAt,
	}, nil
}

func (s *Supplier) ID() uint             { return s.id }
func (s *Supplier) SID() string          { return s.sid }
func (s *Supplier) BusinessName() string { return s.businessName }
func (s *Supplier) ContactName() string  { return s.contactName }
func (s *Supplier) Email() string        { return s.email }
func (s *Supplier) RNC() string          { return s.rnc }
func (s *Supplier) CreatedAt() time.Time { return s.createdAt }

// DisplayName is what lifecycle emails address the supplier by.
func (s *Supplier) DisplayName() string {
	if s.contactName != "" {
		return s.contactName
	}
	return s.businessName
}

// SetID sets the supplier ID (only for persistence layer use)
func (s *Supplier) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("supplier ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("supplier ID cannot be zero")
	}
	s.id = id
	return nil
}

// SetSID sets the external identifier (only for persistence layer use)
func (s *Supplier) SetSID(sid string) error {
	if s.sid != "" {
		return fmt.Errorf("supplier SID is already set")
	}
	s.sid = sid
	return nil
}
