// Package party provides the Party catalog.
// Parties are the customers and suppliers referenced by transactions;
// the transaction core reads them by id and never mutates them.
package party

import (
	"context"
	"regexp"
	"strings"

	"storekeeper/internal/core/apperror"
	"storekeeper/internal/core/entity"
)

// Pre-compiled regex patterns for validation (performance optimization)
var (
	emailRE = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRE = regexp.MustCompile(`^[+0-9][0-9 ()-]{4,19}$`)
)

// Party represents a customer or supplier.
type Party struct {
	entity.Catalog

	// FirstName is the contact first name
	FirstName string `db:"first_name" json:"firstName"`

	// LastName is the contact last name
	LastName string `db:"last_name" json:"lastName"`

	// Email is the primary contact email
	Email *string `db:"email" json:"email,omitempty"`

	// Phone is the primary contact phone
	Phone *string `db:"phone" json:"phone,omitempty"`

	// IsSupplier discriminates suppliers from customers
	IsSupplier bool `db:"is_supplier" json:"isSupplier"`
}

// New creates a new Party with required fields.
func New(code, firstName, lastName string, isSupplier bool) *Party {
	p := &Party{
		Catalog:    entity.NewCatalog(code, ""),
		FirstName:  firstName,
		LastName:   lastName,
		IsSupplier: isSupplier,
	}
	p.Name = p.DisplayName()
	return p
}

// DisplayName returns the full contact name.
func (p *Party) DisplayName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Validate implements entity.Validatable interface.
func (p *Party) Validate(ctx context.Context) error {
	if p.FirstName == "" {
		return apperror.NewValidation("first name is required").
			WithDetail("field", "firstName")
	}

	// Name is derived from first/last name before save
	if p.Name == "" {
		p.Name = p.DisplayName()
	}

	if err := p.Catalog.Validate(ctx); err != nil {
		return err
	}

	if p.Email != nil && *p.Email != "" && !emailRE.MatchString(*p.Email) {
		return apperror.NewValidation("invalid email format").
			WithDetail("field", "email")
	}

	if p.Phone != nil && *p.Phone != "" && !phoneRE.MatchString(*p.Phone) {
		return apperror.NewValidation("invalid phone format").
			WithDetail("field", "phone")
	}

	return nil
}
