package dto

import (
	"storekeeper/internal/domain/catalogs/party"
)

// --- Request DTOs ---

type CreatePartyRequest struct {
	Code       string  `json:"code,omitempty"`
	FirstName  string  `json:"firstName" binding:"required"`
	LastName   string  `json:"lastName,omitempty"`
	Email      *string `json:"email,omitempty" binding:"omitempty,email"`
	Phone      *string `json:"phone,omitempty"`
	IsSupplier bool    `json:"isSupplier"`
}

func (r *CreatePartyRequest) ToEntity() *party.Party {
	item := party.New(r.Code, r.FirstName, r.LastName, r.IsSupplier)
	item.Email = r.Email
	item.Phone = r.Phone
	return item
}

type UpdatePartyRequest struct {
	Code      *string `json:"code,omitempty"`
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Email     *string `json:"email,omitempty" binding:"omitempty,email"`
	Phone     *string `json:"phone,omitempty"`
	Version   int     `json:"version" binding:"required,min=1"`
}

func (r *UpdatePartyRequest) ApplyTo(item *party.Party) {
	if r.Code != nil {
		item.Code = *r.Code
	}
	if r.FirstName != nil {
		item.FirstName = *r.FirstName
	}
	if r.LastName != nil {
		item.LastName = *r.LastName
	}
	if r.Email != nil {
		item.Email = r.Email
	}
	if r.Phone != nil {
		item.Phone = r.Phone
	}

	// Display name is derived
	item.Name = item.DisplayName()
	item.Version = r.Version
}

// --- List Query ---

// PartyListQuery extends the common query with the supplier flag.
type PartyListQuery struct {
	ListQuery

	IsSupplier *bool `form:"isSupplier"`
}

// --- Response DTOs ---

type PartyResponse struct {
	ID           string  `json:"id"`
	Code         string  `json:"code"`
	Name         string  `json:"name"`
	FirstName    string  `json:"firstName"`
	LastName     string  `json:"lastName,omitempty"`
	Email        *string `json:"email,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	IsSupplier   bool    `json:"isSupplier"`
	DeletionMark bool    `json:"deletionMark,omitempty"`
	Version      int     `json:"version"`
}

func FromParty(item *party.Party) *PartyResponse {
	return &PartyResponse{
		ID:           item.ID.String(),
		Code:         item.Code,
		Name:         item.Name,
		FirstName:    item.FirstName,
		LastName:     item.LastName,
		Email:        item.Email,
		Phone:        item.Phone,
		IsSupplier:   item.IsSupplier,
		DeletionMark: item.DeletionMark,
		Version:      item.Version,
	}
}

func FromPartyList(items []*party.Party) []*PartyResponse {
	out := make([]*PartyResponse, 0, len(items))
	for _, item := range items {
		out = append(out, FromParty(item))
	}
	return out
}
