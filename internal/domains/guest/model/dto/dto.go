package dto

import (
	"github.com/Pawan0019/Hotel-Room-Booking/internal/domains/guest/model"
	gDto "github.com/Pawan0019/Hotel-Room-Booking/shared/dto"
	gModel "github.com/Pawan0019/Hotel-Room-Booking/shared/model"
	"github.com/Pawan0019/Hotel-Room-Booking/shared/timezone"
)

type CreateGuestRequest struct {
	Name  string `json:"name"  validate:"required,max=100"`
	Email string `json:"email" validate:"required,email,max=100"`
	Phone string `json:"phone" validate:"required,phone"`
}

// ToModel builds an active guest.
func (c *CreateGuestRequest) ToModel() model.Guest {
	now := timezone.Now()

	return model.Guest{
		Name:     c.Name,
		Email:    c.Email,
		Phone:    c.Phone,
		IsActive: true,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
		},
	}
}

type UpdateGuestRequest struct {
	Name     string `db:"name"      json:"name"      validate:"omitempty,max=100"`
	Email    string `db:"email"     json:"email"     validate:"omitempty,email,max=100"`
	Phone    string `db:"phone"     json:"phone"     validate:"omitempty,phone"`
	IsActive *bool  `db:"is_active" json:"is_active" validate:"omitempty"`
}

// Deactivates reports whether applying the request to current turns an active guest inactive.
func (u *UpdateGuestRequest) Deactivates(current model.Guest) bool {
	return current.IsActive && u.IsActive != nil && !*u.IsActive
}

type GuestResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	IsActive bool   `json:"is_active"`
	gDto.Metadata
}

func (r *GuestResponse) FromModel(model model.Guest) {
	r.ID = model.ID
	r.Name = model.Name
	r.Email = model.Email
	r.Phone = model.Phone
	r.IsActive = model.IsActive
	r.Metadata.FromModel(model.Metadata)
}

type GetGuestsResponse struct {
	Guests    []GuestResponse `json:"guests"`
	TotalData int             `json:"total_data"`
}

func (r *GetGuestsResponse) FromModels(models []model.Guest) {
	r.TotalData = len(models)

	r.Guests = make([]GuestResponse, len(models))
	for i, mod := range models {
		r.Guests[i].FromModel(mod)
	}
}
