package model

import "github.com/Pawan0019/Hotel-Room-Booking/shared/model"

const (
	TableName  = "guests"
	EntityName = "guest"

	FieldID       = "id"
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPhone    = "phone"
	FieldIsActive = "is_active"
)

type Guest struct {
	ID       int64  `db:"id"        generated:"true"`
	Name     string `db:"name"`
	Email    string `db:"email"`
	Phone    string `db:"phone"`
	IsActive bool   `db:"is_active"`
	model.Metadata
}

func (g Guest) Key() int64 {
	return g.ID
}
