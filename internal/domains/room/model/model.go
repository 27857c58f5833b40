package model

import "github.com/Pawan0019/Hotel-Room-Booking/shared/model"

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID            = "id"
	FieldRoomNumber    = "room_number"
	FieldRoomType      = "room_type"
	FieldPricePerNight = "price_per_night"
	FieldIsAvailable   = "is_available"
)

const (
	TypeSingle = "Single"
	TypeDouble = "Double"
	TypeSuite  = "Suite"
	TypeDeluxe = "Deluxe"
)

type Room struct {
	ID            int64   `db:"id"              generated:"true"`
	RoomNumber    string  `db:"room_number"`
	RoomType      string  `db:"room_type"`
	PricePerNight float64 `db:"price_per_night"`
	IsAvailable   bool    `db:"is_available"`
	model.Metadata
}

func (r Room) Key() int64 {
	return r.ID
}
