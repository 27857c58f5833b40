package dto

import (
	"github.com/Pawan0019/Hotel-Room-Booking/internal/domains/room/model"
	gDto "github.com/Pawan0019/Hotel-Room-Booking/shared/dto"
	gModel "github.com/Pawan0019/Hotel-Room-Booking/shared/model"
	"github.com/Pawan0019/Hotel-Room-Booking/shared/timezone"
)

type CreateRoomRequest struct {
	RoomNumber    string  `json:"room_number"     validate:"required,max=10"`
	RoomType      string  `json:"room_type"       validate:"required,oneof=Single Double Suite Deluxe"`
	PricePerNight float64 `json:"price_per_night" validate:"gte=0"`
	IsAvailable   *bool   `json:"is_available"    validate:"omitempty"`
}

// ToModel builds a room that is available unless the request says otherwise.
func (c *CreateRoomRequest) ToModel() model.Room {
	available := true
	if c.IsAvailable != nil {
		available = *c.IsAvailable
	}

	now := timezone.Now()

	return model.Room{
		RoomNumber:    c.RoomNumber,
		RoomType:      c.RoomType,
		PricePerNight: c.PricePerNight,
		IsAvailable:   available,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
		},
	}
}

type UpdateRoomRequest struct {
	RoomNumber    string   `db:"room_number"     json:"room_number"     validate:"omitempty,max=10"`
	RoomType      string   `db:"room_type"       json:"room_type"       validate:"omitempty,oneof=Single Double Suite Deluxe"`
	PricePerNight *float64 `db:"price_per_night" json:"price_per_night" validate:"omitempty,gte=0"`
	IsAvailable   *bool    `db:"is_available"    json:"is_available"    validate:"omitempty"`
}

type RoomResponse struct {
	ID            int64   `json:"id"`
	RoomNumber    string  `json:"room_number"`
	RoomType      string  `json:"room_type"`
	PricePerNight float64 `json:"price_per_night"`
	IsAvailable   bool    `json:"is_available"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.RoomNumber = model.RoomNumber
	r.RoomType = model.RoomType
	r.PricePerNight = model.PricePerNight
	r.IsAvailable = model.IsAvailable
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room) {
	r.TotalData = len(models)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
