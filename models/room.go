package models

import (
	"gorm.io/datatypes"
)

type Room struct {
	ID          uint           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name        string         `gorm:"column:name;size:100;uniqueIndex;not null" json:"name"`
	Description *string        `gorm:"column:description;type:text" json:"description"`
	Capacity    int            `gorm:"column:capacity;not null" json:"capacity"`
	Price       float64        `gorm:"column:price;not null;default:0" json:"price"` // per hour
	Amenities   datatypes.JSON `gorm:"column:amenities" json:"amenities"`            // JSON array of strings
	Image       *string        `gorm:"column:image;size:500" json:"image"`
	SvgID       *string        `gorm:"column:svg_id;size:50" json:"svg_id"`          // id in the SVG floor plan
	Coordinates datatypes.JSON `gorm:"column:coordinates" json:"coordinates"`        // {x, y}
	IsAvailable bool           `gorm:"column:is_available;not null;default:true" json:"is_available"`

	Bookings []Booking `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Room) TableName() string {
	return "rooms"
}
