package models

import "time"

type User struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Email     string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Username  string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	FullName  string    `gorm:"size:100;not null" json:"full_name"`
	Password  string    `gorm:"size:255;not null" json:"-"` // bcrypt hash, never returned
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	IsManager bool      `gorm:"not null;default:false" json:"is_manager"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Bookings            []Booking           `gorm:"foreignKey:UserID" json:"-"`
	ReceivedInvitations []BookingInvitation `gorm:"foreignKey:InviteeID" json:"-"`
}

func (User) TableName() string {
	return "users"
}
