package models

import "time"

type BookingStatus string

const (
	BookingStatusUpcoming  BookingStatus = "upcoming"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "pending"
	ApprovalStatusApproved ApprovalStatus = "approved"
	ApprovalStatusRejected ApprovalStatus = "rejected"
)

// Booking holds a room for a single date and time slot. BookingDate is
// "YYYY-MM-DD", StartTime/EndTime are zero-padded "HH:MM" so string
// comparison matches chronological order.
type Booking struct {
	ID          uint           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	RoomID      uint           `gorm:"column:room_id;not null;index" json:"room_id"`
	UserID      uint           `gorm:"column:user_id;not null;index" json:"user_id"` // organizer
	BookingDate string         `gorm:"column:booking_date;size:10;not null;index" json:"booking_date"`
	StartTime   string         `gorm:"column:start_time;size:5;not null" json:"start_time"`
	EndTime     string         `gorm:"column:end_time;size:5;not null" json:"end_time"`
	Status      BookingStatus  `gorm:"column:status;size:20;not null;default:'upcoming';index" json:"status"`

	ApprovalStatus  ApprovalStatus `gorm:"column:approval_status;size:20;not null;default:'pending';index" json:"approval_status"`
	ApprovedByID    *uint          `gorm:"column:approved_by_id;index" json:"approved_by_id"`
	ApprovedAt      *time.Time     `gorm:"column:approved_at" json:"approved_at"`
	RejectionReason *string        `gorm:"column:rejection_reason;size:500" json:"rejection_reason"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Room         *Room               `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE" json:"room,omitempty"`
	User         *User               `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	ApprovedBy   *User               `gorm:"foreignKey:ApprovedByID;constraint:OnDelete:SET NULL" json:"-"`
	Participants []User              `gorm:"many2many:booking_participants;constraint:OnDelete:CASCADE" json:"participants,omitempty"`
	Invitations  []BookingInvitation `gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Booking) TableName() string {
	return "bookings"
}
