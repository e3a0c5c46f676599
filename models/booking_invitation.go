package models

import "time"

type InvitationStatus string

const (
	InvitationStatusPending  InvitationStatus = "pending"
	InvitationStatusAccepted InvitationStatus = "accepted"
	InvitationStatusRejected InvitationStatus = "rejected"
)

type BookingInvitation struct {
	ID        uint             `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	BookingID uint             `gorm:"column:booking_id;not null;index;uniqueIndex:idx_invitation_booking_invitee" json:"booking_id"`
	InviterID uint             `gorm:"column:inviter_id;not null;index" json:"inviter_id"` // booking organizer
	InviteeID uint             `gorm:"column:invitee_id;not null;index;uniqueIndex:idx_invitation_booking_invitee" json:"invitee_id"`
	Status    InvitationStatus `gorm:"column:status;size:20;not null;default:'pending';index" json:"status"`

	IsRead          bool    `gorm:"column:is_read;not null;default:false" json:"is_read"`
	ResponseMessage *string `gorm:"column:response_message;size:500" json:"response_message"`

	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	RespondedAt *time.Time `gorm:"column:responded_at" json:"responded_at"`

	Booking *Booking `gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE" json:"-"`
	Inviter *User    `gorm:"foreignKey:InviterID;constraint:OnDelete:CASCADE" json:"-"`
	Invitee *User    `gorm:"foreignKey:InviteeID;constraint:OnDelete:CASCADE" json:"-"`
}

func (BookingInvitation) TableName() string {
	return "booking_invitations"
}
