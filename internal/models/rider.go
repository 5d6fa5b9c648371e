package models

import "time"

// Rider is a confirmed seat on a ride. RideRequestID is nil for the creator's
// auto-generated seat and set when the seat came from an accepted request.
type Rider struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	RideRequestID *uint        `gorm:"index" json:"ride_request_id"`
	RideRequest   *RideRequest `gorm:"foreignKey:RideRequestID" json:"ride_request,omitempty"`
	RideID        uint         `gorm:"index;not null" json:"ride_id"`
	UserID        uint         `gorm:"index;not null" json:"user_id"`
	User          *User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	IsCreator     bool         `gorm:"not null;default:false" json:"is_creator"`
	CreatedAt     time.Time    `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

func (Rider) TableName() string { return "riders" }
