package models

import "time"

// RequestStatus is the lifecycle state of a RideRequest. PENDING is the only
// non-terminal state; every transition out of it is final.
type RequestStatus int

const (
	RequestPending RequestStatus = iota + 1
	RequestAccepted
	RequestRejected
	RequestCancelled
)

func (s RequestStatus) String() string {
	switch s {
	case RequestPending:
		return "pending"
	case RequestAccepted:
		return "accepted"
	case RequestRejected:
		return "rejected"
	case RequestCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Terminal reports whether the status permits no further transitions.
func (s RequestStatus) Terminal() bool {
	switch s {
	case RequestAccepted, RequestRejected, RequestCancelled:
		return true
	}
	return false
}

// RideRequest links a user to a ride they have asked to join. Terminal
// requests persist as history; the one exception is a creator force-removing
// an accepted rider, which deletes the request row outright.
type RideRequest struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	RideID          uint          `gorm:"index;not null" json:"ride_id"`
	Ride            *Ride         `gorm:"foreignKey:RideID" json:"ride,omitempty"`
	UserID          uint          `gorm:"index;not null" json:"user_id"`
	User            *User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Status          RequestStatus `gorm:"not null;default:1" json:"status"`
	StatusChangedAt *time.Time    `gorm:"index" json:"status_changed_at"`
	CreatedAt       time.Time     `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

func (RideRequest) TableName() string { return "ride_requests" }

func (r *RideRequest) IsPending() bool   { return r.Status == RequestPending }
func (r *RideRequest) IsAccepted() bool  { return r.Status == RequestAccepted }
func (r *RideRequest) IsRejected() bool  { return r.Status == RequestRejected }
func (r *RideRequest) IsCancelled() bool { return r.Status == RequestCancelled }
