package models

import "time"

// HomeLocation is the fixed anchor location. Every ride either departs
// from it or arrives at it; the other endpoint is a free-text place name.
const HomeLocation = "Princeton"

// DepartureLimit returns the UTC cutoff before which a ride is considered
// historical. Rides departing earlier than this are hidden from search and
// listings.
func DepartureLimit() time.Time {
	return time.Now().UTC().Add(-6 * time.Hour)
}

// Ride is an offered trip. The creator is seated as a Rider in the same
// transaction that inserts the ride, and the creator reference is immutable
// afterwards.
type Ride struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	CreatorID         uint       `gorm:"index;not null" json:"creator_id"`
	Creator           *User      `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Capacity          int        `gorm:"not null;default:2" json:"capacity"`
	Origin            string     `gorm:"index;size:256;not null;default:Princeton" json:"origin"`
	Destination       string     `gorm:"index;size:256;not null;default:Princeton" json:"destination"`
	DepartureDatetime time.Time  `gorm:"index;not null" json:"departure_datetime"` // UTC
	Notes             string     `gorm:"size:280" json:"notes"`
	IsAnonymous       bool       `gorm:"not null;default:true" json:"is_anonymous"`
	ReminderSentAt    *time.Time `json:"reminder_sent_at,omitempty"`
	CreatedAt         time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`

	Riders   []Rider       `gorm:"foreignKey:RideID;constraint:OnDelete:CASCADE" json:"riders,omitempty"`
	Requests []RideRequest `gorm:"foreignKey:RideID;constraint:OnDelete:CASCADE" json:"requests,omitempty"`
}

func (Ride) TableName() string { return "rides" }

// FormatDeparture renders the departure time the way notification emails
// display it.
func (r *Ride) FormatDeparture() string {
	return r.DepartureDatetime.Format("01-02-2006 at 15:04 PM")
}
