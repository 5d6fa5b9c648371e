package services

import (
	"strings"
	"time"

	"github.com/tigerapps/tigertaxi/internal/models"
	"gorm.io/gorm"
)

// Ride creation window, measured from "now" in UTC.
const (
	minDepartureLead    = 55 * time.Minute
	maxDepartureHorizon = 182 * 24 * time.Hour
)

const (
	minCapacity = 2
	maxCapacity = 10
)

type RideService struct {
	db *gorm.DB
}

func NewRideService(db *gorm.DB) *RideService {
	return &RideService{db: db}
}

// CreateRideRequest carries the Create a Ride form fields. The departure
// time arrives in the creator's local time plus a UTC offset in minutes.
type CreateRideRequest struct {
	ToFrom         string `json:"to_from" binding:"required"`  // "From" or "To" (Princeton)
	Location       string `json:"location" binding:"required"` // the non-Princeton endpoint
	DepartureLocal string `json:"departure_datetime" binding:"required"`
	UTCOffset      int    `json:"utc_offset"`
	Capacity       int    `json:"capacity" binding:"required"`
	Notes          string `json:"notes"`
	ShowID         string `json:"show_id" binding:"required"` // "Yes" or "No"
}

// Create validates the form, inserts the ride, and seats the creator as the
// first rider in the same transaction. A ride without its creator seated is
// an invariant violation, so both writes share one commit boundary.
func (s *RideService) Create(creatorID uint, req *CreateRideRequest) (*models.Ride, error) {
	if req.ToFrom != "From" && req.ToFrom != "To" {
		return nil, invalid("to_from", "must be 'From' or 'To'")
	}
	if len(req.Location) == 0 {
		return nil, invalid("location", "location name is too short")
	}
	if len(req.Location) > 256 {
		return nil, invalid("location", "location name is too long")
	}
	if req.Location == models.HomeLocation {
		return nil, invalid("location", "'"+models.HomeLocation+"' is not a valid secondary location")
	}
	if req.Capacity < minCapacity || req.Capacity > maxCapacity {
		return nil, invalid("capacity", "must be between 2 and 10")
	}
	if len(req.Notes) > 280 {
		return nil, invalid("notes", "ride notes are too long")
	}
	if req.ShowID != "Yes" && req.ShowID != "No" {
		return nil, invalid("show_id", "must be 'Yes' or 'No'")
	}

	local, err := time.Parse("2006-01-02T15:04", req.DepartureLocal)
	if err != nil {
		return nil, invalid("departure_datetime", "bad date format")
	}
	departure := local.Add(time.Duration(req.UTCOffset) * time.Minute)

	lead := time.Until(departure.UTC())
	if lead <= minDepartureLead || lead >= maxDepartureHorizon {
		return nil, invalid("departure_datetime",
			"rides must depart between one hour and six months from the current time")
	}

	origin := models.HomeLocation
	destination := models.HomeLocation
	if req.ToFrom == "From" {
		destination = req.Location
	} else {
		origin = req.Location
	}

	ride := models.Ride{
		CreatorID:         creatorID,
		Capacity:          req.Capacity,
		Origin:            origin,
		Destination:       destination,
		DepartureDatetime: departure,
		Notes:             req.Notes,
		IsAnonymous:       req.ShowID == "No",
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&ride).Error; err != nil {
			return err
		}
		seat := models.Rider{
			RideID:    ride.ID,
			UserID:    creatorID,
			IsCreator: true,
		}
		return tx.Create(&seat).Error
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.Preload("Creator").First(&ride, ride.ID).Error; err != nil {
		return nil, err
	}
	return &ride, nil
}

// GetByID returns a ride with its creator loaded.
func (s *RideService) GetByID(id uint) (*models.Ride, error) {
	var ride models.Ride
	if err := s.db.Preload("Creator").First(&ride, id).Error; err != nil {
		return nil, err
	}
	return &ride, nil
}

// GetCreatedRides returns the rides a user created that are still within the
// visibility horizon, with riders and requests loaded for the My Rides page.
func (s *RideService) GetCreatedRides(userID uint) ([]models.Ride, error) {
	var rides []models.Ride
	err := s.db.
		Preload("Riders.User").
		Preload("Requests.User").
		Where("creator_id = ?", userID).
		Where("departure_datetime >= ?", models.DepartureLimit()).
		Order("departure_datetime ASC").
		Find(&rides).Error
	return rides, err
}

// --- Capacity & membership predicates ---

// RidersCount returns the number of confirmed seats on a ride.
func (s *RideService) RidersCount(rideID uint) int64 {
	var count int64
	s.db.Model(&models.Rider{}).Where("ride_id = ?", rideID).Count(&count)
	return count
}

// IsFull reports whether a ride has no seats left.
func (s *RideService) IsFull(ride *models.Ride) bool {
	return s.RidersCount(ride.ID) >= int64(ride.Capacity)
}

// HasRoom reports whether a ride can still take riders.
func (s *RideService) HasRoom(ride *models.Ride) bool {
	return int64(ride.Capacity) > s.RidersCount(ride.ID)
}

// IsUserRider reports whether the user holds a seat on the ride.
func (s *RideService) IsUserRider(rideID, userID uint) bool {
	var count int64
	s.db.Model(&models.Rider{}).
		Where("ride_id = ? AND user_id = ?", rideID, userID).
		Count(&count)
	return count > 0
}

// IsUserCreator reports whether the user created the ride.
func (s *RideService) IsUserCreator(ride *models.Ride, userID uint) bool {
	return ride.CreatorID == userID
}

// HasUserRequested reports whether any request (in any state) exists from
// the user for the ride.
func (s *RideService) HasUserRequested(rideID, userID uint) bool {
	return s.hasRequestWithStatus(rideID, userID, nil)
}

func (s *RideService) IsUserRequestPending(rideID, userID uint) bool {
	st := models.RequestPending
	return s.hasRequestWithStatus(rideID, userID, &st)
}

func (s *RideService) HasUserBeenAccepted(rideID, userID uint) bool {
	st := models.RequestAccepted
	return s.hasRequestWithStatus(rideID, userID, &st)
}

func (s *RideService) HasUserBeenRejected(rideID, userID uint) bool {
	st := models.RequestRejected
	return s.hasRequestWithStatus(rideID, userID, &st)
}

func (s *RideService) HasUserCancelled(rideID, userID uint) bool {
	st := models.RequestCancelled
	return s.hasRequestWithStatus(rideID, userID, &st)
}

func (s *RideService) hasRequestWithStatus(rideID, userID uint, status *models.RequestStatus) bool {
	var count int64
	q := s.db.Model(&models.RideRequest{}).
		Where("ride_id = ? AND user_id = ?", rideID, userID)
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	q.Count(&count)
	return count > 0
}

// --- Search ---

// SearchRequest carries the Search Rides query parameters.
type SearchRequest struct {
	Tab           string `form:"tab"`         // "from", "to", or empty
	Origin        string `form:"origin"`      // term for tab=to
	Destination   string `form:"destination"` // term for tab=from
	DepartureDate string `form:"departure_date"`
	UTCOffset     int    `form:"utc_offset"`
}

// RideView is a search result decorated with the viewer's relationship to
// the ride, which the client uses to pick the right card action.
type RideView struct {
	models.Ride
	RidersCount          int64 `json:"riders_count"`
	IsFull               bool  `json:"is_full"`
	IsUserCreator        bool  `json:"is_user_creator"`
	IsUserRider          bool  `json:"is_user_rider"`
	HasUserRequested     bool  `json:"has_user_requested"`
	IsUserRequestPending bool  `json:"is_user_request_pending"`
	HasUserBeenAccepted  bool  `json:"has_user_been_accepted"`
	HasUserBeenRejected  bool  `json:"has_user_been_rejected"`
	HasUserCancelled     bool  `json:"has_user_cancelled"`
}

// Search returns upcoming, visible rides matching the optional criteria,
// ordered by departure time, then destination, then origin.
func (s *RideService) Search(req *SearchRequest, viewerID uint) ([]RideView, error) {
	query := s.db.Model(&models.Ride{}).
		Preload("Creator").
		Where("departure_datetime >= ?", models.DepartureLimit())

	switch req.Tab {
	case "from":
		query = query.Where("origin = ?", models.HomeLocation)
		if term := strings.TrimSpace(req.Destination); term != "" {
			query = query.Where(s.termMatch("destination", term))
		}
	case "to":
		query = query.Where("destination = ?", models.HomeLocation)
		if term := strings.TrimSpace(req.Origin); term != "" {
			query = query.Where(s.termMatch("origin", term))
		}
	}

	if req.DepartureDate != "" {
		dayStart, err := time.Parse("2006-01-02", req.DepartureDate)
		if err != nil {
			return nil, invalid("departure_date", "bad date format")
		}
		// The searcher picks a calendar day in local time; shift the day's
		// bounds by their UTC offset before comparing against UTC storage.
		dayEnd := dayStart.Add(24*time.Hour - time.Microsecond)
		delt := time.Duration(req.UTCOffset) * time.Minute
		query = query.Where(
			"departure_datetime >= ? AND departure_datetime <= ?",
			dayStart.Add(delt), dayEnd.Add(delt),
		)
	}

	var rides []models.Ride
	err := query.
		Order("departure_datetime ASC").
		Order("destination ASC").
		Order("origin ASC").
		Find(&rides).Error
	if err != nil {
		return nil, err
	}

	views := make([]RideView, 0, len(rides))
	for i := range rides {
		views = append(views, s.viewFor(&rides[i], viewerID))
	}
	return views, nil
}

// termMatch builds the place-name filter. On Postgres a substring match is
// OR-ed with a full-text match: substring search misses word-stem relevance,
// full-text search misses matches across word boundaries, so either passing
// is sufficient. Other dialects lack tsvector and use the substring match
// alone, case-insensitively.
func (s *RideService) termMatch(column, term string) *gorm.DB {
	if s.db.Dialector.Name() == "postgres" {
		return s.db.
			Where(column+" ILIKE ?", "%"+term+"%").
			Or("to_tsvector("+column+") @@ plainto_tsquery(?)", term)
	}
	return s.db.Where("LOWER("+column+") LIKE ?", "%"+strings.ToLower(term)+"%")
}

func (s *RideService) viewFor(ride *models.Ride, viewerID uint) RideView {
	count := s.RidersCount(ride.ID)
	return RideView{
		Ride:                 *ride,
		RidersCount:          count,
		IsFull:               count >= int64(ride.Capacity),
		IsUserCreator:        ride.CreatorID == viewerID,
		IsUserRider:          s.IsUserRider(ride.ID, viewerID),
		HasUserRequested:     s.HasUserRequested(ride.ID, viewerID),
		IsUserRequestPending: s.IsUserRequestPending(ride.ID, viewerID),
		HasUserBeenAccepted:  s.HasUserBeenAccepted(ride.ID, viewerID),
		HasUserBeenRejected:  s.HasUserBeenRejected(ride.ID, viewerID),
		HasUserCancelled:     s.HasUserCancelled(ride.ID, viewerID),
	}
}
