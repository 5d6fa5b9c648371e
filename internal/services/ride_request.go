package services

import (
	"time"

	"github.com/tigerapps/tigertaxi/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RideRequestService struct {
	db *gorm.DB
}

func NewRideRequestService(db *gorm.DB) *RideRequestService {
	return &RideRequestService{db: db}
}

// Create files a PENDING join request for a ride. Guards: the requester must
// not already hold a seat, the ride must not be full, and at most one active
// (pending or accepted) request may exist per (user, ride) pair. The guards
// re-run inside the transaction so two racing requests cannot both pass.
func (s *RideRequestService) Create(rideID, userID uint) (*models.RideRequest, error) {
	var req models.RideRequest

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var ride models.Ride
		if err := lockForUpdate(tx).First(&ride, rideID).Error; err != nil {
			return err
		}

		var seated int64
		tx.Model(&models.Rider{}).
			Where("ride_id = ? AND user_id = ?", rideID, userID).
			Count(&seated)
		if seated > 0 {
			return ErrAlreadyRider
		}

		var riders int64
		tx.Model(&models.Rider{}).Where("ride_id = ?", rideID).Count(&riders)
		if riders >= int64(ride.Capacity) {
			return ErrRideFull
		}

		var active int64
		tx.Model(&models.RideRequest{}).
			Where("ride_id = ? AND user_id = ?", rideID, userID).
			Where("status IN ?", []models.RequestStatus{models.RequestPending, models.RequestAccepted}).
			Count(&active)
		if active > 0 {
			return ErrDuplicateRequest
		}

		req = models.RideRequest{
			RideID: rideID,
			UserID: userID,
			Status: models.RequestPending,
		}
		return tx.Create(&req).Error
	})
	if err != nil {
		return nil, err
	}

	if err := s.loadWithAssociations(&req, req.ID); err != nil {
		return nil, err
	}
	return &req, nil
}

// GetByID returns a request with its ride (and the ride's creator) and
// requesting user loaded.
func (s *RideRequestService) GetByID(id uint) (*models.RideRequest, error) {
	var req models.RideRequest
	if err := s.loadWithAssociations(&req, id); err != nil {
		return nil, err
	}
	return &req, nil
}

// Accept transitions a pending request to ACCEPTED and seats the requester.
// Only the ride creator may accept. The request row is locked so the pending
// guard runs against the committed state, not a pre-lock snapshot, and the
// ride row is locked before the capacity re-check so two concurrent accepts
// cannot both fill the last seat; if either guard fails nothing changes.
func (s *RideRequestService) Accept(requestID, actorID uint) (*models.RideRequest, error) {
	var req models.RideRequest

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&req, requestID).Error; err != nil {
			return err
		}

		var ride models.Ride
		if err := lockForUpdate(tx).First(&ride, req.RideID).Error; err != nil {
			return err
		}

		if ride.CreatorID != actorID {
			return ErrWrongActor
		}
		if !req.IsPending() {
			return ErrRequestNotPending
		}

		var riders int64
		tx.Model(&models.Rider{}).Where("ride_id = ?", ride.ID).Count(&riders)
		if riders >= int64(ride.Capacity) {
			return ErrRideFull
		}

		now := time.Now().UTC()
		req.Status = models.RequestAccepted
		req.StatusChangedAt = &now
		if err := tx.Save(&req).Error; err != nil {
			return err
		}

		seat := models.Rider{
			RideRequestID: &req.ID,
			RideID:        req.RideID,
			UserID:        req.UserID,
		}
		return tx.Create(&seat).Error
	})
	if err != nil {
		return nil, err
	}

	if err := s.loadWithAssociations(&req, req.ID); err != nil {
		return nil, err
	}
	return &req, nil
}

// Reject transitions a pending request to REJECTED. Only the ride creator
// may reject. The request row is locked so a reject racing an accept cannot
// both pass the pending guard. Any rider row referencing this request is
// deleted as defensive cleanup; normally none exists since acceptance is
// what creates one.
func (s *RideRequestService) Reject(requestID, actorID uint) (*models.RideRequest, error) {
	var req models.RideRequest

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&req, requestID).Error; err != nil {
			return err
		}

		var ride models.Ride
		if err := tx.First(&ride, req.RideID).Error; err != nil {
			return err
		}
		if ride.CreatorID != actorID {
			return ErrWrongActor
		}
		if !req.IsPending() {
			return ErrRequestNotPending
		}

		now := time.Now().UTC()
		req.Status = models.RequestRejected
		req.StatusChangedAt = &now
		if err := tx.Save(&req).Error; err != nil {
			return err
		}

		return tx.
			Where("ride_request_id = ? AND user_id = ?", req.ID, req.UserID).
			Delete(&models.Rider{}).Error
	})
	if err != nil {
		return nil, err
	}

	if err := s.loadWithAssociations(&req, req.ID); err != nil {
		return nil, err
	}
	return &req, nil
}

// Cancel transitions a pending request to CANCELLED. Only the requester may
// cancel. The request row is locked for the same reason as Accept and
// Reject. No rider cleanup is needed: a pending request never has a seat.
func (s *RideRequestService) Cancel(requestID, actorID uint) (*models.RideRequest, error) {
	var req models.RideRequest

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&req, requestID).Error; err != nil {
			return err
		}
		if req.UserID != actorID {
			return ErrWrongActor
		}
		if !req.IsPending() {
			return ErrRequestNotPending
		}

		now := time.Now().UTC()
		req.Status = models.RequestCancelled
		req.StatusChangedAt = &now
		return tx.Save(&req).Error
	})
	if err != nil {
		return nil, err
	}

	if err := s.loadWithAssociations(&req, req.ID); err != nil {
		return nil, err
	}
	return &req, nil
}

// RequestsOutbox groups a user's outbound requests by status for the
// My Rides page.
type RequestsOutbox struct {
	Accepted []models.RideRequest `json:"accepted"`
	Pending  []models.RideRequest `json:"pending"`
	Rejected []models.RideRequest `json:"rejected"`
}

// Outbox returns the user's outbound requests for rides still within the
// visibility horizon, bucketed by status and ordered by departure.
func (s *RideRequestService) Outbox(userID uint) (*RequestsOutbox, error) {
	outbox := &RequestsOutbox{}

	buckets := []struct {
		status models.RequestStatus
		dest   *[]models.RideRequest
	}{
		{models.RequestAccepted, &outbox.Accepted},
		{models.RequestPending, &outbox.Pending},
		{models.RequestRejected, &outbox.Rejected},
	}

	for _, b := range buckets {
		err := s.db.
			Preload("Ride.Creator").
			Joins("JOIN rides ON rides.id = ride_requests.ride_id").
			Where("ride_requests.user_id = ?", userID).
			Where("ride_requests.status = ?", b.status).
			Where("rides.departure_datetime >= ?", models.DepartureLimit()).
			Order("rides.departure_datetime ASC").
			Find(b.dest).Error
		if err != nil {
			return nil, err
		}
	}

	return outbox, nil
}

// PendingInbox returns pending requests on rides the user created, oldest
// first.
func (s *RideRequestService) PendingInbox(creatorID uint) ([]models.RideRequest, error) {
	var reqs []models.RideRequest
	err := s.db.
		Preload("Ride").
		Preload("User").
		Joins("JOIN rides ON rides.id = ride_requests.ride_id").
		Where("rides.creator_id = ?", creatorID).
		Where("ride_requests.status = ?", models.RequestPending).
		Order("ride_requests.created_at ASC").
		Find(&reqs).Error
	return reqs, err
}

func (s *RideRequestService) loadWithAssociations(req *models.RideRequest, id uint) error {
	return s.db.
		Preload("Ride.Creator").
		Preload("User").
		First(req, id).Error
}

// lockForUpdate takes a row lock where the dialect supports it. SQLite has
// no row locks; its single-writer transactions serialize the check anyway.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
