package services

import (
	"github.com/tigerapps/tigertaxi/internal/models"
	"gorm.io/gorm"
)

type RiderService struct {
	db *gorm.DB
}

func NewRiderService(db *gorm.DB) *RiderService {
	return &RiderService{db: db}
}

// Remove deletes a rider from a ride. Only the ride creator may remove, and
// the creator's own seat is never removable, so a ride cannot lose its
// creator link. If the seat came from an accepted request, the request row
// is deleted in the same transaction (hard delete, unlike reject/cancel
// which keep history).
func (s *RiderService) Remove(riderID, actorID uint) (*models.Rider, error) {
	var rider models.Rider

	// Load associations up front: the caller needs them for notifications
	// after the rows are gone.
	err := s.db.
		Preload("User").
		Preload("RideRequest").
		First(&rider, riderID).Error
	if err != nil {
		return nil, err
	}

	var ride models.Ride
	if err := s.db.Preload("Creator").First(&ride, rider.RideID).Error; err != nil {
		return nil, err
	}

	if ride.CreatorID != actorID {
		return nil, ErrWrongActor
	}
	if rider.IsCreator {
		return nil, ErrCreatorCannotLeave
	}

	if err := s.delete(&rider); err != nil {
		return nil, err
	}

	return &rider, nil
}

// Leave removes the user's own seat from a ride, with the same request
// cascade as Remove. The creator cannot leave their own ride.
func (s *RiderService) Leave(rideID, userID uint) (*models.Rider, error) {
	var rider models.Rider
	err := s.db.
		Preload("User").
		Where("ride_id = ? AND user_id = ?", rideID, userID).
		First(&rider).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotRider
		}
		return nil, err
	}

	if rider.IsCreator {
		return nil, ErrCreatorCannotLeave
	}

	if err := s.delete(&rider); err != nil {
		return nil, err
	}

	return &rider, nil
}

// delete removes the rider row and, when the seat originated from an
// accepted request, that request row too, atomically.
func (s *RiderService) delete(rider *models.Rider) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if rider.RideRequestID != nil {
			if err := tx.Delete(&models.RideRequest{}, *rider.RideRequestID).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Rider{}, rider.ID).Error
	})
}
