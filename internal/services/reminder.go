package services

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/tigerapps/tigertaxi/internal/models"
	"github.com/tigerapps/tigertaxi/pkg/logger"
	"gorm.io/gorm"
)

// reminderWindow is how far ahead of departure riders are reminded.
const reminderWindow = 24 * time.Hour

// ReminderService emails every rider of a ride departing within the next
// day, once per ride. The sweep runs hourly.
type ReminderService struct {
	db            *gorm.DB
	notifications *NotificationService
	cronScheduler *cron.Cron
}

func NewReminderService(db *gorm.DB, notifications *NotificationService) *ReminderService {
	return &ReminderService{
		db:            db,
		notifications: notifications,
	}
}

func (s *ReminderService) StartScheduler() {
	s.cronScheduler = cron.New()

	if _, err := s.cronScheduler.AddFunc("@hourly", func() {
		if err := s.Run(); err != nil {
			logger.Error().Err(err).Msg("departure reminder sweep failed")
		}
	}); err != nil {
		logger.Error().Err(err).Msg("failed to schedule departure reminders")
		return
	}

	s.cronScheduler.Start()
	logger.Info().Msg("departure reminder scheduler started")
}

func (s *ReminderService) StopScheduler() {
	if s.cronScheduler != nil {
		s.cronScheduler.Stop()
	}
}

// Run performs one reminder sweep. Exported so tests and operators can
// trigger it outside the schedule.
func (s *ReminderService) Run() error {
	now := time.Now().UTC()

	var rides []models.Ride
	err := s.db.
		Preload("Riders.User").
		Where("departure_datetime > ? AND departure_datetime <= ?", now, now.Add(reminderWindow)).
		Where("reminder_sent_at IS NULL").
		Find(&rides).Error
	if err != nil {
		return err
	}

	for i := range rides {
		ride := &rides[i]

		// Mark before sending so a crash mid-sweep cannot double-remind.
		res := s.db.Model(&models.Ride{}).
			Where("id = ? AND reminder_sent_at IS NULL", ride.ID).
			Update("reminder_sent_at", now)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			continue // another instance got there first
		}

		for j := range ride.Riders {
			if ride.Riders[j].User == nil {
				continue
			}
			s.notifications.DepartureReminder(ride.Riders[j].User, ride)
		}

		logger.Info().
			Uint("ride_id", ride.ID).
			Int("riders", len(ride.Riders)).
			Msg("departure reminder sent")
	}

	return nil
}
