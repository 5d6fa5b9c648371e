package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/tigerapps/tigertaxi/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// openTestDB returns a fresh in-memory database with the schema migrated.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// Every pooled connection gets its own :memory: database; keep one.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access connection pool: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.Ride{},
		&models.RideRequest{},
		&models.Rider{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

var testUserSeq int

func newTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	testUserSeq++
	user := &models.User{
		Netid:       fmt.Sprintf("tt%04d", testUserSeq),
		Email:       fmt.Sprintf("tt%04d@princeton.edu", testUserSeq),
		DispName:    fmt.Sprintf("Test User %d", testUserSeq),
		EmailNotifs: true,
		TextNotifs:  true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// newTestRide creates a ride through the service so the creator is seated.
func newTestRide(t *testing.T, db *gorm.DB, creator *models.User, capacity int) *models.Ride {
	t.Helper()

	ride, err := NewRideService(db).Create(creator.ID, &CreateRideRequest{
		ToFrom:         "From",
		Location:       "Newark Airport",
		DepartureLocal: time.Now().UTC().Add(48 * time.Hour).Format("2006-01-02T15:04"),
		UTCOffset:      0,
		Capacity:       capacity,
		Notes:          "",
		ShowID:         "Yes",
	})
	if err != nil {
		t.Fatalf("failed to create test ride: %v", err)
	}
	return ride
}
