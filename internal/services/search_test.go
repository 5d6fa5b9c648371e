package services

import (
	"errors"
	"testing"
	"time"

	"github.com/tigerapps/tigertaxi/internal/models"
	"gorm.io/gorm"
)

func seedRide(t *testing.T, db *gorm.DB, creatorID uint, origin, destination string, departure time.Time) *models.Ride {
	t.Helper()

	ride := &models.Ride{
		CreatorID:         creatorID,
		Capacity:          4,
		Origin:            origin,
		Destination:       destination,
		DepartureDatetime: departure,
	}
	if err := db.Create(ride).Error; err != nil {
		t.Fatalf("failed to seed ride: %v", err)
	}
	return ride
}

func TestRideService_Search_TabFrom(t *testing.T) {
	db := openTestDB(t)
	creator := newTestUser(t, db)
	viewer := newTestUser(t, db)
	svc := NewRideService(db)

	future := time.Now().UTC().Add(72 * time.Hour)
	seedRide(t, db, creator.ID, models.HomeLocation, "Newark Airport", future)
	seedRide(t, db, creator.ID, models.HomeLocation, "Philadelphia", future)
	seedRide(t, db, creator.ID, "New York", models.HomeLocation, future)

	views, err := svc.Search(&SearchRequest{Tab: "from"}, viewer.ID)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("tab=from: expected 2 rides, got %d", len(views))
	}
	for _, v := range views {
		if v.Origin != models.HomeLocation {
			t.Errorf("tab=from result has origin %q", v.Origin)
		}
	}
}

func TestRideService_Search_TabToWithTerm(t *testing.T) {
	db := openTestDB(t)
	creator := newTestUser(t, db)
	viewer := newTestUser(t, db)
	svc := NewRideService(db)

	future := time.Now().UTC().Add(72 * time.Hour)
	seedRide(t, db, creator.ID, "Newark Airport", models.HomeLocation, future)
	seedRide(t, db, creator.ID, "New York", models.HomeLocation, future)

	views, err := svc.Search(&SearchRequest{Tab: "to", Origin: "newark"}, viewer.ID)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 match, got %d", len(views))
	}
	if views[0].Origin != "Newark Airport" {
		t.Errorf("matched origin = %q, expected %q", views[0].Origin, "Newark Airport")
	}
}

func TestRideService_Search_HidesHistorical(t *testing.T) {
	db := openTestDB(t)
	creator := newTestUser(t, db)
	viewer := newTestUser(t, db)
	svc := NewRideService(db)

	seedRide(t, db, creator.ID, models.HomeLocation, "Newark Airport",
		time.Now().UTC().Add(-48*time.Hour))
	seedRide(t, db, creator.ID, models.HomeLocation, "Newark Airport",
		time.Now().UTC().Add(-3*time.Hour)) // inside grace window
	seedRide(t, db, creator.ID, models.HomeLocation, "Newark Airport",
		time.Now().UTC().Add(48*time.Hour))

	views, err := svc.Search(&SearchRequest{}, viewer.ID)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(views) != 2 {
		t.Errorf("expected 2 visible rides, got %d", len(views))
	}
}

func TestRideService_Search_DateRange(t *testing.T) {
	db := openTestDB(t)
	creator := newTestUser(t, db)
	viewer := newTestUser(t, db)
	svc := NewRideService(db)

	day := time.Now().UTC().Add(96 * time.Hour).Truncate(24 * time.Hour)
	inside := day.Add(10 * time.Hour)
	before := day.Add(-2 * time.Hour)
	after := day.Add(26 * time.Hour)

	seedRide(t, db, creator.ID, models.HomeLocation, "Newark Airport", inside)
	seedRide(t, db, creator.ID, models.HomeLocation, "Newark Airport", before)
	seedRide(t, db, creator.ID, models.HomeLocation, "Newark Airport", after)

	views, err := svc.Search(&SearchRequest{
		DepartureDate: day.Format("2006-01-02"),
	}, viewer.ID)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 ride on the chosen day, got %d", len(views))
	}
	if !views[0].DepartureDatetime.Equal(inside) {
		t.Errorf("matched departure = %v, expected %v", views[0].DepartureDatetime, inside)
	}
}

func TestRideService_Search_BadDate(t *testing.T) {
	db := openTestDB(t)
	viewer := newTestUser(t, db)
	svc := NewRideService(db)

	_, err := svc.Search(&SearchRequest{DepartureDate: "next tuesday"}, viewer.ID)
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Errorf("expected ValidationError for bad date, got %v", err)
	}
}

func TestRideService_Search_Ordering(t *testing.T) {
	db := openTestDB(t)
	creator := newTestUser(t, db)
	viewer := newTestUser(t, db)
	svc := NewRideService(db)

	later := time.Now().UTC().Add(96 * time.Hour)
	sooner := time.Now().UTC().Add(48 * time.Hour)

	seedRide(t, db, creator.ID, models.HomeLocation, "Trenton", later)
	seedRide(t, db, creator.ID, models.HomeLocation, "Boston", later)
	seedRide(t, db, creator.ID, models.HomeLocation, "Newark Airport", sooner)

	views, err := svc.Search(&SearchRequest{}, viewer.ID)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(views) != 3 {
		t.Fatalf("expected 3 rides, got %d", len(views))
	}
	if views[0].Destination != "Newark Airport" {
		t.Errorf("earliest departure should sort first, got %q", views[0].Destination)
	}
	if views[1].Destination != "Boston" || views[2].Destination != "Trenton" {
		t.Errorf("equal departures should sort by destination, got %q then %q",
			views[1].Destination, views[2].Destination)
	}
}

func TestRideService_Search_ViewerFlags(t *testing.T) {
	db := openTestDB(t)
	creator := newTestUser(t, db)
	requester := newTestUser(t, db)
	svc := NewRideService(db)

	ride := newTestRide(t, db, creator, 3)
	if _, err := NewRideRequestService(db).Create(ride.ID, requester.ID); err != nil {
		t.Fatalf("request creation failed: %v", err)
	}

	views, err := svc.Search(&SearchRequest{}, requester.ID)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 ride, got %d", len(views))
	}

	v := views[0]
	if v.IsUserCreator {
		t.Error("requester flagged as creator")
	}
	if v.IsUserRider {
		t.Error("pending requester flagged as rider")
	}
	if !v.HasUserRequested || !v.IsUserRequestPending {
		t.Error("pending request flags not set")
	}
	if v.RidersCount != 1 {
		t.Errorf("RidersCount = %d, expected 1", v.RidersCount)
	}

	creatorViews, err := svc.Search(&SearchRequest{}, creator.ID)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if !creatorViews[0].IsUserCreator || !creatorViews[0].IsUserRider {
		t.Error("creator flags not set on own ride")
	}
}
