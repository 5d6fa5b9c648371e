package services

import (
	"strings"
	"testing"
	"time"

	"github.com/tigerapps/tigertaxi/internal/config"
	"github.com/tigerapps/tigertaxi/internal/models"
)

// captureQueue records enqueued tasks instead of delivering them.
type captureQueue struct {
	tasks []*EmailTask
}

func (q *captureQueue) Enqueue(task *EmailTask) error {
	q.tasks = append(q.tasks, task)
	return nil
}

func (q *captureQueue) IsAsync() bool { return false }
func (q *captureQueue) Close() error  { return nil }

func notificationFixture() (*NotificationService, *captureQueue, *models.User, *models.User, *models.Ride) {
	queue := &captureQueue{}
	svc := NewNotificationService(queue, &config.ServerConfig{
		BaseURL: "https://tigertaxi.example.com/",
	})

	creator := &models.User{
		ID:          1,
		Netid:       "cr1234",
		Email:       "cr1234@princeton.edu",
		DispName:    "Ride Creator",
		EmailNotifs: true,
	}
	requester := &models.User{
		ID:          2,
		Netid:       "rq5678",
		Email:       "rq5678@princeton.edu",
		DispName:    "Ride Requester",
		EmailNotifs: true,
	}
	ride := &models.Ride{
		ID:                10,
		CreatorID:         creator.ID,
		Creator:           creator,
		Origin:            models.HomeLocation,
		Destination:       "Newark Airport",
		DepartureDatetime: time.Date(2026, 9, 12, 14, 30, 0, 0, time.UTC),
	}
	return svc, queue, creator, requester, ride
}

func TestNotification_RequestAccepted(t *testing.T) {
	svc, queue, _, requester, ride := notificationFixture()

	svc.RequestAccepted(requester, ride)

	if len(queue.tasks) != 1 {
		t.Fatalf("expected 1 enqueued email, got %d", len(queue.tasks))
	}
	task := queue.tasks[0]

	if len(task.To) != 1 || task.To[0] != requester.Email {
		t.Errorf("To = %v, expected the requester", task.To)
	}
	if !strings.Contains(task.Subject, "accepted") {
		t.Errorf("Subject = %q, expected an acceptance subject", task.Subject)
	}
	if !strings.Contains(task.Body, "Hello Ride Requester,") {
		t.Error("body should greet the recipient by display name")
	}
	if !strings.Contains(task.Body, "Newark Airport") {
		t.Error("body should name the destination")
	}
	if !strings.Contains(task.Body, "https://tigertaxi.example.com/account/rides") {
		t.Error("body should link to the rides page")
	}
}

func TestNotification_RespectsEmailPreference(t *testing.T) {
	svc, queue, creator, requester, ride := notificationFixture()

	creator.EmailNotifs = false
	requester.EmailNotifs = false

	svc.RideCreated(creator, ride)
	svc.RequestReceived(creator, requester, ride)
	svc.RequestAccepted(requester, ride)
	svc.RequestRejected(requester, ride)
	svc.RiderRemoved(requester, creator, ride)
	svc.RiderLeft(creator, requester.DispName, ride)
	svc.DepartureReminder(requester, ride)

	if len(queue.tasks) != 0 {
		t.Errorf("opted-out recipients received %d emails", len(queue.tasks))
	}
}

func TestNotification_Recipients(t *testing.T) {
	svc, queue, creator, requester, ride := notificationFixture()

	cases := []struct {
		name string
		fire func()
		want string
	}{
		{"ride created", func() { svc.RideCreated(creator, ride) }, creator.Email},
		{"request received", func() { svc.RequestReceived(creator, requester, ride) }, creator.Email},
		{"request accepted", func() { svc.RequestAccepted(requester, ride) }, requester.Email},
		{"request rejected", func() { svc.RequestRejected(requester, ride) }, requester.Email},
		{"rider removed", func() { svc.RiderRemoved(requester, creator, ride) }, requester.Email},
		{"rider left", func() { svc.RiderLeft(creator, requester.DispName, ride) }, creator.Email},
		{"departure reminder", func() { svc.DepartureReminder(requester, ride) }, requester.Email},
	}

	for _, tc := range cases {
		queue.tasks = nil
		tc.fire()

		if len(queue.tasks) != 1 {
			t.Errorf("%s: expected 1 email, got %d", tc.name, len(queue.tasks))
			continue
		}
		if queue.tasks[0].To[0] != tc.want {
			t.Errorf("%s: sent to %q, expected %q", tc.name, queue.tasks[0].To[0], tc.want)
		}
	}
}

func TestNotification_RiderRemoved_MissingCreator(t *testing.T) {
	svc, queue, _, requester, ride := notificationFixture()

	// A ride whose creator association failed to load still notifies the
	// removed rider, with a neutral name in place of the creator's.
	svc.RiderRemoved(requester, nil, ride)

	if len(queue.tasks) != 1 {
		t.Fatalf("expected 1 email, got %d", len(queue.tasks))
	}
	if !strings.Contains(queue.tasks[0].Subject, "removed you from their ride") {
		t.Errorf("Subject = %q", queue.tasks[0].Subject)
	}
}

func TestNotification_EscapesUserContent(t *testing.T) {
	svc, queue, creator, requester, ride := notificationFixture()

	requester.DispName = `<script>alert("x")</script>`

	svc.RequestReceived(creator, requester, ride)

	if len(queue.tasks) != 1 {
		t.Fatalf("expected 1 email, got %d", len(queue.tasks))
	}
	if strings.Contains(queue.tasks[0].Subject, "<script>") {
		t.Error("display names must be HTML-escaped in subjects")
	}
}

func TestEmailBody_Shell(t *testing.T) {
	body := emailBody("Tiger", "See you soon.")

	for _, part := range []string{
		"<p>Hello Tiger,</p>",
		"<p>See you soon.</p>",
		"<p>All the best,</p>",
		"<p>TigerTaxi Team</p>",
	} {
		if !strings.Contains(body, part) {
			t.Errorf("body missing %q", part)
		}
	}
}
