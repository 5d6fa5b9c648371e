package services

import (
	"fmt"
	"html"
	"strings"

	"github.com/tigerapps/tigertaxi/internal/config"
	"github.com/tigerapps/tigertaxi/internal/models"
	"github.com/tigerapps/tigertaxi/pkg/logger"
)

// NotificationService composes ride lifecycle emails and hands them to the
// task queue. Delivery is fire-and-forget from the caller's perspective;
// each method respects the recipient's email preference and never fails the
// triggering operation.
type NotificationService struct {
	queue   TaskQueue
	baseURL string
}

func NewNotificationService(queue TaskQueue, serverCfg *config.ServerConfig) *NotificationService {
	return &NotificationService{
		queue:   queue,
		baseURL: strings.TrimSuffix(serverCfg.BaseURL, "/"),
	}
}

func (s *NotificationService) myRidesURL() string { return s.baseURL + "/account/rides" }
func (s *NotificationService) searchURL() string  { return s.baseURL + "/search" }

// RideCreated notifies a creator that their ride is live.
func (s *NotificationService) RideCreated(creator *models.User, ride *models.Ride) {
	if !creator.EmailNotifs {
		return
	}
	subject := fmt.Sprintf("Your ride from %s to %s has been created.",
		html.EscapeString(ride.Origin), html.EscapeString(ride.Destination))
	body := emailBody(creator.DispName,
		fmt.Sprintf(`Your ride can now be seen and requested by other
		TigerTaxi users. <a href=%q>Click here</a> to manage the ride.`, s.myRidesURL()))
	s.deliver([]string{creator.Email}, subject, body)
}

// RequestReceived notifies a ride creator of a new join request.
func (s *NotificationService) RequestReceived(creator, requester *models.User, ride *models.Ride) {
	if !creator.EmailNotifs {
		return
	}
	subject := fmt.Sprintf("New ride request from %s", html.EscapeString(requester.DispName))
	body := emailBody(creator.DispName,
		fmt.Sprintf(`You've received a ride request for your ride from %s to %s
		on %s. <a href=%q>Click here</a> to manage the request.`,
			html.EscapeString(ride.Origin), html.EscapeString(ride.Destination),
			html.EscapeString(ride.FormatDeparture()), s.myRidesURL()))
	s.deliver([]string{creator.Email}, subject, body)
}

// RequestAccepted notifies a requester that they got a seat.
func (s *NotificationService) RequestAccepted(requester *models.User, ride *models.Ride) {
	if !requester.EmailNotifs {
		return
	}
	creatorName := ""
	if ride.Creator != nil {
		creatorName = ride.Creator.DispName
	}
	subject := fmt.Sprintf("%s has accepted your ride request", html.EscapeString(creatorName))
	body := emailBody(requester.DispName,
		fmt.Sprintf(`You've been accepted to ride from %s to %s on %s.
		<a href=%q>Click here</a> to manage your accepted request.`,
			html.EscapeString(ride.Origin), html.EscapeString(ride.Destination),
			html.EscapeString(ride.FormatDeparture()), s.myRidesURL()))
	s.deliver([]string{requester.Email}, subject, body)
}

// RequestRejected notifies a requester that the creator turned them down.
func (s *NotificationService) RequestRejected(requester *models.User, ride *models.Ride) {
	if !requester.EmailNotifs {
		return
	}
	creatorName := ""
	if ride.Creator != nil {
		creatorName = ride.Creator.DispName
	}
	subject := fmt.Sprintf("%s has rejected your ride request", html.EscapeString(creatorName))
	body := emailBody(requester.DispName,
		fmt.Sprintf(`Your request to ride from %s to %s on %s has been
		rejected. <a href=%q>Click here</a> to look for other options.`,
			html.EscapeString(ride.Origin), html.EscapeString(ride.Destination),
			html.EscapeString(ride.FormatDeparture()), s.searchURL()))
	s.deliver([]string{requester.Email}, subject, body)
}

// RiderRemoved notifies a rider that the creator removed them.
func (s *NotificationService) RiderRemoved(removed *models.User, creator *models.User, ride *models.Ride) {
	if !removed.EmailNotifs {
		return
	}
	creatorName := "The ride creator"
	if creator != nil {
		creatorName = creator.DispName
	}
	subject := fmt.Sprintf("%s has removed you from their ride", html.EscapeString(creatorName))
	body := emailBody(removed.DispName,
		fmt.Sprintf(`%s has removed you from their ride from %s to %s on %s.
		<a href=%q>Click here</a> to search for other options.`,
			html.EscapeString(creatorName),
			html.EscapeString(ride.Origin), html.EscapeString(ride.Destination),
			html.EscapeString(ride.FormatDeparture()), s.searchURL()))
	s.deliver([]string{removed.Email}, subject, body)
}

// RiderLeft notifies a ride creator that a rider left voluntarily.
func (s *NotificationService) RiderLeft(creator *models.User, riderName string, ride *models.Ride) {
	if !creator.EmailNotifs {
		return
	}
	subject := fmt.Sprintf("%s has left your ride", html.EscapeString(riderName))
	body := emailBody(creator.DispName,
		fmt.Sprintf(`%s has left your ride from %s to %s on %s.
		<a href=%q>Click here</a> to manage your ride.`,
			html.EscapeString(riderName),
			html.EscapeString(ride.Origin), html.EscapeString(ride.Destination),
			html.EscapeString(ride.FormatDeparture()), s.myRidesURL()))
	s.deliver([]string{creator.Email}, subject, body)
}

// DepartureReminder nudges a rider ahead of an upcoming departure.
func (s *NotificationService) DepartureReminder(rider *models.User, ride *models.Ride) {
	if !rider.EmailNotifs {
		return
	}
	subject := fmt.Sprintf("Reminder: your ride from %s to %s departs soon",
		html.EscapeString(ride.Origin), html.EscapeString(ride.Destination))
	body := emailBody(rider.DispName,
		fmt.Sprintf(`Your ride from %s to %s departs on %s. <a href=%q>Click
		here</a> to review the details and coordinate with your group.`,
			html.EscapeString(ride.Origin), html.EscapeString(ride.Destination),
			html.EscapeString(ride.FormatDeparture()), s.myRidesURL()))
	s.deliver([]string{rider.Email}, subject, body)
}

func (s *NotificationService) deliver(to []string, subject, body string) {
	if s.queue == nil {
		return
	}
	if err := s.queue.Enqueue(&EmailTask{To: to, Subject: subject, Body: body}); err != nil {
		logger.Error().Err(err).Str("subject", subject).Msg("failed to enqueue notification")
	}
}

func emailBody(recipientName, paragraph string) string {
	var sb strings.Builder
	sb.WriteString("<style>p {margin-bottom: 2rem;}</style>")
	sb.WriteString(fmt.Sprintf("<p>Hello %s,</p>", html.EscapeString(recipientName)))
	sb.WriteString(fmt.Sprintf("<p>%s</p>", paragraph))
	sb.WriteString("<p>All the best,</p>")
	sb.WriteString("<p>TigerTaxi Team</p>")
	return sb.String()
}
