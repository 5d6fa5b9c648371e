package services

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tigerapps/tigertaxi/internal/config"
)

// ErrCASAuthFailed means the CAS server rejected the service ticket.
var ErrCASAuthFailed = errors.New("CAS authentication failed")

// CASIdentity is the subset of CAS attributes the application consumes.
type CASIdentity struct {
	Netid       string
	Email       string
	DisplayName string
}

// CASClient validates service tickets against the campus SSO server using
// the CAS 2.0 serviceValidate protocol.
type CASClient struct {
	serverURL  string
	httpClient *http.Client
}

func NewCASClient(cfg *config.CASConfig) *CASClient {
	return &CASClient{
		serverURL:  strings.TrimSuffix(cfg.ServerURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// LoginURL returns the CAS login page URL for the given service callback.
func (c *CASClient) LoginURL(serviceURL string) string {
	return fmt.Sprintf("%s/login?service=%s", c.serverURL, url.QueryEscape(serviceURL))
}

// LogoutURL returns the CAS logout URL.
func (c *CASClient) LogoutURL() string {
	return c.serverURL + "/logout"
}

// serviceValidate XML envelope (CAS 2.0)
type casServiceResponse struct {
	XMLName xml.Name    `xml:"serviceResponse"`
	Success *casSuccess `xml:"authenticationSuccess"`
	Failure *casFailure `xml:"authenticationFailure"`
}

type casSuccess struct {
	User       string        `xml:"user"`
	Attributes casAttributes `xml:"attributes"`
}

type casAttributes struct {
	Mail        string `xml:"mail"`
	DisplayName string `xml:"displayname"`
}

type casFailure struct {
	Code    string `xml:"code,attr"`
	Message string `xml:",chardata"`
}

// ValidateTicket checks a service ticket with the CAS server and returns the
// authenticated identity.
func (c *CASClient) ValidateTicket(ctx context.Context, ticket, serviceURL string) (*CASIdentity, error) {
	validateURL := fmt.Sprintf(
		"%s/serviceValidate?ticket=%s&service=%s",
		c.serverURL, url.QueryEscape(ticket), url.QueryEscape(serviceURL),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, validateURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("CAS server unreachable: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}

	var envelope casServiceResponse
	if err := xml.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("malformed CAS response: %w", err)
	}

	if envelope.Success == nil || envelope.Success.User == "" {
		if envelope.Failure != nil {
			return nil, fmt.Errorf("%w: %s (%s)", ErrCASAuthFailed,
				strings.TrimSpace(envelope.Failure.Message), envelope.Failure.Code)
		}
		return nil, ErrCASAuthFailed
	}

	return &CASIdentity{
		Netid:       envelope.Success.User,
		Email:       envelope.Success.Attributes.Mail,
		DisplayName: envelope.Success.Attributes.DisplayName,
	}, nil
}
