package services

import (
	"context"
	"time"

	"github.com/tigerapps/tigertaxi/internal/config"
	"github.com/tigerapps/tigertaxi/internal/models"
	"github.com/tigerapps/tigertaxi/internal/utils"
	"gorm.io/gorm"
)

type AuthService struct {
	casClient *CASClient
	userSvc   *UserService
	jwtConfig *config.JWTConfig
}

func NewAuthService(db *gorm.DB, casCfg *config.CASConfig, jwtCfg *config.JWTConfig) *AuthService {
	return &AuthService{
		casClient: NewCASClient(casCfg),
		userSvc:   NewUserService(db),
		jwtConfig: jwtCfg,
	}
}

type LoginRequest struct {
	Ticket     string `json:"ticket" binding:"required"`
	ServiceURL string `json:"service_url" binding:"required"`
}

type LoginResult struct {
	Token    string       `json:"token"`
	ExpireAt time.Time    `json:"expire_at"`
	User     *models.User `json:"user"`
	// FirstLogin signals the client to prompt for a phone number; rides are
	// easier to coordinate over text.
	FirstLogin bool `json:"first_login"`
}

// Login validates a CAS service ticket, provisions the account on first
// login, and issues a session token.
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*LoginResult, error) {
	identity, err := s.casClient.ValidateTicket(ctx, req.Ticket, req.ServiceURL)
	if err != nil {
		return nil, err
	}

	existing, err := s.userSvc.GetByNetid(identity.Netid)
	firstLogin := err == gorm.ErrRecordNotFound
	if err != nil && !firstLogin {
		return nil, err
	}

	user := existing
	if firstLogin {
		user, err = s.userSvc.Ensure(identity.Netid, identity.Email, identity.DisplayName)
		if err != nil {
			return nil, err
		}
	}

	token, err := utils.GenerateToken(user.ID, user.Netid, s.jwtConfig.ExpireHour)
	if err != nil {
		return nil, err
	}

	expireHours := s.jwtConfig.ExpireHour
	if expireHours <= 0 {
		expireHours = 24
	}

	return &LoginResult{
		Token:      token,
		ExpireAt:   time.Now().Add(time.Duration(expireHours) * time.Hour),
		User:       user,
		FirstLogin: firstLogin || user.PhoneNum == "",
	}, nil
}

// LoginURL exposes the CAS login redirect target for the client.
func (s *AuthService) LoginURL(serviceURL string) string {
	return s.casClient.LoginURL(serviceURL)
}

// LogoutURL exposes the CAS logout target for the client.
func (s *AuthService) LogoutURL() string {
	return s.casClient.LogoutURL()
}
