package services

import (
	"regexp"

	"github.com/tigerapps/tigertaxi/internal/models"
	"gorm.io/gorm"
)

// Same pattern the settings form applies client-side.
var phoneRegex = regexp.MustCompile(
	`^\+?([0-2]{1})?((-?)|(.?)|( ?))\(?[0-9]{3}\)?((-?)|(.?)|( ?))[0-9]{3}((-?)|(.?)|( ?))[0-9]{4}$`,
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// GetByNetid returns the user with the given netid.
func (s *UserService) GetByNetid(netid string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("netid = ?", netid).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID returns the user with the given ID.
func (s *UserService) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Ensure returns the user for a netid, provisioning the account from the
// SSO attributes on first login.
func (s *UserService) Ensure(netid, email, dispName string) (*models.User, error) {
	var user models.User
	err := s.db.Where("netid = ?", netid).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	user = models.User{
		Netid:       netid,
		Email:       email,
		DispName:    dispName,
		EmailNotifs: true,
		TextNotifs:  true,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateSettingsRequest carries the Settings form. Each field is optional;
// only supplied fields are validated and applied. Notification preferences
// arrive as the form's "Yes"/"No" values.
type UpdateSettingsRequest struct {
	DispName    *string `json:"disp_name"`
	PhoneNum    *string `json:"phone_num"`
	EmailNotifs *string `json:"email_notifs"`
	TextNotifs  *string `json:"text_notifs"`
}

// UpdateSettings applies user-adjustable settings. Only the account owner
// may change them.
func (s *UserService) UpdateSettings(netid, actorNetid string, req *UpdateSettingsRequest) (*models.User, error) {
	if netid != actorNetid {
		return nil, ErrWrongActor
	}

	user, err := s.GetByNetid(netid)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})

	if req.DispName != nil {
		name := *req.DispName
		if len(name) == 0 {
			return nil, invalid("disp_name", "display name too short")
		}
		if len(name) > 256 {
			return nil, invalid("disp_name", "display name too long")
		}
		updates["disp_name"] = name
	}

	if req.PhoneNum != nil {
		num := *req.PhoneNum
		if !phoneRegex.MatchString(num) {
			return nil, invalid("phone_num", "invalid phone number format")
		}
		if len(num) > 16 {
			return nil, invalid("phone_num", "phone number is too long")
		}
		updates["phone_num"] = num
	}

	if req.EmailNotifs != nil {
		v, ok := yesNo(*req.EmailNotifs)
		if !ok {
			return nil, invalid("email_notifs", "invalid email preference value")
		}
		updates["email_notifs"] = v
	}

	if req.TextNotifs != nil {
		v, ok := yesNo(*req.TextNotifs)
		if !ok {
			return nil, invalid("text_notifs", "invalid text preference value")
		}
		updates["text_notifs"] = v
	}

	if len(updates) > 0 {
		if err := s.db.Model(user).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return user, nil
}

func yesNo(v string) (value, ok bool) {
	switch v {
	case "Yes":
		return true, true
	case "No":
		return false, true
	}
	return false, false
}
