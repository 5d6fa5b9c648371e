package models

import "time"

// User represents a TigerTaxi account, provisioned on first successful
// CAS login. Users are never hard-deleted.
type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Netid       string    `gorm:"uniqueIndex;size:64;not null" json:"netid"`
	Email       string    `gorm:"unique;size:256;not null" json:"email"`
	DispName    string    `gorm:"size:256;not null" json:"disp_name"`
	PhoneNum    string    `gorm:"size:16" json:"phone_num"`
	EmailNotifs bool      `gorm:"default:true" json:"email_notifs"`
	TextNotifs  bool      `gorm:"default:true" json:"text_notifs"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }
