// internal/models/user.go
package models

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type User struct {
	BaseModel
	Email         string   `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash  string   `json:"-" gorm:"size:255;not null"`
	Role          UserRole `json:"role" gorm:"type:varchar(20);not null;default:'customer'"`
	FirstName     string   `json:"first_name,omitempty" gorm:"size:100"`
	LastName      string   `json:"last_name" gorm:"size:100"`
	Phone         string   `json:"phone,omitempty" gorm:"size:20"`
	AvatarURL     string   `json:"avatar_url,omitempty" gorm:"type:text"`
	EmailVerified bool     `json:"email_verified" gorm:"default:false"`

	// Relationships
	DeliveryDetails *DeliveryDetails `json:"delivery_details,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

// FullName joins the first and last name, skipping empty parts.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// DeliveryDetails holds the pickup/shipping address; one row per user.
type DeliveryDetails struct {
	BaseModel
	UserID     uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex"`
	Address    string    `json:"address" gorm:"size:255;not null"`
	City       string    `json:"city" gorm:"size:100;not null"`
	PostalCode string    `json:"postal_code" gorm:"size:20;not null"`
	Country    string    `json:"country" gorm:"size:100;not null"`
	Phone      string    `json:"phone" gorm:"size:20;not null"`
}
