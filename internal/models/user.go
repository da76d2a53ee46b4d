package models

import (
	"errors"
	"strings"
	"time"
)

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name"`
	Phone        string    `json:"phone,omitempty"`
	Active       bool      `json:"active"`
	Roles        []string  `json:"roles"`
	RegisteredAt time.Time `json:"registered_at"`
}

func (u *User) Validate() error {
	u.Username = strings.TrimSpace(u.Username)
	u.Email = strings.TrimSpace(u.Email)
	u.FullName = strings.TrimSpace(u.FullName)
	if n := len(u.Username); n < 3 || n > 50 {
		return errors.New("username must be 3-50 characters")
	}
	if !strings.Contains(u.Email, "@") || len(u.Email) > 100 {
		return errors.New("invalid email")
	}
	if u.FullName == "" || len(u.FullName) > 100 {
		return errors.New("full name required, max 100 characters")
	}
	if len(u.Phone) > 20 {
		return errors.New("phone max 20 characters")
	}
	return nil
}

func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r == name {
			return true
		}
	}
	return false
}
