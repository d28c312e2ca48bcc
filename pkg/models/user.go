package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Fullname     string    `json:"fullname" db:"fullname"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// DisplayName is the name shown next to records the user manages, owns or allocated.
func (u *User) DisplayName() string {
	switch {
	case u.Fullname != "":
		return u.Fullname
	case u.Email != "":
		return u.Email
	default:
		return u.Username
	}
}

type CreateUserRequest struct {
	Username string `json:"username" binding:"required,alphanum,min=3,max=64"`
	Password string `json:"password" binding:"required,min=6"`
	Fullname string `json:"fullname"`
	Email    string `json:"email" binding:"omitempty,email"`
}

type UserView struct {
	User
	DisplayName string `json:"display_name"`
}

func (u *User) View() UserView {
	return UserView{User: *u, DisplayName: u.DisplayName()}
}
