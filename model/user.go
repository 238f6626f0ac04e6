// Package model provides data models for the portfolio CMS.
package model

import (
	"time"
)

// DefaultProfilePic is used when a user has not uploaded a profile image.
const DefaultProfilePic = "/static/images/default-profile.png"

// User represents a registered account in the system.
//
// Password is stored and compared as plaintext to keep behavioral parity
// with the original deployment. Any real installation must switch to
// salted hashing before going anywhere near production.
type User struct {
	Key        string    `json:"_key,omitempty"`
	Username   string    `json:"username"`
	Password   string    `json:"password,omitempty"`
	Realname   string    `json:"realname"`
	Birthdate  string    `json:"birthdate"`
	Bio        string    `json:"bio"`
	ProfilePic string    `json:"profilePic"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewUser creates a new user with default values
func NewUser(username, password, realname, birthdate string) *User {
	now := time.Now()
	return &User{
		Username:   username,
		Password:   password,
		Realname:   realname,
		Birthdate:  birthdate,
		Bio:        "",
		ProfilePic: DefaultProfilePic,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// UserView is the reduced shape returned on successful login.
// Password and profile picture are intentionally excluded.
type UserView struct {
	Username  string `json:"username"`
	Realname  string `json:"realname"`
	Birthdate string `json:"birthdate"`
}

// View returns the reduced login view of the user.
func (u *User) View() UserView {
	return UserView{
		Username:  u.Username,
		Realname:  u.Realname,
		Birthdate: u.Birthdate,
	}
}

// UserPatch carries a partial profile update. Empty fields mean
// "leave the stored value unchanged", not "clear the field".
type UserPatch struct {
	Realname   string `json:"realname"`
	Bio        string `json:"bio"`
	ProfilePic string `json:"profilePic"`
}
