package model

import (
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// The administrator principal is never persisted; Login matches it before
// consulting the credential store.
const (
	AdminID       = "admin_id"
	AdminName     = "Admin"
	AdminEmail    = "admin@gmail.com"
	AdminPassword = "1234"
)

type User struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"` // Not exposed
	Role           string    `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
}

// UserView is the public projection returned from login.
type UserView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (u *User) View() UserView {
	return UserView{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// AdminView is the login projection of the administrator principal.
func AdminView() UserView {
	return UserView{ID: AdminID, Name: AdminName, Email: AdminEmail, Role: RoleAdmin}
}

// Principal is the identity recovered from a verified session token.
type Principal struct {
	ID   string
	Role string
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
