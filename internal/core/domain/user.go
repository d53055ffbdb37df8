package domain

import "time"

// Canonical role names. A user may hold any combination of them.
const (
	RoleAdmin  = "admin"
	RoleLender = "lender"
	RoleUser   = "user"
)

// Role is a named authority granted to users.
type Role struct {
	ID   int64  `json:"roleid" bson:"_id"`
	Name string `json:"rolename" bson:"rolename"` // stored lowercased, unique
}

// UserRole is the join record tying a user to one of its roles.
type UserRole struct {
	UserID int64 `json:"userid" bson:"userid"`
	RoleID int64 `json:"roleid" bson:"roleid"`
}

// User models an authenticated actor in the marketplace.
type User struct {
	ID           int64      `json:"userid" bson:"_id"`
	Username     string     `json:"username" bson:"username"` // stored lowercased, unique
	PasswordHash string     `json:"-" bson:"passwordhash"`
	PrimaryEmail string     `json:"primaryemail,omitempty" bson:"primaryemail,omitempty"`
	Roles        []UserRole `json:"roles" bson:"roles"`
	CreatedAt    time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" bson:"updated_at"`
}

// HasRole reports whether the user holds the role with the given id.
func (u *User) HasRole(roleID int64) bool {
	for _, r := range u.Roles {
		if r.RoleID == roleID {
			return true
		}
	}
	return false
}
