package entity

import "fmt"

type UserRole string

const (
	RoleNormalUser  UserRole = "NORMAL_USER"
	RoleStoreOwner  UserRole = "STORE_OWNER"
	RoleSystemAdmin UserRole = "SYSTEM_ADMIN"
)

// Roles lists every role in a stable order.
var Roles = []UserRole{RoleNormalUser, RoleStoreOwner, RoleSystemAdmin}

func (r UserRole) Valid() bool {
	switch r {
	case RoleNormalUser, RoleStoreOwner, RoleSystemAdmin:
		return true
	}
	return false
}

func (r UserRole) String() string { return string(r) }

// ParseRole accepts only the three known roles.
func ParseRole(s string) (UserRole, error) {
	r := UserRole(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// Authorize reports whether role is one of required. An empty required set
// admits any valid role.
func Authorize(role UserRole, required ...UserRole) bool {
	if !role.Valid() {
		return false
	}
	if len(required) == 0 {
		return true
	}
	for _, r := range required {
		if r == role {
			return true
		}
	}
	return false
}

type User struct {
	Base
	Name         string   `db:"name"`
	Email        string   `db:"email"`
	PasswordHash string   `db:"password"`
	Address      string   `db:"address"`
	Role         UserRole `db:"role"`
}

// UserSummary is a user row of the admin listing. StoreRating is set only
// for store owners that already own a store.
type UserSummary struct {
	User
	StoreRating *RatingAggregate
}
