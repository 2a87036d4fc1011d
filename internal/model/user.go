package model

import "time"

// Role is the access level of a user. Compared by value everywhere;
// never resolved through a lookup table.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleUser   Role = "user"
	RoleDealer Role = "dealer"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleDealer:
		return true
	}
	return false
}

// User represents a registered account: an admin, a dealer, or a regular user.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:50;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         Role      `json:"role" gorm:"type:varchar(20);not null;default:'user';index"`
	IsBlocked    bool      `json:"is_blocked" gorm:"default:false"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Cars      []Car          `json:"cars,omitempty" gorm:"foreignKey:SellerID"`
	Favorites []UserFavorite `json:"-" gorm:"foreignKey:UserID"`
}
