package domain

import "time"

// PersonType distinguishes individuals (PF) from companies (PJ).
type PersonType string

const (
	PersonPF PersonType = "PF"
	PersonPJ PersonType = "PJ"
)

// User represents a user in the application
// Firebase UID is the primary identifier
type User struct {
	FirebaseUID string     `json:"firebase_uid" db:"firebase_uid"`
	Email       string     `json:"email" db:"email"`
	Name        string     `json:"name" db:"name"`
	PersonType  PersonType `json:"person_type" db:"person_type"`
	Document    string     `json:"document" db:"document"`
	WhatsApp    string     `json:"whatsapp" db:"whatsapp"`
	UF          string     `json:"uf" db:"uf"`
	City        string     `json:"city" db:"city"`
	IsAdmin     bool       `json:"is_admin" db:"is_admin"`
	IsApproved  bool       `json:"is_approved" db:"is_approved"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty" db:"last_login_at"`
}

// SyncUserRequest carries the profile submitted after Firebase sign-in.
type SyncUserRequest struct {
	FirebaseUID string
	Email       string
	// EmailVerified is true only when Email came from a verified token claim.
	EmailVerified bool
	Name          string
	PersonType    string
	Document      string
	WhatsApp      string
	UF            string
	City          string
}
