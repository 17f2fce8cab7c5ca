package models

import "time"

const (
	RoleCustomer = "Customer"
	RoleEmployee = "Employee"
)

type User struct {
	ID             string    `json:"user_id" db:"id"`
	Email          string    `json:"email" db:"email"`
	FullName       string    `json:"full_name" db:"full_name"`
	PasswordHash   string    `json:"-" db:"password_hash"`
	Role           string    `json:"role" db:"role"`
	EmailConfirmed bool      `json:"email_confirmed" db:"email_confirmed"`
	Provider       string    `json:"provider,omitempty" db:"provider"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

func (u User) IsEmployee() bool {
	return u.Role == RoleEmployee
}

// CustomerActivity client et date de son dernier achat
type CustomerActivity struct {
	User
	LastPurchase time.Time `db:"last_purchase"`
}
