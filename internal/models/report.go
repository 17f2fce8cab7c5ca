package models

import "time"

type Report struct {
	ID         int64     `json:"id" db:"id"`
	Type       string    `json:"type" db:"type"`
	Date       time.Time `json:"date" db:"date"`
	EmployeeID string    `json:"employee_id" db:"employee_id"`
	ObjectKey  string    `json:"object_key,omitempty" db:"object_key"`
}

// AuditLog action d'un employé (ScyllaDB)
type AuditLog struct {
	UserID     string    `json:"user_id"`
	UserEmail  string    `json:"user_email"`
	Action     string    `json:"action"`
	Resource   string    `json:"resource"`
	ResourceID string    `json:"resource_id"`
	NewValue   string    `json:"new_value,omitempty"`
	IPAddress  string    `json:"ip_address"`
	Success    bool      `json:"success"`
	Timestamp  time.Time `json:"timestamp"`
}
