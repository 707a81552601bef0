package dto

import (
	"net/url"
	"time"
)

type Vehicle struct {
	Make        string `json:"make,omitempty"`
	Model       string `json:"model,omitempty"`
	Color       string `json:"color,omitempty"`
	PlateNumber string `json:"plateNumber,omitempty"`
	Type        string `json:"type,omitempty"`
	Year        int    `json:"year,omitempty"`
	Verified    bool   `json:"verified,omitempty"`
}

// User is a platform account as seen by administrators.
type User struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone,omitempty"`
	Role          string    `json:"role"`
	Status        string    `json:"status,omitempty"`
	Rating        float64   `json:"rating,omitempty"`
	WalletBalance float64   `json:"walletBalance,omitempty"`
	Vehicle       *Vehicle  `json:"vehicle,omitempty"`
	CreatedAt     time.Time `json:"createdAt,omitempty"`
}

// Account statuses.
const (
	StatusActive    = "ACTIVE"
	StatusSuspended = "SUSPENDED"
	StatusPending   = "PENDING"
	StatusBanned    = "BANNED"
)

type UserListQuery struct {
	ListQuery
	Role string `json:"role,omitempty" validate:"omitempty,oneof=CUSTOMER DRIVER ADMIN DISPATCHER"`
}

func (q UserListQuery) Values() url.Values {
	v := q.ListQuery.Values()
	if q.Role != "" {
		v.Set("role", q.Role)
	}
	return v
}

type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=CUSTOMER DRIVER ADMIN DISPATCHER"`
}

type SetStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=ACTIVE SUSPENDED BANNED"`
	Reason string `json:"reason,omitempty" validate:"max=500"`
}
