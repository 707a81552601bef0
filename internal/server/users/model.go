package users

import (
	"time"

	"github.com/dmitrijs2005/fleetdesk/internal/dto"
)

type User struct {
	ID            string
	Name          string
	Email         string
	Phone         string
	Avatar        string
	Role          string
	Status        string
	PasswordHash  string
	Rating        float64
	WalletBalance float64
	Vehicle       *dto.Vehicle
	CreatedAt     time.Time
}

// DTO is the account as the API serves it; the password hash never leaves
// the server.
func (u *User) DTO() dto.User {
	out := dto.User{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Phone:         u.Phone,
		Role:          u.Role,
		Status:        u.Status,
		Rating:        u.Rating,
		WalletBalance: u.WalletBalance,
		CreatedAt:     u.CreatedAt,
	}
	if u.Vehicle != nil {
		v := *u.Vehicle
		out.Vehicle = &v
	}
	return out
}
