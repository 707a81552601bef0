package dto

import (
	"net/url"
	"time"
)

type Driver struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone,omitempty"`
	Status      string    `json:"status"`
	Online      bool      `json:"online"`
	Rating      float64   `json:"rating,omitempty"`
	TotalTrips  int       `json:"totalTrips"`
	Vehicle     *Vehicle  `json:"vehicle,omitempty"`
	ApprovedAt  time.Time `json:"approvedAt,omitempty"`
	SuspendedBy string    `json:"suspendedBy,omitempty"`
}

type DriverListQuery struct {
	ListQuery
	Status string `json:"status,omitempty" validate:"omitempty,oneof=PENDING ACTIVE SUSPENDED"`
}

func (q DriverListQuery) Values() url.Values {
	v := q.ListQuery.Values()
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	return v
}

type SuspendDriverRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}
