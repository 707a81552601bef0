package dto

import (
	"net/url"
	"time"
)

// Order statuses.
const (
	OrderPending   = "PENDING"
	OrderAccepted  = "ACCEPTED"
	OrderPickedUp  = "PICKED_UP"
	OrderDelivered = "DELIVERED"
	OrderCancelled = "CANCELLED"
)

type Location struct {
	Address string  `json:"address" validate:"required"`
	Lat     float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng     float64 `json:"lng" validate:"gte=-180,lte=180"`
}

type Order struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customerId"`
	DriverID   string    `json:"driverId,omitempty"`
	Status     string    `json:"status"`
	Pickup     Location  `json:"pickup"`
	Dropoff    Location  `json:"dropoff"`
	DistanceKm float64   `json:"distanceKm"`
	Fare       float64   `json:"fare"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type OrderListQuery struct {
	ListQuery
	Status string    `json:"status,omitempty" validate:"omitempty,oneof=PENDING ACCEPTED PICKED_UP DELIVERED CANCELLED"`
	From   time.Time `json:"from,omitempty"`
	To     time.Time `json:"to,omitempty" validate:"omitempty,gtfield=From"`
}

func (q OrderListQuery) Values() url.Values {
	v := q.ListQuery.Values()
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	if !q.From.IsZero() {
		v.Set("from", q.From.UTC().Format(time.RFC3339))
	}
	if !q.To.IsZero() {
		v.Set("to", q.To.UTC().Format(time.RFC3339))
	}
	return v
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING ACCEPTED PICKED_UP DELIVERED CANCELLED"`
	Note   string `json:"note,omitempty" validate:"max=500"`
}

type AssignDriverRequest struct {
	DriverID string `json:"driverId" validate:"required"`
}
