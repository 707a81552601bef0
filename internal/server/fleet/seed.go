package fleet

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/fleetdesk/internal/dto"
)

// Seed fills the store with fixtures linked to the given account ids.
// Orders are spread over the last 45 days so every report period has data.
func (s *Store) Seed(driverUserID, customerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	s.pricing.UpdatedAt = now

	s.drivers["d-1"] = &dto.Driver{ID: "d-1", UserID: driverUserID, Name: "Dan Driver", Phone: "+15550100", Status: dto.StatusActive,
		Online: true, Rating: 4.8, TotalTrips: 312, ApprovedAt: now.AddDate(0, -2, 0),
		Vehicle: &dto.Vehicle{Make: "Toyota", Model: "Prius", Color: "white", PlateNumber: "FD-1024", Type: "car", Year: 2021, Verified: true}}
	s.drivers["d-2"] = &dto.Driver{ID: "d-2", UserID: "u-pending-driver", Name: "Pat Pending", Status: dto.StatusPending,
		Vehicle: &dto.Vehicle{Make: "Honda", Model: "Fit", Color: "blue", PlateNumber: "FD-2048", Type: "car", Year: 2019}}
	s.drivers["d-3"] = &dto.Driver{ID: "d-3", UserID: "u-suspended-driver", Name: "Sam Suspended", Status: dto.StatusSuspended,
		Rating: 3.1, TotalTrips: 40, SuspendedBy: "u-admin"}

	places := []dto.Location{
		{Address: "1 Market St", Lat: 37.7936, Lng: -122.3950},
		{Address: "500 Castro St", Lat: 37.7609, Lng: -122.4350},
		{Address: "SFO Terminal 2", Lat: 37.6168, Lng: -122.3839},
		{Address: "Golden Gate Park", Lat: 37.7694, Lng: -122.4862},
	}
	statuses := []string{dto.OrderDelivered, dto.OrderDelivered, dto.OrderDelivered, dto.OrderCancelled, dto.OrderDelivered}
	for i := 0; i < 40; i++ {
		created := now.Add(-time.Duration(i) * 27 * time.Hour)
		distance := float64(3 + i%9)
		o := &dto.Order{
			ID:         fmt.Sprintf("o-%d", 1001+i),
			CustomerID: customerID,
			DriverID:   "d-1",
			Status:     statuses[i%len(statuses)],
			Pickup:     places[i%len(places)],
			Dropoff:    places[(i+1)%len(places)],
			DistanceKm: distance,
			Fare:       round2(s.pricing.Estimate(distance, distance*3)),
			CreatedAt:  created,
			UpdatedAt:  created.Add(30 * time.Minute),
		}
		s.orders[o.ID] = o
	}
	// Live orders for the dispatch screen.
	s.orders["o-2001"] = &dto.Order{ID: "o-2001", CustomerID: customerID, Status: dto.OrderPending, Pickup: places[0], Dropoff: places[2],
		DistanceKm: 21, Fare: round2(s.pricing.Estimate(21, 35)), CreatedAt: now, UpdatedAt: now}
	s.orders["o-2002"] = &dto.Order{ID: "o-2002", CustomerID: customerID, DriverID: "d-1", Status: dto.OrderAccepted, Pickup: places[1], Dropoff: places[3],
		DistanceKm: 5, Fare: round2(s.pricing.Estimate(5, 12)), CreatedAt: now, UpdatedAt: now}

	s.promotions["p-1"] = &dto.Promotion{ID: "p-1", Code: "WELCOME10", Description: "10% off the first ride", DiscountType: "PERCENT",
		Value: 10, MaxUses: 1000, Used: 87, StartsAt: now.AddDate(0, -1, 0), EndsAt: now.AddDate(0, 2, 0), Active: true}
	s.promotions["p-2"] = &dto.Promotion{ID: "p-2", Code: "AIRPORT5", Description: "5 off airport trips", DiscountType: "FIXED",
		Value: 5, Used: 12, StartsAt: now.AddDate(0, -3, 0), EndsAt: now.AddDate(0, -1, 0)}

	s.tickets["t-1"] = &dto.Ticket{ID: "t-1", UserID: customerID, Subject: "Driver arrived late", Status: "OPEN", Priority: "HIGH", CreatedAt: now.Add(-3 * time.Hour),
		Messages: []dto.TicketMessage{{AuthorID: customerID, Body: "My driver was 20 minutes late.", CreatedAt: now.Add(-3 * time.Hour)}}}
	s.tickets["t-2"] = &dto.Ticket{ID: "t-2", UserID: driverUserID, Subject: "Payout missing", Status: "OPEN", Priority: "MEDIUM", CreatedAt: now.Add(-26 * time.Hour),
		Messages: []dto.TicketMessage{{AuthorID: driverUserID, Body: "Last week's payout has not arrived.", CreatedAt: now.Add(-26 * time.Hour)}}}
	s.tickets["t-3"] = &dto.Ticket{ID: "t-3", UserID: customerID, Subject: "Lost umbrella", Status: "CLOSED", Priority: "LOW", CreatedAt: now.AddDate(0, 0, -9)}
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
