package fleet

import (
	"sync"
	"time"

	"github.com/dmitrijs2005/fleetdesk/internal/dto"
)

// Store is safe for concurrent use. Records are returned by value.
type Store struct {
	mu  sync.RWMutex
	now func() time.Time

	drivers    map[string]*dto.Driver
	orders     map[string]*dto.Order
	pricing    dto.Pricing
	promotions map[string]*dto.Promotion
	tickets    map[string]*dto.Ticket
	uploads    map[string][]byte
}

type Option func(*Store)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func New(opts ...Option) *Store {
	s := &Store{
		now:        time.Now,
		drivers:    map[string]*dto.Driver{},
		orders:     map[string]*dto.Order{},
		promotions: map[string]*dto.Promotion{},
		tickets:    map[string]*dto.Ticket{},
		uploads:    map[string][]byte{},
		pricing: dto.Pricing{
			BaseFare:        2.5,
			PerKm:           1.2,
			PerMinute:       0.25,
			SurgeMultiplier: 1,
			MinimumFare:     5,
			Currency:        "USD",
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
