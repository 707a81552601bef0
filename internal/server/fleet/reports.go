package fleet

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/fleetdesk/internal/common"
	"github.com/dmitrijs2005/fleetdesk/internal/dto"
)

type bucket struct {
	label string
	start time.Time
	end   time.Time
}

// buckets splits period, ending now, into chart buckets:
// day → 24 hours, week → 7 days, month → 30 days, year → 12 months.
func buckets(period string, now time.Time) ([]bucket, error) {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var out []bucket
	switch period {
	case dto.PeriodDay:
		for h := 0; h < 24; h++ {
			start := day.Add(time.Duration(h) * time.Hour)
			out = append(out, bucket{label: fmt.Sprintf("%02d:00", h), start: start, end: start.Add(time.Hour)})
		}
	case dto.PeriodWeek, dto.PeriodMonth:
		n, layout := 7, "Mon"
		if period == dto.PeriodMonth {
			n, layout = 30, "Jan 02"
		}
		for i := n - 1; i >= 0; i-- {
			start := day.AddDate(0, 0, -i)
			out = append(out, bucket{label: start.Format(layout), start: start, end: start.AddDate(0, 0, 1)})
		}
	case dto.PeriodYear:
		month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		for i := 11; i >= 0; i-- {
			start := month.AddDate(0, -i, 0)
			out = append(out, bucket{label: start.Format("Jan"), start: start, end: start.AddDate(0, 1, 0)})
		}
	default:
		return nil, fmt.Errorf("%w: unknown period %q", common.ErrorValidation, period)
	}
	return out, nil
}

func (s *Store) series(period string, value func(o *dto.Order) float64) (dto.Series, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bs, err := buckets(period, s.now().UTC())
	if err != nil {
		return dto.Series{}, err
	}

	out := dto.Series{Period: period, Points: make([]dto.SeriesPoint, len(bs))}
	for i, b := range bs {
		out.Points[i].Label = b.label
	}
	for _, o := range s.orders {
		v := value(o)
		if v == 0 {
			continue
		}
		for i, b := range bs {
			if !o.CreatedAt.Before(b.start) && o.CreatedAt.Before(b.end) {
				out.Points[i].Value += v
				out.Total += v
				break
			}
		}
	}
	for i := range out.Points {
		out.Points[i].Value = round2(out.Points[i].Value)
	}
	out.Total = round2(out.Total)
	return out, nil
}

// Revenue sums the fares of delivered orders per bucket.
func (s *Store) Revenue(period string) (dto.Series, error) {
	return s.series(period, func(o *dto.Order) float64 {
		if o.Status != dto.OrderDelivered {
			return 0
		}
		return o.Fare
	})
}

// Orders counts orders per bucket regardless of status.
func (s *Store) Orders(period string) (dto.Series, error) {
	return s.series(period, func(*dto.Order) float64 { return 1 })
}

// Stats fills the fleet counters of the dashboard; the caller adds the
// account total.
func (s *Store) Stats() dto.DashboardStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var st dto.DashboardStats
	for _, d := range s.drivers {
		switch d.Status {
		case dto.StatusActive:
			st.ActiveDrivers++
		case dto.StatusPending:
			st.PendingDrivers++
		}
	}
	for _, o := range s.orders {
		if o.CreatedAt.Before(today) {
			continue
		}
		st.OrdersToday++
		if o.Status == dto.OrderDelivered {
			st.RevenueToday += o.Fare
		}
	}
	st.RevenueToday = round2(st.RevenueToday)
	for _, t := range s.tickets {
		if t.Status == "OPEN" {
			st.OpenTickets++
		}
	}
	return st
}
