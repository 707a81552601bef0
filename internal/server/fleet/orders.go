package fleet

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dmitrijs2005/fleetdesk/internal/common"
	"github.com/dmitrijs2005/fleetdesk/internal/dto"
)

// orderTransitions lists the statuses each status may move to.
var orderTransitions = map[string][]string{
	dto.OrderPending:  {dto.OrderAccepted, dto.OrderCancelled},
	dto.OrderAccepted: {dto.OrderPickedUp, dto.OrderCancelled},
	dto.OrderPickedUp: {dto.OrderDelivered},
}

func canMove(from, to string) bool {
	for _, s := range orderTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ListOrders returns orders newest first.
func (s *Store) ListOrders(q dto.OrderListQuery) dto.Page[dto.Order] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	search := strings.ToLower(q.Search)
	items := make([]dto.Order, 0, len(s.orders))
	for _, o := range s.orders {
		if q.Status != "" && o.Status != q.Status {
			continue
		}
		if !q.From.IsZero() && o.CreatedAt.Before(q.From) {
			continue
		}
		if !q.To.IsZero() && !o.CreatedAt.Before(q.To) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(o.Pickup.Address+" "+o.Dropoff.Address+" "+o.ID), search) {
			continue
		}
		items = append(items, *o)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID > items[j].ID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return dto.Paginate(items, q.ListQuery)
}

func (s *Store) GetOrder(id string) (dto.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	if !ok {
		return dto.Order{}, common.ErrorNotFound
	}
	return *o, nil
}

func (s *Store) UpdateOrderStatus(id, status string) (dto.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return dto.Order{}, common.ErrorNotFound
	}
	if o.Status == status {
		return *o, nil
	}
	if !canMove(o.Status, status) {
		return dto.Order{}, fmt.Errorf("%w: cannot move order from %s to %s", common.ErrorValidation, o.Status, status)
	}
	if status == dto.OrderPickedUp && o.DriverID == "" {
		return dto.Order{}, fmt.Errorf("%w: order has no driver", common.ErrorValidation)
	}
	o.Status = status
	o.UpdatedAt = s.now().UTC()
	return *o, nil
}

// AssignDriver gives a pending order to an active driver and accepts it.
func (s *Store) AssignDriver(orderID, driverID string) (dto.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[orderID]
	if !ok {
		return dto.Order{}, common.ErrorNotFound
	}
	d, ok := s.drivers[driverID]
	if !ok {
		return dto.Order{}, fmt.Errorf("%w: unknown driver %s", common.ErrorValidation, driverID)
	}
	if d.Status != dto.StatusActive {
		return dto.Order{}, fmt.Errorf("%w: driver %s is %s", common.ErrorValidation, driverID, d.Status)
	}
	if o.Status != dto.OrderPending && o.Status != dto.OrderAccepted {
		return dto.Order{}, fmt.Errorf("%w: order is %s", common.ErrorValidation, o.Status)
	}
	o.DriverID = driverID
	o.Status = dto.OrderAccepted
	o.UpdatedAt = s.now().UTC()
	return *o, nil
}
