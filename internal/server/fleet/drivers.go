package fleet

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dmitrijs2005/fleetdesk/internal/common"
	"github.com/dmitrijs2005/fleetdesk/internal/dto"
)

func (s *Store) ListDrivers(q dto.DriverListQuery) dto.Page[dto.Driver] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	search := strings.ToLower(q.Search)
	items := make([]dto.Driver, 0, len(s.drivers))
	for _, d := range s.drivers {
		if q.Status != "" && d.Status != q.Status {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(d.Name), search) {
			continue
		}
		items = append(items, *d)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return dto.Paginate(items, q.ListQuery)
}

func (s *Store) GetDriver(id string) (dto.Driver, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.drivers[id]
	if !ok {
		return dto.Driver{}, common.ErrorNotFound
	}
	return *d, nil
}

func (s *Store) ApproveDriver(id string) (dto.Driver, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drivers[id]
	if !ok {
		return dto.Driver{}, common.ErrorNotFound
	}
	if d.Status == dto.StatusActive {
		return *d, nil
	}
	d.Status = dto.StatusActive
	d.ApprovedAt = s.now().UTC()
	d.SuspendedBy = ""
	if d.Vehicle != nil {
		d.Vehicle.Verified = true
	}
	return *d, nil
}

// SuspendDriver takes a driver off the road; by is the acting account.
func (s *Store) SuspendDriver(id, by, reason string) (dto.Driver, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drivers[id]
	if !ok {
		return dto.Driver{}, common.ErrorNotFound
	}
	if strings.TrimSpace(reason) == "" {
		return dto.Driver{}, fmt.Errorf("%w: reason is required", common.ErrorValidation)
	}
	d.Status = dto.StatusSuspended
	d.Online = false
	d.SuspendedBy = by
	return *d, nil
}
