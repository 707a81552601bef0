package fleet

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dmitrijs2005/fleetdesk/internal/common"
	"github.com/dmitrijs2005/fleetdesk/internal/dto"
	"github.com/google/uuid"
)

func (s *Store) Pricing() dto.Pricing {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pricing
}

func (s *Store) UpdatePricing(p dto.Pricing) dto.Pricing {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.UpdatedAt = s.now().UTC()
	s.pricing = p
	return p
}

func (s *Store) ListPromotions(q dto.ListQuery) dto.Page[dto.Promotion] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	search := strings.ToUpper(q.Search)
	items := make([]dto.Promotion, 0, len(s.promotions))
	for _, p := range s.promotions {
		if search != "" && !strings.Contains(p.Code, search) {
			continue
		}
		items = append(items, *p)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Code < items[j].Code })
	return dto.Paginate(items, q)
}

func (s *Store) codeTaken(code, exceptID string) bool {
	for id, p := range s.promotions {
		if id != exceptID && strings.EqualFold(p.Code, code) {
			return true
		}
	}
	return false
}

func (s *Store) CreatePromotion(req dto.PromotionRequest) (dto.Promotion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.codeTaken(req.Code, "") {
		return dto.Promotion{}, fmt.Errorf("%w: promotion code %s", common.ErrorAlreadyExists, req.Code)
	}
	p := promotionFrom(uuid.NewString(), req)
	s.promotions[p.ID] = &p
	return p, nil
}

func (s *Store) UpdatePromotion(id string, req dto.PromotionRequest) (dto.Promotion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.promotions[id]
	if !ok {
		return dto.Promotion{}, common.ErrorNotFound
	}
	if s.codeTaken(req.Code, id) {
		return dto.Promotion{}, fmt.Errorf("%w: promotion code %s", common.ErrorAlreadyExists, req.Code)
	}
	p := promotionFrom(id, req)
	p.Used = old.Used
	s.promotions[id] = &p
	return p, nil
}

func (s *Store) DeletePromotion(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.promotions[id]; !ok {
		return common.ErrorNotFound
	}
	delete(s.promotions, id)
	return nil
}

func promotionFrom(id string, req dto.PromotionRequest) dto.Promotion {
	return dto.Promotion{
		ID:           id,
		Code:         strings.ToUpper(req.Code),
		Description:  req.Description,
		DiscountType: req.DiscountType,
		Value:        req.Value,
		MaxUses:      req.MaxUses,
		StartsAt:     req.StartsAt,
		EndsAt:       req.EndsAt,
		Active:       req.Active,
	}
}

// ListTickets returns tickets newest first.
func (s *Store) ListTickets(q dto.TicketListQuery) dto.Page[dto.Ticket] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	search := strings.ToLower(q.Search)
	items := make([]dto.Ticket, 0, len(s.tickets))
	for _, t := range s.tickets {
		if q.Status != "" && t.Status != q.Status {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(t.Subject), search) {
			continue
		}
		items = append(items, cloneTicket(t))
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	return dto.Paginate(items, q.ListQuery)
}

func (s *Store) GetTicket(id string) (dto.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tickets[id]
	if !ok {
		return dto.Ticket{}, common.ErrorNotFound
	}
	return cloneTicket(t), nil
}

func (s *Store) ReplyTicket(id, authorID, body string) (dto.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tickets[id]
	if !ok {
		return dto.Ticket{}, common.ErrorNotFound
	}
	if t.Status == "CLOSED" {
		return dto.Ticket{}, fmt.Errorf("%w: ticket is closed", common.ErrorValidation)
	}
	t.Messages = append(t.Messages, dto.TicketMessage{AuthorID: authorID, Body: body, CreatedAt: s.now().UTC()})
	return cloneTicket(t), nil
}

func (s *Store) CloseTicket(id string) (dto.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tickets[id]
	if !ok {
		return dto.Ticket{}, common.ErrorNotFound
	}
	t.Status = "CLOSED"
	return cloneTicket(t), nil
}

func cloneTicket(t *dto.Ticket) dto.Ticket {
	out := *t
	out.Messages = append([]dto.TicketMessage(nil), t.Messages...)
	return out
}

// SaveUpload keeps an uploaded file and returns its key and size.
func (s *Store) SaveUpload(folder, filename string, data []byte) dto.UploadResult {
	key := uuid.NewString() + "-" + filename
	if folder != "" {
		key = folder + "/" + key
	}
	s.mu.Lock()
	s.uploads[key] = data
	s.mu.Unlock()
	return dto.UploadResult{Key: key, Size: int64(len(data))}
}

func (s *Store) Upload(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.uploads[key]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return data, nil
}
