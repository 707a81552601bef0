package dto

import (
	"net/url"
	"time"
)

type TicketMessage struct {
	AuthorID  string    `json:"authorId"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

type Ticket struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	Subject   string          `json:"subject"`
	Status    string          `json:"status"`
	Priority  string          `json:"priority"`
	Messages  []TicketMessage `json:"messages,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

type TicketListQuery struct {
	ListQuery
	Status string `json:"status,omitempty" validate:"omitempty,oneof=OPEN CLOSED"`
}

func (q TicketListQuery) Values() url.Values {
	v := q.ListQuery.Values()
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	return v
}

type ReplyTicketRequest struct {
	Body string `json:"body" validate:"required,max=4000"`
}
