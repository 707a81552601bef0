package dto

import "time"

type Promotion struct {
	ID           string    `json:"id"`
	Code         string    `json:"code"`
	Description  string    `json:"description,omitempty"`
	DiscountType string    `json:"discountType"`
	Value        float64   `json:"value"`
	MaxUses      int       `json:"maxUses,omitempty"`
	Used         int       `json:"used"`
	StartsAt     time.Time `json:"startsAt"`
	EndsAt       time.Time `json:"endsAt"`
	Active       bool      `json:"active"`
}

type PromotionRequest struct {
	Code         string    `json:"code" validate:"required,alphanum,min=3,max=32"`
	Description  string    `json:"description,omitempty" validate:"max=280"`
	DiscountType string    `json:"discountType" validate:"required,oneof=PERCENT FIXED"`
	Value        float64   `json:"value" validate:"gt=0"`
	MaxUses      int       `json:"maxUses,omitempty" validate:"gte=0"`
	StartsAt     time.Time `json:"startsAt" validate:"required"`
	EndsAt       time.Time `json:"endsAt" validate:"required,gtfield=StartsAt"`
	Active       bool      `json:"active"`
}
