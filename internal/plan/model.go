package plan

import "time"

type Plan struct {
	ID             int       `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	DurationMonths int       `db:"duration_months" json:"duration_months"`
	PriceCents     int64     `db:"price_cents" json:"price_cents"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

type CreatePlanRequest struct {
	Name           string `json:"name" binding:"required"`
	DurationMonths int    `json:"duration_months" binding:"required,min=1"`
	PriceCents     int64  `json:"price_cents" binding:"required,min=1"`
}

type UpdatePlanRequest struct {
	Name           string `json:"name" binding:"required"`
	DurationMonths int    `json:"duration_months" binding:"required,min=1"`
	PriceCents     int64  `json:"price_cents" binding:"required,min=1"`
}
