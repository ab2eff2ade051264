package domain

import (
	"time"
)

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Benefits    []string  `json:"benefits"`
	Usage       string    `json:"usage"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UpsertProductRequest carries the admin form fields for create and
// update. Benefits arrive newline-separated from the back-office form.
type UpsertProductRequest struct {
	Name        string  `form:"name" binding:"required"`
	Price       float64 `form:"price" binding:"gte=0"`
	Description string  `form:"description"`
	Category    string  `form:"category"`
	Benefits    string  `form:"benefits"`
	Usage       string  `form:"usage"`
	Image       string  `form:"-"` // reference path, set after upload
}
