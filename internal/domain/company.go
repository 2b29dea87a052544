package domain

import "time"

type Company struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name" validate:"required,max=50"`
	Description string    `json:"description" validate:"required"`
	Image       string    `json:"image" validate:"required"`
	Location    string    `json:"location" validate:"required"`
	Website     string    `json:"website" validate:"required"`
	Address     string    `json:"address" validate:"required"`
	District    string    `json:"district" validate:"required"`
	Province    string    `json:"province" validate:"required"`
	PostalCode  string    `json:"postal_code" validate:"required,max=5"`
	Tel         string    `json:"tel" validate:"required"`
	Region      string    `json:"region" validate:"required"`
	Salary      string    `json:"salary" validate:"required"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CompanySummary is the read-side projection joined onto booking listings.
type CompanySummary struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Province string `json:"province"`
	Tel      string `json:"tel"`
}
