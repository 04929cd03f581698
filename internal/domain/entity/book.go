package entity

import "time"

// Book is a listing owned by exactly one seller.
type Book struct {
	ID            int64
	Title         string
	Author        string
	PublishedDate time.Time
	Price         float64
	CoverURL      string
	SellerID      int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
