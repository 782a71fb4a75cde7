package models

import "github.com/shopspring/decimal"

// GuidePost is a row of the guide_posts table.
type GuidePost struct {
	GuidePostID   string          `db:"guide_post_id"`
	GuideID       string          `db:"guide_id"`
	Title         string          `db:"title"`
	Description   string          `db:"description"`
	Location      string          `db:"location"`
	PricePerAdult decimal.Decimal `db:"price_per_adult"`
	MaxAdults     int             `db:"max_adults"`
	ImageURLs     []string        `db:"image_urls"`
	IsActive      bool            `db:"is_active"`
	LikeCount     int             `db:"like_count"`
	AuditFields
}
