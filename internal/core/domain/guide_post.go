package domain

import "github.com/shopspring/decimal"

// GuidePost is a bookable tour listing published by a guide.
type GuidePost struct {
	GuidePostID   string          `json:"guidePostID"`
	GuideID       string          `json:"guideID"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Location      string          `json:"location"`
	PricePerAdult decimal.Decimal `json:"pricePerAdult"`
	MaxAdults     int             `json:"maxAdults"`
	ImageURLs     []string        `json:"imageURLs"`
	IsActive      bool            `json:"isActive"`
	LikeCount     int             `json:"likeCount"`
	AuditFields
}

// GuidePostFilter narrows public listings.
type GuidePostFilter struct {
	Query    string
	Location string
	GuideID  string
	Active   *bool
	Limit    int
	Offset   int
}
