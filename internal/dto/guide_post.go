package dto

import (
	"time"

	"github.com/borport/borport_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateGuidePostRequest is the body of a new listing.
type CreateGuidePostRequest struct {
	Title         string          `json:"title" binding:"required,min=3,max=200"`
	Description   string          `json:"description" binding:"max=5000"`
	Location      string          `json:"location" binding:"required,max=200"`
	PricePerAdult decimal.Decimal `json:"pricePerAdult"`
	MaxAdults     int             `json:"maxAdults" binding:"required,min=1,max=100"`
	ImageURLs     []string        `json:"imageUrls" binding:"omitempty,max=10,dive,url"`
}

// UpdateGuidePostRequest defines the editable fields of a listing.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateGuidePostRequest struct {
	Title         *string          `json:"title" binding:"omitempty,min=3,max=200"`
	Description   *string          `json:"description" binding:"omitempty,max=5000"`
	Location      *string          `json:"location" binding:"omitempty,max=200"`
	PricePerAdult *decimal.Decimal `json:"pricePerAdult"`
	MaxAdults     *int             `json:"maxAdults" binding:"omitempty,min=1,max=100"`
	ImageURLs     []string         `json:"imageUrls" binding:"omitempty,max=10,dive,url"`
	IsActive      *bool            `json:"isActive"`
}

// ListGuidePostsParams defines query parameters for browsing listings.
type ListGuidePostsParams struct {
	Q        string `form:"q" binding:"max=100"`
	Location string `form:"location" binding:"max=200"`
	Limit    int    `form:"limit,default=20" binding:"min=0,max=100"`
	Offset   int    `form:"offset,default=0" binding:"min=0"`
}

type GuidePostResponse struct {
	GuidePostID   string          `json:"guidePostId"`
	GuideID       string          `json:"guideId"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Location      string          `json:"location"`
	PricePerAdult decimal.Decimal `json:"pricePerAdult"`
	MaxAdults     int             `json:"maxAdults"`
	ImageURLs     []string        `json:"imageUrls"`
	IsActive      bool            `json:"isActive"`
	LikeCount     int             `json:"likeCount"`
	CreatedAt     time.Time       `json:"createdAt"`
}

func ToGuidePostResponse(p *domain.GuidePost) GuidePostResponse {
	images := p.ImageURLs
	if images == nil {
		images = []string{}
	}
	return GuidePostResponse{
		GuidePostID:   p.GuidePostID,
		GuideID:       p.GuideID,
		Title:         p.Title,
		Description:   p.Description,
		Location:      p.Location,
		PricePerAdult: p.PricePerAdult,
		MaxAdults:     p.MaxAdults,
		ImageURLs:     images,
		IsActive:      p.IsActive,
		LikeCount:     p.LikeCount,
		CreatedAt:     p.CreatedAt,
	}
}

func ToGuidePostListResponse(posts []domain.GuidePost) []GuidePostResponse {
	out := make([]GuidePostResponse, len(posts))
	for i := range posts {
		out[i] = ToGuidePostResponse(&posts[i])
	}
	return out
}

// LikeResponse is returned by like and unlike.
type LikeResponse struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"likeCount"`
}
