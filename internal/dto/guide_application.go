package dto

import (
	"time"

	"github.com/borport/borport_backend/internal/core/domain"
)

// CreateGuideApplicationRequest is the guide form.
type CreateGuideApplicationRequest struct {
	FullName        string   `json:"fullName" binding:"required,min=2,max=100"`
	Phone           string   `json:"phone" binding:"required,min=6,max=30"`
	Bio             string   `json:"bio" binding:"required,max=2000"`
	Languages       []string `json:"languages" binding:"required,min=1,max=10,dive,min=2,max=30"`
	ExperienceYears int      `json:"experienceYears" binding:"min=0,max=80"`
	IDDocumentURL   string   `json:"idDocumentUrl" binding:"omitempty,url"`
}

// ReviewApplicationRequest is the admin decision on an application.
type ReviewApplicationRequest struct {
	Status string `json:"status" binding:"required,oneof=APPROVED REJECTED"`
}

// ListApplicationsParams filters the admin listing.
type ListApplicationsParams struct {
	Status string `form:"status" binding:"omitempty,oneof=PENDING APPROVED REJECTED"`
	Limit  int    `form:"limit,default=50" binding:"min=0,max=100"`
	Offset int    `form:"offset,default=0" binding:"min=0"`
}

type GuideApplicationResponse struct {
	ApplicationID   string     `json:"applicationId"`
	UserID          string     `json:"userId"`
	FullName        string     `json:"fullName"`
	Phone           string     `json:"phone"`
	Bio             string     `json:"bio"`
	Languages       []string   `json:"languages"`
	ExperienceYears int        `json:"experienceYears"`
	IDDocumentURL   string     `json:"idDocumentUrl,omitempty"`
	Status          string     `json:"status"`
	ReviewedAt      *time.Time `json:"reviewedAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}

func ToGuideApplicationResponse(a *domain.GuideApplication) GuideApplicationResponse {
	langs := a.Languages
	if langs == nil {
		langs = []string{}
	}
	return GuideApplicationResponse{
		ApplicationID:   a.ApplicationID,
		UserID:          a.UserID,
		FullName:        a.FullName,
		Phone:           a.Phone,
		Bio:             a.Bio,
		Languages:       langs,
		ExperienceYears: a.ExperienceYears,
		IDDocumentURL:   a.IDDocumentURL,
		Status:          string(a.Status),
		ReviewedAt:      a.ReviewedAt,
		CreatedAt:       a.CreatedAt,
	}
}

func ToGuideApplicationListResponse(apps []domain.GuideApplication) []GuideApplicationResponse {
	out := make([]GuideApplicationResponse, len(apps))
	for i := range apps {
		out[i] = ToGuideApplicationResponse(&apps[i])
	}
	return out
}
