package mapping

import (
	"github.com/borport/borport_backend/internal/core/domain"
	"github.com/borport/borport_backend/internal/models"
)

// ToModelGuidePost converts a domain GuidePost to a model GuidePost
func ToModelGuidePost(d domain.GuidePost) models.GuidePost {
	images := d.ImageURLs
	if images == nil {
		images = []string{}
	}
	return models.GuidePost{
		GuidePostID:   d.GuidePostID,
		GuideID:       d.GuideID,
		Title:         d.Title,
		Description:   d.Description,
		Location:      d.Location,
		PricePerAdult: d.PricePerAdult,
		MaxAdults:     d.MaxAdults,
		ImageURLs:     images,
		IsActive:      d.IsActive,
		LikeCount:     d.LikeCount,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainGuidePost converts a model GuidePost to a domain GuidePost
func ToDomainGuidePost(m models.GuidePost) domain.GuidePost {
	return domain.GuidePost{
		GuidePostID:   m.GuidePostID,
		GuideID:       m.GuideID,
		Title:         m.Title,
		Description:   m.Description,
		Location:      m.Location,
		PricePerAdult: m.PricePerAdult,
		MaxAdults:     m.MaxAdults,
		ImageURLs:     m.ImageURLs,
		IsActive:      m.IsActive,
		LikeCount:     m.LikeCount,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainGuidePostSlice converts a slice of model GuidePosts to a slice of domain GuidePosts
func ToDomainGuidePostSlice(ms []models.GuidePost) []domain.GuidePost {
	ds := make([]domain.GuidePost, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainGuidePost(m)
	}
	return ds
}
