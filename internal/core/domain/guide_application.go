package domain

import "time"

// ApplicationStatus is the review state of a guide application.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "PENDING"
	ApplicationApproved ApplicationStatus = "APPROVED"
	ApplicationRejected ApplicationStatus = "REJECTED"
)

// GuideApplication is a user's request to become a guide.
// Approval promotes the owner to RoleGuide; a later rejection does not demote.
type GuideApplication struct {
	ApplicationID   string            `json:"applicationID"`
	UserID          string            `json:"userID"`
	FullName        string            `json:"fullName"`
	Phone           string            `json:"phone"`
	Bio             string            `json:"bio"`
	Languages       []string          `json:"languages"`
	ExperienceYears int               `json:"experienceYears"`
	IDDocumentURL   string            `json:"idDocumentURL"`
	Status          ApplicationStatus `json:"status"`
	ReviewedBy      *string           `json:"reviewedBy,omitempty"`
	ReviewedAt      *time.Time        `json:"reviewedAt,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
}
