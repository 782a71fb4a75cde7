package dto

import "github.com/borport/borport_backend/internal/core/domain"

// AvailabilityQuery bounds an availability lookup. Both ends are inclusive YYYY-MM-DD days.
type AvailabilityQuery struct {
	From string `form:"from" binding:"omitempty,ymd"`
	To   string `form:"to" binding:"omitempty,ymd"`
}

// SetAvailabilityRequest opens or closes a set of days.
type SetAvailabilityRequest struct {
	Dates       []string `json:"dates" binding:"required,min=1,max=366,dive,ymd"`
	IsAvailable *bool    `json:"isAvailable" binding:"required"`
}

type AvailabilityResponse struct {
	Date        string  `json:"date"`
	IsAvailable bool    `json:"isAvailable"`
	BookingID   *string `json:"bookingId,omitempty"`
}

func ToAvailabilityListResponse(rows []domain.Availability) []AvailabilityResponse {
	out := make([]AvailabilityResponse, len(rows))
	for i, a := range rows {
		out[i] = AvailabilityResponse{
			Date:        a.Date.Format(domain.DateLayout),
			IsAvailable: a.IsAvailable,
			BookingID:   a.BookingID,
		}
	}
	return out
}
