package mapping

import (
	"database/sql"
	"testing"
	"time"

	"github.com/borport/borport_backend/internal/core/domain"
	"github.com/borport/borport_backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestUserMapping_NullableColumns(t *testing.T) {
	local := ToModelUser(domain.User{UserID: "u1", PasswordHash: "hash", AuthProvider: domain.ProviderLocal, Role: domain.RoleUser})
	assert.True(t, local.PasswordHash.Valid)
	assert.False(t, local.ProviderUserID.Valid)

	sub := "google-sub"
	google := ToModelUser(domain.User{UserID: "u2", AuthProvider: domain.ProviderGoogle, ProviderUserID: &sub})
	assert.False(t, google.PasswordHash.Valid, "google users have no password")
	assert.Equal(t, sql.NullString{String: sub, Valid: true}, google.ProviderUserID)

	back := ToDomainUser(google)
	assert.Equal(t, "", back.PasswordHash)
	assert.Equal(t, sub, *back.ProviderUserID)
}

func TestBookingMapping_TruncatesDateAndNullTimes(t *testing.T) {
	confirmed := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	m := models.Booking{
		BookingID:   "b1",
		Date:        time.Date(2025, 5, 3, 0, 0, 0, 0, time.UTC),
		Status:      "CONFIRMED",
		ConfirmedAt: sql.NullTime{Time: confirmed, Valid: true},
	}

	d := ToDomainBooking(m)

	assert.Equal(t, domain.BookingConfirmed, d.Status)
	assert.Equal(t, confirmed, *d.ConfirmedAt)
	assert.Nil(t, d.CancelledAt)
	assert.Nil(t, d.PaymentOrderID)
}

func TestGuidePostMapping_NilImagesBecomeEmpty(t *testing.T) {
	m := ToModelGuidePost(domain.GuidePost{GuidePostID: "p1"})
	assert.NotNil(t, m.ImageURLs)
	assert.Empty(t, m.ImageURLs)
}
