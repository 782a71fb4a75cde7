package authz

import (
	"testing"

	"github.com/borport/borport_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestIsPublic(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/", true},
		{"/login", true},
		{"/login/reset", true},
		{"/register", true},
		{"/api/guide-posts", true},
		{"/images/logo.png", true},
		{"/assets/app.JS", true},
		{"/fonts/inter.woff2", true},
		{"/admin", false},
		{"/booking-history", false},
		{"/guide-dashboard", false},
		{"/manifest.json", true},
		{"/robots.txt", true},
		{"/sitemap.xml", true},
		{"/admin/withdrawals.json", false},
		{"/guide-dashboard/export.xml", false},
		{"/admin/notes.txt", false},
		{"/booking-history/site.webmanifest", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPublic(tt.path))
		})
	}
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		hasSession bool
		role       string
		want       Decision
	}{
		{"public root without session", "/", false, "", Decision{Action: Pass}},
		{"api without session", "/api/booking-history", false, "", Decision{Action: Pass}},
		{"protected without session", "/booking-history", false, "", Decision{Action: RedirectLogin, Location: "/login"}},
		{"unknown role", "/booking-history", true, "SUPERUSER", Decision{Action: RedirectLogin, Location: "/login"}},
		{"missing role", "/booking-history", true, "", Decision{Action: RedirectLogin, Location: "/login"}},
		{"json under admin without session", "/admin/withdrawals.json", false, "", Decision{Action: RedirectLogin, Location: "/login"}},
		{"xml under guide without session", "/guide-dashboard/export.xml", false, "", Decision{Action: RedirectLogin, Location: "/login"}},
		{"txt under admin without session", "/admin/notes.txt", false, "", Decision{Action: RedirectLogin, Location: "/login"}},
		{"root manifest without session", "/manifest.json", false, "", Decision{Action: Pass}},
		{"json under admin as user", "/admin/withdrawals.json", true, "USER", Decision{Action: RedirectHome, Location: "/"}},

		{"admin on admin page", "/admin/withdrawals", true, "ADMIN", Decision{Action: Pass}},
		{"admin on user page", "/booking-history", true, "ADMIN", Decision{Action: RedirectHome, Location: "/admin/dashboard"}},
		{"admin on guide page", "/guide-dashboard", true, "ADMIN", Decision{Action: RedirectHome, Location: "/admin/dashboard"}},

		{"guide on dashboard", "/guide-dashboard", true, "GUIDE", Decision{Action: Pass}},
		{"guide on nested guide page", "/guide/posts/new", true, "GUIDE", Decision{Action: Pass}},
		{"guide on admin page", "/admin/dashboard", true, "GUIDE", Decision{Action: RedirectHome, Location: "/guide-dashboard"}},
		{"guide on user page", "/booking-history", true, "GUIDE", Decision{Action: RedirectHome, Location: "/guide-dashboard"}},

		{"user on history", "/booking-history", true, "USER", Decision{Action: Pass}},
		{"user on admin page", "/admin/dashboard", true, "USER", Decision{Action: RedirectHome, Location: "/"}},
		{"user on guide page", "/guide-dashboard", true, "USER", Decision{Action: RedirectHome, Location: "/"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.path, tt.hasSession, tt.role))
		})
	}
}

func TestDecide_AllowedPathsPassAndOthersGoHome(t *testing.T) {
	paths := []string{"/admin/dashboard", "/guide-dashboard", "/guide/finance", "/booking-history", "/profile"}
	for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleGuide, domain.RoleUser} {
		p, ok := PolicyFor(role)
		assert.True(t, ok)
		for _, path := range paths {
			d := Decide(path, true, string(role))
			if p.Allows(path) {
				assert.Equal(t, Pass, d.Action, "%s %s", role, path)
			} else {
				assert.Equal(t, RedirectHome, d.Action, "%s %s", role, path)
				assert.Equal(t, HomeFor(role), d.Location)
			}
		}
	}
}

func TestHomeFor(t *testing.T) {
	assert.Equal(t, "/admin/dashboard", HomeFor(domain.RoleAdmin))
	assert.Equal(t, "/guide-dashboard", HomeFor(domain.RoleGuide))
	assert.Equal(t, "/", HomeFor(domain.RoleUser))
	assert.Equal(t, "/login", HomeFor(domain.Role("NOPE")))
}
