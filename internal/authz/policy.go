// Package authz holds the role based route policy that fronts every page request.
package authz

import (
	"regexp"
	"strings"

	"github.com/borport/borport_backend/internal/core/domain"
)

// LoginPath is where unauthenticated visitors are sent.
const LoginPath = "/login"

// Action is the outcome of evaluating a request against the policy.
type Action int

const (
	// Pass lets the request through unchanged.
	Pass Action = iota
	// RedirectLogin sends the visitor to LoginPath.
	RedirectLogin
	// RedirectHome sends the visitor to their role's home path.
	RedirectHome
)

func (a Action) String() string {
	switch a {
	case Pass:
		return "pass"
	case RedirectLogin:
		return "redirect_login"
	case RedirectHome:
		return "redirect_home"
	default:
		return "unknown"
	}
}

// Decision is the result of Decide.
type Decision struct {
	Action Action
	// Location is set for redirects.
	Location string
}

// RolePolicy lists the path prefixes a role may and may not visit.
// Deny wins over Allow.
type RolePolicy struct {
	Allow []string
	Deny  []string
	Home  string
}

var publicPrefixes = []string{"/login", "/register", "/api"}

var staticAssetPattern = regexp.MustCompile(`(?i)\.(svg|png|jpe?g|gif|webp|ico|bmp|avif|mp4|webm|ogg|mp3|wav|js|mjs|css|map|woff2?|ttf|otf|eot)$`)

// publicRootFiles are metadata files browsers and crawlers fetch from the site root.
// Their extensions are not public anywhere else.
var publicRootFiles = map[string]bool{
	"/manifest.json":        true,
	"/site.webmanifest":     true,
	"/manifest.webmanifest": true,
	"/robots.txt":           true,
	"/sitemap.xml":          true,
}

// policies is the role table. USER is allowed "/" but denied "/admin" and "/guide",
// which is stricter than a bare "/" prefix that would match every page.
var policies = map[domain.Role]RolePolicy{
	domain.RoleAdmin: {
		Allow: []string{"/admin"},
		Home:  "/admin/dashboard",
	},
	domain.RoleGuide: {
		Allow: []string{"/guide"},
		Home:  "/guide-dashboard",
	},
	domain.RoleUser: {
		Allow: []string{"/"},
		Deny:  []string{"/admin", "/guide"},
		Home:  "/",
	},
}

// PolicyFor returns the policy of a known role.
func PolicyFor(role domain.Role) (RolePolicy, bool) {
	p, ok := policies[role]
	return p, ok
}

// HomeFor returns the landing path of role, or LoginPath for unknown roles.
func HomeFor(role domain.Role) string {
	if p, ok := policies[role]; ok {
		return p.Home
	}
	return LoginPath
}

// IsPublic reports whether path is reachable without a session.
func IsPublic(path string) bool {
	if path == "/" || path == "" || publicRootFiles[path] {
		return true
	}
	for _, prefix := range publicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return staticAssetPattern.MatchString(path)
}

// Allows reports whether the policy lets its role visit path.
func (p RolePolicy) Allows(path string) bool {
	for _, prefix := range p.Deny {
		if strings.HasPrefix(path, prefix) {
			return false
		}
	}
	for _, prefix := range p.Allow {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// Decide evaluates a page request. hasSession is false when no valid token was resolved;
// role is the raw role claim and may be empty or unknown.
func Decide(path string, hasSession bool, role string) Decision {
	if IsPublic(path) {
		return Decision{Action: Pass}
	}
	if !hasSession {
		return Decision{Action: RedirectLogin, Location: LoginPath}
	}
	r, ok := domain.ParseRole(role)
	if !ok {
		return Decision{Action: RedirectLogin, Location: LoginPath}
	}
	p := policies[r]
	if p.Allows(path) {
		return Decision{Action: Pass}
	}
	return Decision{Action: RedirectHome, Location: p.Home}
}
