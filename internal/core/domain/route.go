package domain

import "strings"

// RouteClass maps a request path to its access requirement.
type RouteClass string

const (
	// RoutePublic requires no session; authenticated users are bounced to the root.
	RoutePublic RouteClass = "public"
	// RouteProtected requires a session.
	RouteProtected RouteClass = "protected"
	// RouteProPublic is viewable anonymously but enriched when a session exists.
	RouteProPublic RouteClass = "pro_public"
)

const (
	SignInPath     = "/signin"
	SignUpPath     = "/signup"
	CompletionPath = "/complete-profile"
	RootPath       = "/"
)

// publicPaths is the static allow-list of paths reachable without a session.
var publicPaths = map[string]struct{}{
	SignInPath: {},
	SignUpPath: {},
}

// proPublicPrefixes mark pages that render anonymously but pick up profile
// context when available (pro player pages, event pages).
var proPublicPrefixes = []string{
	"/players/",
	"/events/",
}

// guardSkipPrefixes are never evaluated by the route guard: API traffic, the
// gateway's own auth and operational endpoints, and framework static assets.
var guardSkipPrefixes = []string{
	"/api/",
	"/auth/",
	"/_next/static/",
	// The image optimizer serves the bare path with the source in the query
	// string, so no trailing slash here.
	"/_next/image",
	"/favicon.ico",
	"/healthz",
	"/metrics",
	"/swagger/",
}

// Classify resolves a page path to its route class.
func Classify(path string) RouteClass {
	if _, ok := publicPaths[path]; ok {
		return RoutePublic
	}
	for _, prefix := range proPublicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return RouteProPublic
		}
	}
	return RouteProtected
}

// GuardSkipped reports whether the route guard must leave the path alone.
func GuardSkipped(path string) bool {
	for _, prefix := range guardSkipPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
