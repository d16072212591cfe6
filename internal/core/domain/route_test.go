package domain

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		path string
		want RouteClass
	}{
		{"/signin", RoutePublic},
		{"/signup", RoutePublic},
		{"/", RouteProtected},
		{"/dashboard", RouteProtected},
		{"/marketplace", RouteProtected},
		{"/players/42", RouteProPublic},
		{"/events/summer-open", RouteProPublic},
	}

	for _, tc := range cases {
		if got := Classify(tc.path); got != tc.want {
			t.Fatalf("Classify(%q) = %s, want %s", tc.path, got, tc.want)
		}
	}
}

func TestGuardSkipped(t *testing.T) {
	skipped := []string{
		"/api/feed",
		"/auth/signin",
		"/_next/static/chunk.js",
		"/_next/image",
		"/_next/image/logo.png",
		"/favicon.ico",
		"/healthz",
		"/healthz/ready",
		"/metrics",
		"/swagger/index.html",
	}
	for _, path := range skipped {
		if !GuardSkipped(path) {
			t.Fatalf("expected %q to be skipped by the guard", path)
		}
	}

	evaluated := []string{"/", "/signin", "/dashboard", "/players/42"}
	for _, path := range evaluated {
		if GuardSkipped(path) {
			t.Fatalf("expected %q to be evaluated by the guard", path)
		}
	}
}
