package storefront

import (
	"strings"

	"github.com/sea-catering/storefront/internal/domain"
)

// Guard is the access rule attached to a route.
type Guard int

const (
	GuardPublic Guard = iota
	// GuardGuestOnly sends signed-in users to the dashboard.
	GuardGuestOnly
	// GuardAuthenticated sends anonymous users to login.
	GuardAuthenticated
	// GuardAdmin sends everyone without the admin role home.
	GuardAdmin
)

// RouteName identifies a view.
type RouteName string

const (
	RouteHome         RouteName = "home"
	RouteMenu         RouteName = "menu"
	RouteContact      RouteName = "contact"
	RouteTestimonials RouteName = "testimonials"
	RouteReview       RouteName = "review"
	RouteLogin        RouteName = "login"
	RouteRegister     RouteName = "register"
	RouteSubscription RouteName = "subscription"
	RouteDashboard    RouteName = "dashboard"
	RouteAdmin        RouteName = "admin"
)

// Route maps a path to a view and its guard.
type Route struct {
	Name  RouteName
	Path  string
	Guard Guard
}

var routes = []Route{
	{Name: RouteHome, Path: "/", Guard: GuardPublic},
	{Name: RouteMenu, Path: "/menu", Guard: GuardPublic},
	{Name: RouteContact, Path: "/contact", Guard: GuardPublic},
	{Name: RouteTestimonials, Path: "/testimonials", Guard: GuardPublic},
	{Name: RouteReview, Path: "/testimonials/new", Guard: GuardAuthenticated},
	{Name: RouteLogin, Path: "/login", Guard: GuardGuestOnly},
	{Name: RouteRegister, Path: "/register", Guard: GuardGuestOnly},
	{Name: RouteSubscription, Path: "/subscription", Guard: GuardAuthenticated},
	{Name: RouteDashboard, Path: "/dashboard", Guard: GuardAuthenticated},
	{Name: RouteAdmin, Path: "/admin", Guard: GuardAdmin},
}

// Routes returns the route table.
func Routes() []Route {
	out := make([]Route, len(routes))
	copy(out, routes)
	return out
}

// RouteByName finds a route in the table.
func RouteByName(name RouteName) (Route, bool) {
	for _, r := range routes {
		if r.Name == name {
			return r, true
		}
	}
	return Route{}, false
}

// Navigation is the outcome of one navigation.
type Navigation struct {
	Route      Route
	Redirected bool
}

// Navigate resolves path for the given profile, nil when signed out.
// Unknown paths and failed guards redirect.
func Navigate(path string, profile *domain.UserProfile) Navigation {
	path = "/" + strings.Trim(strings.TrimSpace(path), "/")
	for _, r := range routes {
		if r.Path == path {
			if target, ok := redirectFor(r.Guard, profile); ok {
				to, _ := RouteByName(target)
				return Navigation{Route: to, Redirected: true}
			}
			return Navigation{Route: r}
		}
	}
	home, _ := RouteByName(RouteHome)
	return Navigation{Route: home, Redirected: true}
}

// Allowed reports whether the guard lets profile through.
func (g Guard) Allowed(profile *domain.UserProfile) bool {
	_, redirect := redirectFor(g, profile)
	return !redirect
}

func redirectFor(g Guard, profile *domain.UserProfile) (RouteName, bool) {
	switch g {
	case GuardGuestOnly:
		if profile != nil {
			return RouteDashboard, true
		}
	case GuardAuthenticated:
		if profile == nil {
			return RouteLogin, true
		}
	case GuardAdmin:
		if !profile.IsAdmin() {
			return RouteHome, true
		}
	}
	return "", false
}
