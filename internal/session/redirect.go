package session

// Route is an opaque target identifier understood by the hosting router;
// this package knows nothing about URL syntax.
type Route string

const (
	RouteLogin      Route = "login"
	RouteSignup     Route = "signup"
	RouteOnboarding Route = "onboarding"
	RouteDashboard  Route = "dashboard"
)

// RedirectPath maps an auth state to its navigation target. Pure: no side
// effects, callable at any time.
//
// An unauthenticated visitor with a draft in progress is sent to account
// creation rather than login; the draft represents committed intent to
// sign up.
func RedirectPath(s State) Route {
	if !s.IsAuthenticated {
		if s.OnboardingData != nil {
			return RouteSignup
		}
		return RouteLogin
	}
	if s.User != nil && !s.User.OnboardingCompleted {
		return RouteOnboarding
	}
	return RouteDashboard
}
