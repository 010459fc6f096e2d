package auth

// Cookie names and lifetimes shared by the request gate and the auth
// endpoints.
const (
	SessionCookieName = "auth-token"
	RefreshCookieName = "refresh-token"
	CSRFCookieName    = "csrf-token"

	SessionCookieMaxAge = 7 * 24 * 60 * 60 // 7 days, matches session lifetime
	RefreshCookieMaxAge = 30 * 24 * 60 * 60
	CSRFCookieMaxAge    = 24 * 60 * 60
)
