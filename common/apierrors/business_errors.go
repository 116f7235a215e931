package apierrors

// Business error codes
const (
	// Session and access errors
	ErrCodeAuthRequired         = "AUTH_REQUIRED"
	ErrCodeAlreadyAuthenticated = "ALREADY_AUTHENTICATED"
	ErrCodeLoginRateLimited     = "LOGIN_RATE_LIMITED"
	ErrCodeLoginFailed          = "LOGIN_FAILED"
	ErrCodeRegistrationFailed   = "REGISTRATION_FAILED"

	// Favorites errors
	ErrCodeNoFavorites           = "NO_FAVORITES"
	ErrCodeFavoritesLimitReached = "FAVORITES_LIMIT_REACHED"
	ErrCodeFavoriteNotFound      = "FAVORITE_NOT_FOUND"

	// Catalog errors
	ErrCodeInvalidAnimeID = "INVALID_ANIME_ID"
)
