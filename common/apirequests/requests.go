package apirequests

// Used for POST /auth/login
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password"`
}

// RegisterRequest is the full registration form. Tags drive per-section
// validation; the all-fields-present check is done by the auth provider.
type RegisterRequest struct {
	// basic
	FirstName       string `json:"firstName" validate:"required,min=2,max=50"`
	LastName        string `json:"lastName" validate:"required,min=2,max=50"`
	Username        string `json:"username" validate:"required,min=3,max=20,username"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	DateOfBirth     string `json:"dateOfBirth" validate:"required"`

	// residence
	Country    string `json:"country" validate:"required"`
	State      string `json:"state" validate:"required"`
	City       string `json:"city" validate:"required"`
	Address    string `json:"address" validate:"required"`
	PostalCode string `json:"postalCode" validate:"required"`

	// contact
	Phone            string `json:"phone" validate:"required"`
	EmergencyContact string `json:"emergencyContact" validate:"required"`
	EmergencyPhone   string `json:"emergencyPhone" validate:"required"`

	// preferences
	Newsletter       bool `json:"newsletter"`
	TermsAccepted    bool `json:"termsAccepted" validate:"eq=true"`
	MarketingConsent bool `json:"marketingConsent"`
}

// Used for POST /me/favorites
type AddFavoriteRequest struct {
	MalID int `json:"mal_id" validate:"required,gt=0"`
}

// Used for POST /me/browse/search
type SearchRequest struct {
	Query string `json:"query" query:"q"`
}
