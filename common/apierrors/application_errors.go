package apierrors

// Generic error codes and reasons
const (
	// Reasons carried by generic failures
	ReasonGenericError    = "GENERIC_ERROR"    // Failed response without a server reason
	ReasonUnexpectedError = "UNEXPECTED_ERROR" // Anything that is not an API-shaped error

	// System Errors
	ErrCodeUnexpected         = "UNEXPECTED_ERROR"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"       // When a dependency is unavailable
	ErrCodeRequestValidation  = "REQUEST_VALIDATION_ERROR"  // Input validation failures
	ErrCodeInternalProcessing = "INTERNAL_PROCESSING_ERROR" // Logic execution failures
	ErrCodeStorageAccess      = "STORAGE_ACCESS_ERROR"      // Storage port failures

	// Transport Errors
	ErrCodeNetworkError   = "NETWORK_ERROR"   // Network-related failures
	ErrCodeMalformedData  = "MALFORMED_DATA"  // Invalid data formats (JSON parse errors, etc.)
	ErrCodeRequestTimeout = "REQUEST_TIMEOUT" // Operation timeouts
	ErrCodeRequestSetup   = "REQUEST_SETUP_ERROR"
	ErrCodeUnknown        = "UNKNOWN" // Fallback for unclassified errors
)
