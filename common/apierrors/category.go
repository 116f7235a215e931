package apierrors

// ErrorKind discriminates the failure variants carried by AppError.
type ErrorKind string

const (
	// KindBusiness marks a domain-level rejection signalled by the remote
	// server through a non-empty reason (validation, rate limit, not found).
	KindBusiness ErrorKind = "business"

	// KindGeneric marks transport failures, unclassified responses and
	// unexpected errors raised while performing a call.
	KindGeneric ErrorKind = "generic"
)
