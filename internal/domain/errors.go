package domain

import (
	"errors"
)

// ──────────────────────────────────────────────────────────────────────────────
// Sentinel errors — compare with errors.Is()
// ──────────────────────────────────────────────────────────────────────────────

// Project / funding errors
var (
	// ErrProjectNotFound is returned when no project matches the given id.
	ErrProjectNotFound = errors.New("project not found")

	// ErrProjectCompleted is returned when an operation requires a LIVE project
	// but the project has already received its revenue distribution.
	ErrProjectCompleted = errors.New("project is already completed")

	// ErrDistributionConflict is returned when the LIVE→COMPLETED transition is
	// lost to a concurrent distribution call. Callers should treat it the same
	// as ErrProjectCompleted, or re-read the project to confirm final state.
	ErrDistributionConflict = errors.New("project completion lost to a concurrent distribution")

	// ErrNoInvestments is returned when revenue distribution is attempted on a
	// project that has no investments to receive it.
	ErrNoInvestments = errors.New("no investments to distribute revenue to")

	// ErrInvalidAmount is returned for a non-positive investment amount or a
	// negative revenue report.
	ErrInvalidAmount = errors.New("amount must be a positive decimal")

	// ErrBelowMinInvestment is returned when minimum-investment enforcement is
	// enabled and the amount is below the project's configured floor.
	ErrBelowMinInvestment = errors.New("investment amount is below the project minimum")

	// ErrInvestmentNotFound is returned when no investment matches the given id.
	ErrInvestmentNotFound = errors.New("investment not found")
)

// Profile errors
var (
	// ErrCreatorNotFound is returned when no creator profile matches.
	ErrCreatorNotFound = errors.New("creator profile not found")

	// ErrBrandNotFound is returned when no brand profile matches.
	ErrBrandNotFound = errors.New("brand profile not found")

	// ErrProfileExists is returned when a user tries to create a second profile
	// of the same kind.
	ErrProfileExists = errors.New("profile already exists for this user")
)

// Insight errors
var (
	// ErrInsightJobNotFound is returned when no AI insight job matches.
	ErrInsightJobNotFound = errors.New("insight job not found")

	// ErrCompatibilityNotFound is returned when a creator has no computed
	// compatibility score yet.
	ErrCompatibilityNotFound = errors.New("compatibility score not found")

	// ErrInvalidTargetType is returned when a compatibility calculation names
	// an unknown target kind.
	ErrInvalidTargetType = errors.New("target type must be one of CREATOR, BRAND")
)

// User / auth errors
var (
	// ErrUserNotFound is returned when no user matches the given criteria.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken is returned on registration when the email already exists.
	ErrEmailTaken = errors.New("email address is already registered")

	// ErrInvalidCredentials is returned when login credentials are wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidRole is returned on registration with an unknown role.
	ErrInvalidRole = errors.New("role must be one of CREATOR, BRAND, FAN")

	// ErrUnauthorized is returned when a valid token is not present.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned when the authenticated user lacks the required role.
	ErrForbidden = errors.New("forbidden: insufficient permissions")

	// ErrTokenExpired is returned when a JWT has passed its TTL.
	ErrTokenExpired = errors.New("token has expired")

	// ErrTokenInvalid is returned when a token cannot be parsed or its signature
	// does not match.
	ErrTokenInvalid = errors.New("token is invalid")
)

// ──────────────────────────────────────────────────────────────────────────────
// Helper predicates
// ──────────────────────────────────────────────────────────────────────────────

// notFoundErrors collects all "entity not found" sentinel errors so that
// IsNotFound can stay in sync automatically.
var notFoundErrors = []error{
	ErrProjectNotFound,
	ErrInvestmentNotFound,
	ErrCreatorNotFound,
	ErrBrandNotFound,
	ErrInsightJobNotFound,
	ErrCompatibilityNotFound,
	ErrUserNotFound,
}

// IsNotFound returns true when err (or any error in its chain) is one of the
// domain "not found" errors. Use this instead of comparing error values directly
// when you need to translate domain errors to HTTP 404 responses.
func IsNotFound(err error) bool {
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsConflict returns true for errors that represent a state conflict (e.g.
// double distribution or duplicate registration).
func IsConflict(err error) bool {
	conflictErrors := []error{
		ErrEmailTaken,
		ErrProfileExists,
		ErrProjectCompleted,
		ErrDistributionConflict,
	}
	for _, target := range conflictErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsAuthError returns true for authentication/authorisation errors.
func IsAuthError(err error) bool {
	authErrors := []error{
		ErrUnauthorized,
		ErrForbidden,
		ErrTokenExpired,
		ErrTokenInvalid,
		ErrInvalidCredentials,
	}
	for _, target := range authErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
