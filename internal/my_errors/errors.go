package my_errors

import "errors"

// Sentinel errors for business logic. Handlers map them to HTTP statuses with errors.Is.
var (
	// Validation errors
	ErrInvalidInput = errors.New("invalid input")
	ErrEmptyField   = errors.New("required field is empty")
	ErrInvalidCSV   = errors.New("invalid csv file")
	ErrNoValidRows  = errors.New("no valid emails found in csv")

	// Auth errors
	ErrUnauthenticated  = errors.New("authentication required")
	ErrInvalidToken     = errors.New("invalid token")
	ErrIdentityExchange = errors.New("failed to verify google sign-in")
	ErrIdentityMismatch = errors.New("email is linked to a different google account")
	ErrAdminRequired    = errors.New("admin access required")
	ErrForbidden        = errors.New("forbidden")

	// User errors
	ErrUserNotFound = errors.New("user not found")

	// Cohort errors
	ErrCohortNotFound = errors.New("cohort not found")

	// Team errors
	ErrTeamNotFound      = errors.New("team not found")
	ErrActiveTeamExists  = errors.New("user already has an active team in this cohort")
	ErrAlreadyTeamMember = errors.New("user is already a member of this team")
	ErrTeamNotRecruiting = errors.New("team is not accepting members")
	ErrTeamDisbanded     = errors.New("team is disbanded")
	ErrLeaderCannotLeave = errors.New("team leader cannot leave the team")
	ErrNotTeamLeader     = errors.New("only the team leader can perform this action")

	// Notice errors
	ErrNoticeNotFound = errors.New("notice not found")
)
