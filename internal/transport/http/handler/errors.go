package handler

const (
	errInternalServer     = "Internal server error"
	errClientNotFound     = "Client not found"
	errInvalidClientID    = "Invalid client ID"
	errWorkEntryNotFound  = "Work entry not found"
	errWorkEntryUpdate    = "Work entry not found or invalid client ID"
	errInvalidID          = "Invalid ID"
	errInvalidEmail       = "Invalid email format"
	errUserNotFound       = "User not found"
	errReportEmailMissing = "No e-mail address on file for this user"
)
