package presentation

const (
	AuthKey      = "Authorization"
	BearerPrefix = "Bearer "

	// KeyUserID is the echo context key the auth middleware stores the
	// authenticated user id under.
	KeyUserID = "uid"

	IDParam       = "id"
	FilenameParam = "filename"

	ReasonTag = "X-Reason"
)
