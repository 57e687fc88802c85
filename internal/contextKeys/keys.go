package contextkeys

type contextKey string

const (
	AuthSessionKey contextKey = "authSession"
	AuthUserKey    contextKey = "authUser" // models.Account of the logged in user
	RequestIDKey   contextKey = "requestID"
)
