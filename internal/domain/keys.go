package domain

// CtxKey names a request-scoped value set by the auth middleware.
type CtxKey string

// Values resolved from the verified token and a fresh user read; handlers
// read them via c.GetString(string(key)).
const (
	KeyUserID    CtxKey = "UserID"
	KeyUserEmail CtxKey = "Email"
	KeyUserRole  CtxKey = "Role"
)
