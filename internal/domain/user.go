package domain

type Role string

const (
	RoleStudent Role = "student"
	RoleStaff   Role = "staff"
	RoleAdmin   Role = "admin"
)

// Session identifies the authenticated caller. Tokens are issued by the
// campus SSO; this service only verifies them and carries the claims.
type Session struct {
	UserID int64
	Role   Role
}
