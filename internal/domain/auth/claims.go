package auth

import (
	"github.com/cmlabs-hris/inzone-backend-go/internal/domain/employee"
)

// Claims is the caller identity carried by an access token. Tokens are
// issued by the account service; this service only verifies them.
type Claims struct {
	EmployeeID int64
	Email      string
	Role       employee.Role
}

func (c Claims) IsAdmin() bool {
	return c.Role == employee.RoleAdmin
}

// CanActFor reports whether the caller may read or write employeeID's records.
func (c Claims) CanActFor(employeeID int64) bool {
	return c.IsAdmin() || c.EmployeeID == employeeID
}
