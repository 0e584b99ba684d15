package employee

import "time"

// Employee is the account-management view of a worker. The attendance engine
// only reads it.
type Employee struct {
	ID          int64
	FirstName   string
	LastName    string
	Email       string
	Department  string
	Post        Post
	Role        Role
	ProfilePic  *string
	Approved    bool
	ApprovedBy  *int64
	RequestedAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// FullName joins first and last name.
func (e Employee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

// IsTracked reports whether the employee takes part in attendance.
func (e Employee) IsTracked() bool {
	return e.Role == RoleUser && e.Approved
}

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

type Post string

const (
	PostAppCoordinator Post = "App Coordinator"
	PostManager        Post = "Manager"
	PostDirector       Post = "Director"
	PostAnalyst        Post = "Analyst"
	PostIntern         Post = "Intern"
)
