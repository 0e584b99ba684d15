package employee

import "time"

type EmployeeResponse struct {
	EmployeeID  int64     `json:"employeeId"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Email       string    `json:"email"`
	Department  string    `json:"department"`
	Post        string    `json:"post"`
	Role        string    `json:"role"`
	ProfilePic  *string   `json:"profilePic,omitempty"`
	Approved    bool      `json:"approved"`
	ApprovedBy  *int64    `json:"approvedBy,omitempty"`
	RequestedAt time.Time `json:"requestedAt"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		EmployeeID:  e.ID,
		FirstName:   e.FirstName,
		LastName:    e.LastName,
		Email:       e.Email,
		Department:  e.Department,
		Post:        string(e.Post),
		Role:        string(e.Role),
		ProfilePic:  e.ProfilePic,
		Approved:    e.Approved,
		ApprovedBy:  e.ApprovedBy,
		RequestedAt: e.RequestedAt,
	}
}

func NewEmployeeResponses(list []Employee) []EmployeeResponse {
	out := make([]EmployeeResponse, 0, len(list))
	for _, e := range list {
		out = append(out, NewEmployeeResponse(e))
	}
	return out
}
