package signup

import (
	"github.com/cmlabs-hris/inzone-backend-go/internal/pkg/validator"
)

type HandleRequestRequest struct {
	EmployeeID int64  `json:"employeeId"`
	Action     string `json:"action"`
	AdminID    int64  `json:"adminId"`
}

func (r *HandleRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "employeeId",
			Message: "employeeId is required",
		})
	}

	if !validator.IsInSlice(r.Action, []string{string(ActionApprove), string(ActionDecline)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "action",
			Message: "action must be one of: approve, decline",
		})
	}

	if r.AdminID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "adminId",
			Message: "adminId is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type HandleRequestResponse struct {
	EmployeeID int64  `json:"employeeId"`
	Action     string `json:"action"`
	Message    string `json:"message"`
}

type AdminStatsRequest struct {
	AdminID int64 `json:"adminId"`
}

func (r *AdminStatsRequest) Validate() error {
	if r.AdminID <= 0 {
		return validator.ValidationErrors{{Field: "adminId", Message: "adminId is required"}}
	}
	return nil
}

type AdminStatsResponse struct {
	ManagedEmployees   int64 `json:"managedEmployees"`
	TotalCheckInsMonth int64 `json:"totalCheckInsMonth"`
	ApprovalsHandled   int64 `json:"approvalsHandled"`
	DeclinesHandled    int64 `json:"declinesHandled"`
}
