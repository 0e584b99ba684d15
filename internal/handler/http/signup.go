package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/inzone-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/inzone-backend-go/internal/domain/signup"
	"github.com/cmlabs-hris/inzone-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/inzone-backend-go/internal/handler/http/response"
)

type SignupHandler interface {
	PendingRequests(w http.ResponseWriter, r *http.Request)
	HandleRequest(w http.ResponseWriter, r *http.Request)
	ApprovedUsers(w http.ResponseWriter, r *http.Request)
	AdminStats(w http.ResponseWriter, r *http.Request)
}

type signupHandlerImpl struct {
	signupService signup.SignupService
}

func NewSignupHandler(signupService signup.SignupService) SignupHandler {
	return &signupHandlerImpl{signupService: signupService}
}

// PendingRequests handles GET /pending-requests
func (h *signupHandlerImpl) PendingRequests(w http.ResponseWriter, r *http.Request) {
	pending, err := h.signupService.ListPending(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, pending)
}

// HandleRequest handles POST /handle-request
func (h *signupHandlerImpl) HandleRequest(w http.ResponseWriter, r *http.Request) {
	var req signup.HandleRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body", nil)
		return
	}

	adminID, err := callerAdminID(r, req.AdminID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	req.AdminID = adminID

	result, err := h.signupService.HandleRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, result.Message, result)
}

// ApprovedUsers handles GET /approved-users
func (h *signupHandlerImpl) ApprovedUsers(w http.ResponseWriter, r *http.Request) {
	approved, err := h.signupService.ListApproved(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, approved)
}

// AdminStats handles POST /get-admin-stats
func (h *signupHandlerImpl) AdminStats(w http.ResponseWriter, r *http.Request) {
	var req signup.AdminStatsRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "invalid request body", nil)
			return
		}
	}

	adminID, err := callerAdminID(r, req.AdminID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	req.AdminID = adminID

	stats, err := h.signupService.AdminStats(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, stats)
}

// callerAdminID defaults adminId to the caller and rejects acting as another admin.
func callerAdminID(r *http.Request, requested int64) (int64, error) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		return 0, auth.ErrInvalidToken
	}
	if requested == 0 {
		return claims.EmployeeID, nil
	}
	if requested != claims.EmployeeID {
		return 0, auth.ErrEmployeeIDMismatch
	}
	return requested, nil
}
