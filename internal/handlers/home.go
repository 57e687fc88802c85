package handlers

import (
	"net/http"

	"github.com/CLDWare/aanwezigheid/internal/attendance"
	apiResponses "github.com/CLDWare/aanwezigheid/internal/types"
	"github.com/MonkyMars/gecho"
)

// HomeHandler serves the landing data after login
type HomeHandler struct {
	auth    *AuthenticationHandler
	service *attendance.Service
}

func NewHomeHandler(auth *AuthenticationHandler, service *attendance.Service) *HomeHandler {
	return &HomeHandler{
		auth:    auth,
		service: service,
	}
}

func (h *HomeHandler) GetRoot(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/home", http.StatusFound)
}

// GetHome
//
// @Summary		Landing data of the logged in user
// @Description	Students get their schedule, teachers the lessons they teach
// @Tags			home
// @Produce		json
// @Success		200	{object}	apiResponses.BaseResponse{data=apiResponses.Home}
// @Router			/home	[get]
func (h *HomeHandler) GetHome(w http.ResponseWriter, r *http.Request) {
	account, ok := currentAccount(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	home := apiResponses.Home{Me: h.auth.me(r, account)}
	switch {
	case account.Role.IsTeacher() && account.TeacherID != nil:
		lessons, err := h.service.TeacherLessons(ctx, *account.TeacherID)
		if err != nil {
			sendServiceError(w, err)
			return
		}
		home.Lessons = toLessons(lessons)
	case account.StudentNumber != nil:
		schedule, err := h.service.StudentSchedule(ctx, *account.StudentNumber)
		if err != nil {
			sendServiceError(w, err)
			return
		}
		home.Lessons = schedule
	default:
		home.Lessons = []any{}
	}

	gecho.Success(w).WithData(home).Send()
}
