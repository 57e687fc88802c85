package handlers

import (
	"errors"
	"net/http"

	"github.com/CLDWare/aanwezigheid/config"
	"github.com/CLDWare/aanwezigheid/internal/attendance"
	apiResponses "github.com/CLDWare/aanwezigheid/internal/types"
	models "github.com/CLDWare/aanwezigheid/pkg/db"
	"github.com/MonkyMars/gecho"
)

// CheckInHandler serves the page the lesson QR code points to
type CheckInHandler struct {
	config  *config.Config
	service *attendance.Service
	live    *WebsocketHandler
}

func NewCheckInHandler(cfg *config.Config, service *attendance.Service, live *WebsocketHandler) *CheckInHandler {
	return &CheckInHandler{
		config:  cfg,
		service: service,
		live:    live,
	}
}

// GetCheckIn
//
// @Summary		Check-in form data
// @Description	Teachers and students who are not enrolled are sent to /home
// @Tags			checkin
// @Produce		json
// @Param			lessonId	path		int	true	"lesson id"
// @Success		200	{object}	apiResponses.BaseResponse{data=apiResponses.CheckInForm}
// @Success		303
// @Failure		404	{object}	apiResponses.NotFoundError
// @Failure		409	{object}	apiResponses.ConflictError
// @Router			/checkin/{lessonId}	[get]
func (h *CheckInHandler) GetCheckIn(w http.ResponseWriter, r *http.Request) {
	account, ok := currentAccount(w, r)
	if !ok {
		return
	}
	lessonID, ok := pathID(w, r, "lessonId")
	if !ok {
		return
	}
	if account.Role.IsTeacher() || account.StudentNumber == nil {
		http.Redirect(w, r, "/home", http.StatusSeeOther)
		return
	}
	ctx := r.Context()

	lesson, err := h.service.Lesson(ctx, lessonID)
	if err != nil {
		sendServiceError(w, err)
		return
	}
	if lesson.EntryState != models.EntryOpened {
		sendServiceError(w, attendance.ErrLessonClosed)
		return
	}

	enrollment, err := h.service.Enrollment(ctx, lessonID, *account.StudentNumber)
	if errors.Is(err, attendance.ErrNotFound) {
		http.Redirect(w, r, "/home", http.StatusSeeOther)
		return
	} else if err != nil {
		sendServiceError(w, err)
		return
	}

	gecho.Success(w).WithData(apiResponses.CheckInForm{
		Lesson:        toLesson(lesson),
		StudentNumber: enrollment.StudentNumber,
		Attendance:    string(enrollment.Attendance),
	}).Send()
}

// PostCheckIn
//
// @Summary		Check in to a lesson
// @Tags			checkin
// @Produce		json
// @Param			lessonId	path		int	true	"lesson id"
// @Success		200	{object}	apiResponses.BaseResponse{data=apiResponses.Enrollment}
// @Failure		403	{object}	apiResponses.ForbiddenError
// @Failure		404	{object}	apiResponses.NotFoundError
// @Failure		409	{object}	apiResponses.ConflictError
// @Router			/checkin/{lessonId}	[post]
func (h *CheckInHandler) PostCheckIn(w http.ResponseWriter, r *http.Request) {
	account, ok := currentAccount(w, r)
	if !ok {
		return
	}
	lessonID, ok := pathID(w, r, "lessonId")
	if !ok {
		return
	}
	if account.StudentNumber == nil {
		gecho.Forbidden(w).WithMessage("Only students can check in").Send()
		return
	}

	enrollment, err := h.service.CheckIn(r.Context(), lessonID, *account.StudentNumber)
	if err != nil {
		sendServiceError(w, err)
		return
	}
	h.live.Notify(r.Context(), lessonID)

	gecho.Success(w).WithData(toEnrollment(enrollment)).Send()
}
