package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/CLDWare/aanwezigheid/internal/attendance"
	contextkeys "github.com/CLDWare/aanwezigheid/internal/contextKeys"
	apiResponses "github.com/CLDWare/aanwezigheid/internal/types"
	models "github.com/CLDWare/aanwezigheid/pkg/db"
	"github.com/CLDWare/aanwezigheid/pkg/logger"
	"github.com/MonkyMars/gecho"
)

// currentAccount returns the account AuthenticationMiddleware.Required put on the context
func currentAccount(w http.ResponseWriter, r *http.Request) (models.Account, bool) {
	account, ok := r.Context().Value(contextkeys.AuthUserKey).(models.Account)
	if !ok {
		logger.Err("no account on the request context, is the route registered without authentication?")
		gecho.InternalServerError(w).Send()
	}
	return account, ok
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (uint, bool) {
	id, err := strconv.ParseUint(r.PathValue(name), 10, 0)
	if err != nil {
		gecho.BadRequest(w).WithMessage(fmt.Sprintf("Could not parse '%s' as id", r.PathValue(name))).Send()
		return 0, false
	}
	return uint(id), true
}

func isJSON(r *http.Request) bool {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return mediaType == "application/json"
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		gecho.BadRequest(w).WithMessage("Invalid request body: " + err.Error()).Send()
		return false
	}
	return true
}

// sendServiceError turns the attendance error taxonomy into a response
func sendServiceError(w http.ResponseWriter, err error) {
	msg := attendance.Message(err)
	switch {
	case errors.Is(err, attendance.ErrValidation):
		gecho.BadRequest(w).WithMessage(msg).Send()
	case errors.Is(err, attendance.ErrNotFound):
		gecho.NotFound(w).WithMessage(msg).Send()
	case errors.Is(err, attendance.ErrUnauthorized):
		gecho.Unauthorized(w).WithMessage(msg).Send()
	case errors.Is(err, attendance.ErrConflict):
		gecho.NewErr(w).WithStatus(http.StatusConflict).WithMessage(msg).Send()
	default:
		logger.Err(err)
		gecho.InternalServerError(w).Send()
	}
}

// safeRedirect only allows local paths, anything else goes to /home
func safeRedirect(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/home"
	}
	return next
}

func toLesson(lesson models.Lesson) apiResponses.Lesson {
	return apiResponses.Lesson{
		ID:         lesson.ID,
		SubjectID:  lesson.SubjectID,
		Subject:    lesson.Subject.Name,
		Date:       lesson.Date,
		EntryState: string(lesson.EntryState),
	}
}

func toLessons(lessons []models.Lesson) []apiResponses.Lesson {
	out := make([]apiResponses.Lesson, 0, len(lessons))
	for _, lesson := range lessons {
		out = append(out, toLesson(lesson))
	}
	return out
}

func toEnrollment(enrollment models.LessonEnrollment) apiResponses.Enrollment {
	return apiResponses.Enrollment{
		LessonID:      enrollment.LessonID,
		StudentNumber: enrollment.StudentNumber,
		Attendance:    string(enrollment.Attendance),
		AbsenceReason: enrollment.AbsenceReason,
	}
}
