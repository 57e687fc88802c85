package handlers

import (
	"fmt"
	"net/http"

	"github.com/CLDWare/aanwezigheid/config"
	"github.com/CLDWare/aanwezigheid/internal/attendance"
	"github.com/CLDWare/aanwezigheid/internal/metrics"
	apiResponses "github.com/CLDWare/aanwezigheid/internal/types"
	models "github.com/CLDWare/aanwezigheid/pkg/db"
	"github.com/CLDWare/aanwezigheid/pkg/logger"
	"github.com/MonkyMars/gecho"
	"github.com/skip2/go-qrcode"
)

const qrImageSize = 256

// LessonHandler handles requests about lessons and their attendance
type LessonHandler struct {
	config  *config.Config
	service *attendance.Service
	live    *WebsocketHandler
}

// NewLessonHandler creates a new LessonHandler
func NewLessonHandler(cfg *config.Config, service *attendance.Service, live *WebsocketHandler) *LessonHandler {
	return &LessonHandler{
		config:  cfg,
		service: service,
		live:    live,
	}
}

func (h *LessonHandler) withCheckInURL(lessons []models.Lesson) []apiResponses.Lesson {
	out := toLessons(lessons)
	for i := range out {
		out[i].CheckInURL = h.config.CheckInURL(out[i].ID)
	}
	return out
}

// GetLessons
//
// @Summary		Lessons of the logged in user
// @Description	Students get their own schedule, teachers every lesson
// @Tags			lessons
// @Produce		json
// @Success		200	{object}	apiResponses.BaseResponse
// @Router			/lessons	[get]
func (h *LessonHandler) GetLessons(w http.ResponseWriter, r *http.Request) {
	account, ok := currentAccount(w, r)
	if !ok {
		return
	}
	if account.Role.IsTeacher() {
		h.GetAllLessons(w, r)
		return
	}
	h.sendSchedule(w, r, account)
}

// GetMyLessons returns the schedule of a student or the lessons a teacher teaches
func (h *LessonHandler) GetMyLessons(w http.ResponseWriter, r *http.Request) {
	account, ok := currentAccount(w, r)
	if !ok {
		return
	}
	if !account.Role.IsTeacher() {
		h.sendSchedule(w, r, account)
		return
	}
	if account.TeacherID == nil {
		gecho.Success(w).WithData([]apiResponses.Lesson{}).Send()
		return
	}

	lessons, err := h.service.TeacherLessons(r.Context(), *account.TeacherID)
	if err != nil {
		sendServiceError(w, err)
		return
	}
	gecho.Success(w).WithData(h.withCheckInURL(lessons)).Send()
}

func (h *LessonHandler) sendSchedule(w http.ResponseWriter, r *http.Request, account models.Account) {
	if account.StudentNumber == nil {
		gecho.Success(w).WithData([]attendance.ScheduleEntry{}).Send()
		return
	}
	schedule, err := h.service.StudentSchedule(r.Context(), *account.StudentNumber)
	if err != nil {
		sendServiceError(w, err)
		return
	}
	gecho.Success(w).WithData(schedule).Send()
}

// GetAllLessons
//
// @Summary		Every lesson
// @Tags			lessons
// @Produce		json
// @Success		200	{object}	apiResponses.BaseResponse{data=[]apiResponses.Lesson}
// @Failure		403	{object}	apiResponses.ForbiddenError
// @Router			/lessons/all	[get]
func (h *LessonHandler) GetAllLessons(w http.ResponseWriter, r *http.Request) {
	lessons, err := h.service.ListLessons(r.Context())
	if err != nil {
		sendServiceError(w, err)
		return
	}
	gecho.Success(w).WithData(h.withCheckInURL(lessons)).Send()
}

// PostLesson
//
// @Summary		Create a lesson
// @Description	Enrolls every student of the classes plus the named students, each student once
// @Tags			lessons
// @Accept			json
// @Produce		json
// @Param			lesson	body		apiResponses.CreateLessonRequest	true	"new lesson"
// @Success		201	{object}	apiResponses.BaseResponse{data=apiResponses.CreatedLesson}
// @Failure		400	{object}	apiResponses.BadRequestError
// @Failure		403	{object}	apiResponses.ForbiddenError
// @Failure		404	{object}	apiResponses.NotFoundError
// @Router			/lessons	[post]
func (h *LessonHandler) PostLesson(w http.ResponseWriter, r *http.Request) {
	account, ok := currentAccount(w, r)
	if !ok {
		return
	}
	var body apiResponses.CreateLessonRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	if body.TeacherID == 0 && account.TeacherID != nil {
		body.TeacherID = *account.TeacherID
	}

	lesson, enrollments, err := h.service.CreateLesson(r.Context(), attendance.CreateLessonInput{
		SubjectID: body.SubjectID,
		TeacherID: body.TeacherID,
		Date:      body.Date,
		Classes:   body.Classes,
		Students:  body.Students,
	})
	if err != nil {
		sendServiceError(w, err)
		return
	}
	metrics.LessonsCreated.Inc()
	logger.Info(fmt.Sprintf("Lesson %d created by %s with %d students", lesson.ID, account.Username, len(enrollments)))

	created := apiResponses.CreatedLesson{Lesson: toLesson(lesson), Enrolled: len(enrollments)}
	created.CheckInURL = h.config.CheckInURL(lesson.ID)
	gecho.Created(w).WithData(created).Send()
}

// PutEntryState
//
// @Summary		Open or close a lesson for check-in
// @Tags			lessons
// @Accept			json
// @Produce		json
// @Param			id		path		int							true	"lesson id"
// @Param			state	body		apiResponses.EntryStateRequest	true	"new state"
// @Success		200	{object}	apiResponses.BaseResponse{data=apiResponses.Lesson}
// @Failure		400	{object}	apiResponses.BadRequestError
// @Failure		403	{object}	apiResponses.ForbiddenError
// @Failure		404	{object}	apiResponses.NotFoundError
// @Router			/lessons/{id}/entry-state	[put]
func (h *LessonHandler) PutEntryState(w http.ResponseWriter, r *http.Request) {
	lessonID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var body apiResponses.EntryStateRequest
	if !decodeJSON(w, r, &body) {
		return
	}

	lesson, err := h.service.SetLessonEntryState(r.Context(), lessonID, models.EntryState(body.State))
	if err != nil {
		sendServiceError(w, err)
		return
	}
	h.live.Notify(r.Context(), lessonID)
	gecho.Success(w).WithData(toLesson(lesson)).Send()
}

// GetRoster
//
// @Summary		Attendance list of a lesson
// @Tags			lessons
// @Produce		json
// @Param			id	path		int	true	"lesson id"
// @Success		200	{object}	apiResponses.BaseResponse
// @Failure		403	{object}	apiResponses.ForbiddenError
// @Failure		404	{object}	apiResponses.NotFoundError
// @Router			/lessons/{id}/roster	[get]
func (h *LessonHandler) GetRoster(w http.ResponseWriter, r *http.Request) {
	lessonID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	roster, err := h.service.Roster(r.Context(), lessonID)
	if err != nil {
		sendServiceError(w, err)
		return
	}
	gecho.Success(w).WithData(roster).Send()
}

// GetQR
//
// @Summary		QR code students scan to check in
// @Tags			lessons
// @Produce		png
// @Param			id	path		int	true	"lesson id"
// @Success		200
// @Failure		403	{object}	apiResponses.ForbiddenError
// @Failure		404	{object}	apiResponses.NotFoundError
// @Router			/lessons/{id}/qr	[get]
func (h *LessonHandler) GetQR(w http.ResponseWriter, r *http.Request) {
	lessonID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if _, err := h.service.Lesson(r.Context(), lessonID); err != nil {
		sendServiceError(w, err)
		return
	}

	png, err := qrcode.Encode(h.config.CheckInURL(lessonID), qrcode.Medium, qrImageSize)
	if err != nil {
		logger.Err("could not render qr code:", err)
		gecho.InternalServerError(w).Send()
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// PutAttendance
//
// @Summary		Mark attendance
// @Description	Students can only check themselves in, teachers can set any enrolled student and record an absence reason
// @Tags			lessons
// @Accept			json
// @Produce		json
// @Param			id			path		int							true	"lesson id"
// @Param			attendance	body		apiResponses.AttendanceRequest	true	"attendance"
// @Success		200	{object}	apiResponses.BaseResponse{data=apiResponses.Enrollment}
// @Failure		400	{object}	apiResponses.BadRequestError
// @Failure		403	{object}	apiResponses.ForbiddenError
// @Failure		404	{object}	apiResponses.NotFoundError
// @Failure		409	{object}	apiResponses.ConflictError
// @Router			/lessons/{id}/attendance	[put]
func (h *LessonHandler) PutAttendance(w http.ResponseWriter, r *http.Request) {
	account, ok := currentAccount(w, r)
	if !ok {
		return
	}
	lessonID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var body apiResponses.AttendanceRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	ctx := r.Context()

	var (
		enrollment models.LessonEnrollment
		err        error
	)
	if account.Role.IsTeacher() {
		if body.StudentNumber == 0 {
			gecho.BadRequest(w).WithMessage("Missing required field (student_number)").Send()
			return
		}
		enrollment, err = h.service.MarkAttendance(ctx, lessonID, body.StudentNumber, models.AttendanceState(body.State), body.Reason)
	} else {
		if account.StudentNumber == nil || (body.StudentNumber != 0 && body.StudentNumber != *account.StudentNumber) {
			gecho.Forbidden(w).WithMessage("Students can only check in themselves").Send()
			return
		}
		if body.State != "" && models.AttendanceState(body.State) != models.Present {
			gecho.Forbidden(w).WithMessage("Students can only mark themselves present").Send()
			return
		}
		enrollment, err = h.service.CheckIn(ctx, lessonID, *account.StudentNumber)
	}
	if err != nil {
		sendServiceError(w, err)
		return
	}

	h.live.Notify(ctx, lessonID)
	gecho.Success(w).WithData(toEnrollment(enrollment)).Send()
}
