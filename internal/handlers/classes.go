package handlers

import (
	"net/http"

	"github.com/CLDWare/aanwezigheid/internal/attendance"
	apiResponses "github.com/CLDWare/aanwezigheid/internal/types"
	models "github.com/CLDWare/aanwezigheid/pkg/db"
	"github.com/MonkyMars/gecho"
)

// ClassHandler handles class membership, every route is teacher only
type ClassHandler struct {
	service *attendance.Service
}

func NewClassHandler(service *attendance.Service) *ClassHandler {
	return &ClassHandler{service: service}
}

func toStudents(students []models.Student) []apiResponses.Student {
	out := make([]apiResponses.Student, 0, len(students))
	for _, student := range students {
		out = append(out, apiResponses.Student{StudentNumber: student.StudentNumber, Name: student.Name})
	}
	return out
}

// GetClasses
//
// @Summary		All classes with their counselor
// @Tags			classes
// @Produce		json
// @Success		200	{object}	apiResponses.BaseResponse{data=[]apiResponses.Class}
// @Failure		403	{object}	apiResponses.ForbiddenError
// @Router			/classes	[get]
func (h *ClassHandler) GetClasses(w http.ResponseWriter, r *http.Request) {
	classes, err := h.service.ListClasses(r.Context())
	if err != nil {
		sendServiceError(w, err)
		return
	}

	out := make([]apiResponses.Class, 0, len(classes))
	for _, class := range classes {
		entry := apiResponses.Class{Code: class.Code}
		if class.Counselor != nil {
			entry.Counselor = &class.Counselor.Name
		}
		out = append(out, entry)
	}
	gecho.Success(w).WithData(out).Send()
}

func (h *ClassHandler) GetClassStudents(w http.ResponseWriter, r *http.Request) {
	students, err := h.service.ClassStudents(r.Context(), r.PathValue("code"))
	if err != nil {
		sendServiceError(w, err)
		return
	}
	gecho.Success(w).WithData(toStudents(students)).Send()
}

// PostClassStudent
//
// @Summary		Add a student to a class
// @Tags			classes
// @Accept			json
// @Produce		json
// @Param			code	path		string							true	"class code"
// @Param			student	body		apiResponses.ClassStudentRequest	true	"student name"
// @Success		201	{object}	apiResponses.BaseResponse{data=apiResponses.Student}
// @Failure		404	{object}	apiResponses.NotFoundError
// @Failure		409	{object}	apiResponses.ConflictError
// @Router			/classes/{code}/students	[post]
func (h *ClassHandler) PostClassStudent(w http.ResponseWriter, r *http.Request) {
	var body apiResponses.ClassStudentRequest
	if !decodeJSON(w, r, &body) {
		return
	}

	enrollment, err := h.service.AddStudentToClass(r.Context(), r.PathValue("code"), body.Student)
	if err != nil {
		sendServiceError(w, err)
		return
	}
	gecho.Created(w).WithData(apiResponses.Student{
		StudentNumber: enrollment.StudentNumber,
		Name:          enrollment.Student.Name,
	}).Send()
}

// DeleteClassStudent takes the student from the json body or the 'student' query parameter
func (h *ClassHandler) DeleteClassStudent(w http.ResponseWriter, r *http.Request) {
	body := apiResponses.ClassStudentRequest{Student: r.URL.Query().Get("student")}
	if body.Student == "" && !decodeJSON(w, r, &body) {
		return
	}

	if err := h.service.RemoveStudentFromClass(r.Context(), r.PathValue("code"), body.Student); err != nil {
		sendServiceError(w, err)
		return
	}
	gecho.Success(w).WithMessage("Student removed from class").Send()
}
