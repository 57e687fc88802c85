package handlers

import (
	"net/http"

	"github.com/CLDWare/aanwezigheid/internal/attendance"
	apiResponses "github.com/CLDWare/aanwezigheid/internal/types"
	"github.com/MonkyMars/gecho"
)

// DirectoryHandler lists students, teachers and subjects for the lesson form of teachers
type DirectoryHandler struct {
	service *attendance.Service
}

func NewDirectoryHandler(service *attendance.Service) *DirectoryHandler {
	return &DirectoryHandler{service: service}
}

func (h *DirectoryHandler) GetStudents(w http.ResponseWriter, r *http.Request) {
	students, err := h.service.ListStudents(r.Context())
	if err != nil {
		sendServiceError(w, err)
		return
	}
	gecho.Success(w).WithData(toStudents(students)).Send()
}

// GetTeachers
//
// @Summary		All teachers
// @Tags			directory
// @Produce		json
// @Success		200	{object}	apiResponses.BaseResponse{data=[]apiResponses.Teacher}
// @Failure		403	{object}	apiResponses.ForbiddenError
// @Router			/teachers	[get]
func (h *DirectoryHandler) GetTeachers(w http.ResponseWriter, r *http.Request) {
	teachers, err := h.service.ListTeachers(r.Context())
	if err != nil {
		sendServiceError(w, err)
		return
	}

	out := make([]apiResponses.Teacher, 0, len(teachers))
	for _, teacher := range teachers {
		out = append(out, apiResponses.Teacher{TeacherID: teacher.TeacherID, Name: teacher.Name})
	}
	gecho.Success(w).WithData(out).Send()
}

func (h *DirectoryHandler) GetSubjects(w http.ResponseWriter, r *http.Request) {
	subjects, err := h.service.ListSubjects(r.Context())
	if err != nil {
		sendServiceError(w, err)
		return
	}

	out := make([]apiResponses.Subject, 0, len(subjects))
	for _, subject := range subjects {
		out = append(out, apiResponses.Subject{ID: subject.ID, Name: subject.Name})
	}
	gecho.Success(w).WithData(out).Send()
}
