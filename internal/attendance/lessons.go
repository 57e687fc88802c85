package attendance

import (
	"context"
	"strings"
	"time"

	"github.com/CLDWare/aanwezigheid/internal/metrics"
	models "github.com/CLDWare/aanwezigheid/pkg/db"
	"gorm.io/gorm"
)

const maxAbsenceReasonLength = 200

// CreateLessonInput describes a new lesson and who has to attend it.
// Classes are class codes, Students are full student names.
type CreateLessonInput struct {
	SubjectID uint
	TeacherID uint
	Date      time.Time
	Classes   []string
	Students  []string
}

// RosterEntry is one line of the attendance list a teacher sees for a lesson
type RosterEntry struct {
	EnrollmentID  uint                   `json:"enrollment_id"`
	StudentNumber uint                   `json:"student_number"`
	StudentName   string                 `json:"student_name"`
	Attendance    models.AttendanceState `json:"attendance"`
	AbsenceReason *string                `json:"absence_reason"`
}

// ScheduleEntry is one lesson in the schedule of a student
type ScheduleEntry struct {
	EnrollmentID  uint                   `json:"enrollment_id"`
	LessonID      uint                   `json:"lesson_id"`
	Date          time.Time              `json:"date"`
	EntryState    models.EntryState      `json:"entry_state"`
	SubjectName   string                 `json:"subject"`
	TeacherID     uint                   `json:"teacher_id"`
	TeacherName   string                 `json:"teacher"`
	Attendance    models.AttendanceState `json:"attendance"`
	AbsenceReason *string                `json:"absence_reason"`
}

// CreateLesson creates the lesson and one absent enrollment for every distinct student of the
// given classes and names. Nothing is written when any reference does not resolve.
func (s *Service) CreateLesson(ctx context.Context, in CreateLessonInput) (models.Lesson, []models.LessonEnrollment, error) {
	switch {
	case in.SubjectID == 0:
		return models.Lesson{}, nil, validationErr("Missing required field (subject)")
	case in.TeacherID == 0:
		return models.Lesson{}, nil, validationErr("Missing required field (teacher)")
	case in.Date.IsZero():
		return models.Lesson{}, nil, validationErr("Missing required field (date)")
	}

	var (
		lesson      models.Lesson
		enrollments []models.LessonEnrollment
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		subject, err := gorm.G[models.Subject](tx).Where("id = ?", in.SubjectID).First(ctx)
		if isNotFound(err) {
			return notFoundErr("Subject %d not found", in.SubjectID)
		} else if err != nil {
			return err
		}
		if _, err := gorm.G[models.Teacher](tx).Where("teacher_id = ?", in.TeacherID).First(ctx); isNotFound(err) {
			return notFoundErr("Teacher %d not found", in.TeacherID)
		} else if err != nil {
			return err
		}

		var studentNumbers []uint
		seen := make(map[uint]bool)
		add := func(number uint) {
			if !seen[number] {
				seen[number] = true
				studentNumbers = append(studentNumbers, number)
			}
		}

		for _, code := range in.Classes {
			code = strings.TrimSpace(code)
			if _, err := s.class(ctx, tx, code); err != nil {
				return err
			}
			members, err := gorm.G[models.ClassEnrollment](tx).Where("class_code = ?", code).Order("student_number").Find(ctx)
			if err != nil {
				return err
			}
			for _, member := range members {
				add(member.StudentNumber)
			}
		}
		for _, name := range in.Students {
			student, err := studentByName(ctx, tx, name)
			if err != nil {
				return err
			}
			add(student.StudentNumber)
		}
		if len(studentNumbers) == 0 {
			return validationErr("A lesson needs at least one class or student")
		}

		lesson = models.Lesson{
			SubjectID:  subject.ID,
			Date:       in.Date,
			EntryState: models.EntryOpened,
		}
		if err := gorm.G[models.Lesson](tx).Create(ctx, &lesson); err != nil {
			return err
		}
		lesson.Subject = subject

		enrollments = make([]models.LessonEnrollment, 0, len(studentNumbers))
		for _, number := range studentNumbers {
			enrollments = append(enrollments, models.LessonEnrollment{
				StudentNumber: number,
				TeacherID:     in.TeacherID,
				LessonID:      lesson.ID,
				Attendance:    models.Absent,
			})
		}
		return tx.Create(&enrollments).Error
	})
	if err != nil {
		return models.Lesson{}, nil, err
	}
	return lesson, enrollments, nil
}

// Lesson returns a single lesson with its subject
func (s *Service) Lesson(ctx context.Context, id uint) (models.Lesson, error) {
	var lesson models.Lesson
	err := s.db.WithContext(ctx).Preload("Subject").Where("id = ?", id).First(&lesson).Error
	if isNotFound(err) {
		return models.Lesson{}, notFoundErr("Lesson %d not found", id)
	}
	return lesson, err
}

func (s *Service) ListLessons(ctx context.Context) ([]models.Lesson, error) {
	lessons := []models.Lesson{}
	err := s.db.WithContext(ctx).Preload("Subject").Order("date, id").Find(&lessons).Error
	return lessons, err
}

// TeacherLessons returns the lessons the teacher teaches
func (s *Service) TeacherLessons(ctx context.Context, teacherID uint) ([]models.Lesson, error) {
	taught := s.db.Model(&models.LessonEnrollment{}).Select("lesson_id").Where("teacher_id = ?", teacherID)

	lessons := []models.Lesson{}
	err := s.db.WithContext(ctx).Preload("Subject").Where("id IN (?)", taught).Order("date, id").Find(&lessons).Error
	return lessons, err
}

// SetLessonEntryState opens or closes a lesson for self check-in, both directions are allowed
func (s *Service) SetLessonEntryState(ctx context.Context, lessonID uint, state models.EntryState) (models.Lesson, error) {
	if !state.Valid() {
		return models.Lesson{}, validationErr("Invalid entry state %q", state)
	}
	lesson, err := s.Lesson(ctx, lessonID)
	if err != nil {
		return models.Lesson{}, err
	}

	if _, err := gorm.G[models.Lesson](s.db).Where("id = ?", lessonID).Update(ctx, "entry_state", state); err != nil {
		return models.Lesson{}, err
	}
	lesson.EntryState = state
	return lesson, nil
}

// Enrollment returns the enrollment of a student for a lesson
func (s *Service) Enrollment(ctx context.Context, lessonID, studentNumber uint) (models.LessonEnrollment, error) {
	enrollment, err := gorm.G[models.LessonEnrollment](s.db).
		Where("lesson_id = ? AND student_number = ?", lessonID, studentNumber).
		First(ctx)
	if isNotFound(err) {
		return models.LessonEnrollment{}, notFoundErr("Student %d is not enrolled in lesson %d", studentNumber, lessonID)
	}
	return enrollment, err
}

// CheckIn marks an enrolled student present. A closed lesson always refuses, enrolled or not.
// Checking in twice is not an error.
func (s *Service) CheckIn(ctx context.Context, lessonID, studentNumber uint) (models.LessonEnrollment, error) {
	lesson, err := s.Lesson(ctx, lessonID)
	if err != nil {
		return models.LessonEnrollment{}, err
	}
	if lesson.EntryState != models.EntryOpened {
		return models.LessonEnrollment{}, ErrLessonClosed
	}

	enrollment, err := s.Enrollment(ctx, lessonID, studentNumber)
	if err != nil {
		return models.LessonEnrollment{}, err
	}
	if enrollment.Attendance == models.Present {
		return enrollment, nil
	}

	if _, err := gorm.G[models.LessonEnrollment](s.db).Where("id = ?", enrollment.ID).Update(ctx, "attendance", models.Present); err != nil {
		return models.LessonEnrollment{}, err
	}
	metrics.CheckIns.Inc()
	enrollment.Attendance = models.Present
	return enrollment, nil
}

// MarkAttendance is the teacher override, it ignores the entry state of the lesson.
// A present student can not be set back to absent, marking absent only records the reason.
func (s *Service) MarkAttendance(ctx context.Context, lessonID, studentNumber uint, state models.AttendanceState, reason string) (models.LessonEnrollment, error) {
	if !state.Valid() {
		return models.LessonEnrollment{}, validationErr("Invalid attendance state %q", state)
	}
	reason = strings.TrimSpace(reason)
	if len(reason) > maxAbsenceReasonLength {
		return models.LessonEnrollment{}, validationErr("Absence reason can be at most %d characters", maxAbsenceReasonLength)
	}

	if _, err := s.Lesson(ctx, lessonID); err != nil {
		return models.LessonEnrollment{}, err
	}
	enrollment, err := s.Enrollment(ctx, lessonID, studentNumber)
	if err != nil {
		return models.LessonEnrollment{}, err
	}
	if state == models.Absent && enrollment.Attendance == models.Present {
		return models.LessonEnrollment{}, validationErr("A present student can not be marked absent")
	}

	updates := map[string]any{"attendance": state}
	if state == models.Absent && reason != "" {
		updates["absence_reason"] = reason
		enrollment.AbsenceReason = &reason
	} else if state == models.Present {
		updates["absence_reason"] = nil
		enrollment.AbsenceReason = nil
	}
	if err := s.db.WithContext(ctx).Model(&models.LessonEnrollment{}).Where("id = ?", enrollment.ID).Updates(updates).Error; err != nil {
		return models.LessonEnrollment{}, err
	}
	enrollment.Attendance = state
	return enrollment, nil
}

// Roster lists everyone enrolled in a lesson ordered by student number
func (s *Service) Roster(ctx context.Context, lessonID uint) ([]RosterEntry, error) {
	if _, err := s.Lesson(ctx, lessonID); err != nil {
		return nil, err
	}

	entries := []RosterEntry{}
	err := s.db.WithContext(ctx).
		Table("lesson_enrollments").
		Select("lesson_enrollments.id AS enrollment_id, lesson_enrollments.student_number, students.name AS student_name, lesson_enrollments.attendance, lesson_enrollments.absence_reason").
		Joins("JOIN students ON students.student_number = lesson_enrollments.student_number").
		Where("lesson_enrollments.lesson_id = ?", lessonID).
		Order("lesson_enrollments.student_number").
		Scan(&entries).Error
	return entries, err
}

// StudentSchedule lists the lessons of a student ordered by date
func (s *Service) StudentSchedule(ctx context.Context, studentNumber uint) ([]ScheduleEntry, error) {
	entries := []ScheduleEntry{}
	err := s.db.WithContext(ctx).
		Table("lesson_enrollments").
		Select("lesson_enrollments.id AS enrollment_id, lessons.id AS lesson_id, lessons.date, lessons.entry_state, " +
			"subjects.name AS subject_name, teachers.teacher_id, teachers.name AS teacher_name, " +
			"lesson_enrollments.attendance, lesson_enrollments.absence_reason").
		Joins("JOIN lessons ON lessons.id = lesson_enrollments.lesson_id").
		Joins("JOIN subjects ON subjects.id = lessons.subject_id").
		Joins("JOIN teachers ON teachers.teacher_id = lesson_enrollments.teacher_id").
		Where("lesson_enrollments.student_number = ?", studentNumber).
		Order("lessons.date, lessons.id").
		Scan(&entries).Error
	return entries, err
}
