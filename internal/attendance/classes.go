package attendance

import (
	"context"
	"errors"
	"strings"

	models "github.com/CLDWare/aanwezigheid/pkg/db"
	"gorm.io/gorm"
)

func (s *Service) ListClasses(ctx context.Context) ([]models.Class, error) {
	classes := []models.Class{}
	err := s.db.WithContext(ctx).Preload("Counselor").Order("code").Find(&classes).Error
	return classes, err
}

func (s *Service) class(ctx context.Context, tx *gorm.DB, code string) (models.Class, error) {
	class, err := gorm.G[models.Class](tx).Where("code = ?", code).First(ctx)
	if isNotFound(err) {
		return models.Class{}, notFoundErr("Class %q not found", code)
	}
	return class, err
}

// ClassStudents returns the members of a class ordered by student number
func (s *Service) ClassStudents(ctx context.Context, code string) ([]models.Student, error) {
	if _, err := s.class(ctx, s.db, code); err != nil {
		return nil, err
	}

	students := []models.Student{}
	err := s.db.WithContext(ctx).
		Joins("JOIN class_enrollments ON class_enrollments.student_number = students.student_number").
		Where("class_enrollments.class_code = ?", code).
		Order("students.student_number").
		Find(&students).Error
	return students, err
}

// studentByName resolves a student from its full name. Names are not unique, so more than one match is refused.
func studentByName(ctx context.Context, tx *gorm.DB, name string) (models.Student, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Student{}, validationErr("Missing student name")
	}

	students, err := gorm.G[models.Student](tx).Where("name = ?", name).Limit(2).Find(ctx)
	if err != nil {
		return models.Student{}, err
	}
	switch len(students) {
	case 0:
		return models.Student{}, notFoundErr("Student %q not found", name)
	case 1:
		return students[0], nil
	default:
		return models.Student{}, validationErr("Student name %q is ambiguous", name)
	}
}

func (s *Service) AddStudentToClass(ctx context.Context, code, studentName string) (models.ClassEnrollment, error) {
	if _, err := s.class(ctx, s.db, code); err != nil {
		return models.ClassEnrollment{}, err
	}
	student, err := studentByName(ctx, s.db, studentName)
	if err != nil {
		return models.ClassEnrollment{}, err
	}

	existing, err := gorm.G[models.ClassEnrollment](s.db).
		Where("class_code = ? AND student_number = ?", code, student.StudentNumber).
		Count(ctx, "id")
	if err != nil {
		return models.ClassEnrollment{}, err
	}
	if existing > 0 {
		return models.ClassEnrollment{}, conflictErr("Student already in this class")
	}

	enrollment := models.ClassEnrollment{
		StudentNumber: student.StudentNumber,
		ClassCode:     code,
	}
	err = gorm.G[models.ClassEnrollment](s.db).Create(ctx, &enrollment)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return models.ClassEnrollment{}, conflictErr("Student already in this class")
	} else if err != nil {
		return models.ClassEnrollment{}, err
	}
	enrollment.Student = student
	return enrollment, nil
}

func (s *Service) RemoveStudentFromClass(ctx context.Context, code, studentName string) error {
	if _, err := s.class(ctx, s.db, code); err != nil {
		return err
	}
	student, err := studentByName(ctx, s.db, studentName)
	if err != nil {
		return err
	}

	removed, err := gorm.G[models.ClassEnrollment](s.db).
		Where("class_code = ? AND student_number = ?", code, student.StudentNumber).
		Delete(ctx)
	if err != nil {
		return err
	}
	if removed == 0 {
		return notFoundErr("Student is not in this class")
	}
	return nil
}

func (s *Service) ListStudents(ctx context.Context) ([]models.Student, error) {
	return gorm.G[models.Student](s.db).Order("student_number").Find(ctx)
}

func (s *Service) ListTeachers(ctx context.Context) ([]models.Teacher, error) {
	return gorm.G[models.Teacher](s.db).Order("name").Find(ctx)
}

func (s *Service) ListSubjects(ctx context.Context) ([]models.Subject, error) {
	return gorm.G[models.Subject](s.db).Order("name").Find(ctx)
}

func (s *Service) Student(ctx context.Context, studentNumber uint) (models.Student, error) {
	student, err := gorm.G[models.Student](s.db).Where("student_number = ?", studentNumber).First(ctx)
	if isNotFound(err) {
		return models.Student{}, notFoundErr("Student %d not found", studentNumber)
	}
	return student, err
}

func (s *Service) Teacher(ctx context.Context, teacherID uint) (models.Teacher, error) {
	teacher, err := gorm.G[models.Teacher](s.db).Where("teacher_id = ?", teacherID).First(ctx)
	if isNotFound(err) {
		return models.Teacher{}, notFoundErr("Teacher %d not found", teacherID)
	}
	return teacher, err
}
