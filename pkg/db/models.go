package db

import (
	"time"

	"gorm.io/gorm"
)

// EntryState tells whether a lesson accepts self check-ins
type EntryState string

const (
	EntryOpened EntryState = "opened"
	EntryClosed EntryState = "closed"
)

func (s EntryState) Valid() bool {
	return s == EntryOpened || s == EntryClosed
}

// AttendanceState of a single lesson enrollment
type AttendanceState string

const (
	Absent  AttendanceState = "absent"
	Present AttendanceState = "present"
)

func (s AttendanceState) Valid() bool {
	return s == Absent || s == Present
}

// Role of a login account
type Role uint

const (
	RoleStudent Role = iota
	RoleTeacher
)

func (r Role) IsTeacher() bool {
	return r == RoleTeacher
}

func (r Role) String() string {
	if r == RoleTeacher {
		return "teacher"
	}
	return "student"
}

type Student struct {
	StudentNumber uint   `gorm:"primaryKey;autoIncrement:false"`
	Name          string `gorm:"not null;index"`
}

type Teacher struct {
	TeacherID uint   `gorm:"primaryKey;autoIncrement:false"`
	Name      string `gorm:"not null"`
}

type Class struct {
	Code               string `gorm:"primaryKey"`
	CounselorTeacherID *uint
	Counselor          *Teacher `gorm:"foreignKey:CounselorTeacherID;references:TeacherID"`
}

type Subject struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"unique;not null"`
}

type Lesson struct {
	ID         uint `gorm:"primaryKey"`
	SubjectID  uint `gorm:"not null;index"`
	Subject    Subject
	Date       time.Time  `gorm:"not null"`
	EntryState EntryState `gorm:"not null;default:'opened'"`
	CreatedAt  time.Time
}

type ClassEnrollment struct {
	ID            uint    `gorm:"primaryKey"`
	StudentNumber uint    `gorm:"not null;uniqueIndex:idx_class_student"`
	Student       Student `gorm:"foreignKey:StudentNumber;references:StudentNumber"`
	ClassCode     string  `gorm:"not null;uniqueIndex:idx_class_student"`
	Class         Class   `gorm:"foreignKey:ClassCode;references:Code"`
}

type LessonEnrollment struct {
	ID            uint            `gorm:"primaryKey"`
	StudentNumber uint            `gorm:"not null;uniqueIndex:idx_lesson_student"`
	Student       Student         `gorm:"foreignKey:StudentNumber;references:StudentNumber"`
	TeacherID     uint            `gorm:"not null;index"`
	Teacher       Teacher         `gorm:"foreignKey:TeacherID;references:TeacherID"`
	LessonID      uint            `gorm:"not null;uniqueIndex:idx_lesson_student"`
	Lesson        Lesson          `gorm:"foreignKey:LessonID;references:ID"`
	Attendance    AttendanceState `gorm:"not null;default:'absent'"`
	AbsenceReason *string         `gorm:"size:200"`
}

type Account struct {
	gorm.Model
	Username      string `gorm:"unique;not null"`
	PasswordHash  string `gorm:"not null"`
	Role          Role   `gorm:"not null;default:0"`
	StudentNumber *uint `gorm:"uniqueIndex"`
	TeacherID     *uint `gorm:"uniqueIndex"`
}

type AuthSession struct {
	gorm.Model
	SessionToken string `gorm:"unique;not null"`
	AccountID    uint   `gorm:"not null;index"`
	Account      Account
	ExpiresAt    time.Time `gorm:"not null"`
}

// Highscore is the gorm mapping of the highscores table
type Highscore struct {
	ID    uint   `gorm:"primaryKey;autoIncrement"`
	Name  string `gorm:"size:80;not null"`
	Score int64  `gorm:"not null"`
	Game  string `gorm:"size:120;not null;index"`
}

func (Highscore) TableName() string {
	return "highscores"
}
