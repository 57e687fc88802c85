package db

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DummyData is the demo school used by cmd/dummy_db and the api tests
type DummyData struct {
	Students         []Student
	Teachers         []Teacher
	Classes          []Class
	Subjects         []Subject
	ClassEnrollments []ClassEnrollment
}

func uintPtr(v uint) *uint { return &v }

func NewDummyData() DummyData {
	return DummyData{
		Students: []Student{
			{StudentNumber: 1000001, Name: "Ann de Vries"},
			{StudentNumber: 1000002, Name: "Bo Jansen"},
			{StudentNumber: 1000003, Name: "Chris Bakker"},
			{StudentNumber: 1000004, Name: "Dana Visser"},
		},
		Teachers: []Teacher{
			{TeacherID: 2001, Name: "Tom van der Velden"},
			{TeacherID: 2002, Name: "Mark Otten"},
		},
		Classes: []Class{
			{Code: "INF1A", CounselorTeacherID: uintPtr(2001)},
			{Code: "INF1B", CounselorTeacherID: uintPtr(2002)},
		},
		Subjects: []Subject{
			{ID: 1, Name: "Programmeren"},
			{ID: 2, Name: "Databases"},
		},
		ClassEnrollments: []ClassEnrollment{
			{StudentNumber: 1000001, ClassCode: "INF1A"},
			{StudentNumber: 1000002, ClassCode: "INF1A"},
			{StudentNumber: 1000003, ClassCode: "INF1B"},
			{StudentNumber: 1000004, ClassCode: "INF1B"},
		},
	}
}

// SeedDummyData inserts the demo school, rows that already exist are left alone
func SeedDummyData(ctx context.Context, db *gorm.DB, data DummyData) error {
	tx := db.WithContext(ctx)

	if err := createAll(tx, data.Students); err != nil {
		return err
	}
	if err := createAll(tx, data.Teachers); err != nil {
		return err
	}
	if err := createAll(tx, data.Classes); err != nil {
		return err
	}
	if err := createAll(tx, data.Subjects); err != nil {
		return err
	}
	return createAll(tx, data.ClassEnrollments)
}

func createAll[T any](tx *gorm.DB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	// a fresh statement per table, a reused one keeps the table of the first insert
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to seed %T: %w", rows, err)
	}
	return nil
}
