package attendance

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/CLDWare/aanwezigheid/config"
	"github.com/CLDWare/aanwezigheid/internal/metrics"
	models "github.com/CLDWare/aanwezigheid/pkg/db"
	"github.com/CLDWare/aanwezigheid/pkg/logger"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var lessonDate = time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC)

func newTestService(t *testing.T) *Service {
	t.Helper()
	logger.SetOutput(io.Discard)

	db, err := models.InitialiseDatabase(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, models.SeedDummyData(context.Background(), db, models.NewDummyData()))

	cfg := *config.Get()
	cfg.Auth.BcryptCost = bcrypt.MinCost
	cfg.Auth.SessionDuration = time.Hour
	return NewService(&cfg, db)
}

func createTestLesson(t *testing.T, svc *Service, in CreateLessonInput) models.Lesson {
	t.Helper()
	if in.SubjectID == 0 {
		in.SubjectID = 1
	}
	if in.TeacherID == 0 {
		in.TeacherID = 2001
	}
	if in.Date.IsZero() {
		in.Date = lessonDate
	}
	lesson, _, err := svc.CreateLesson(context.Background(), in)
	require.NoError(t, err)
	return lesson
}

func TestCreateLesson_DeduplicatesClassAndNamedStudents(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	// INF1A holds Ann and Bo, Bo is named again
	lesson, enrollments, err := svc.CreateLesson(ctx, CreateLessonInput{
		SubjectID: 1,
		TeacherID: 2001,
		Date:      lessonDate,
		Classes:   []string{"INF1A"},
		Students:  []string{"Bo Jansen"},
	})
	require.NoError(t, err)
	require.Len(t, enrollments, 2)
	assert.Equal(t, models.EntryOpened, lesson.EntryState)
	assert.Equal(t, "Programmeren", lesson.Subject.Name)

	roster, err := svc.Roster(ctx, lesson.ID)
	require.NoError(t, err)
	require.Len(t, roster, 2)
	assert.Equal(t, uint(1000001), roster[0].StudentNumber)
	assert.Equal(t, "Ann de Vries", roster[0].StudentName)
	assert.Equal(t, uint(1000002), roster[1].StudentNumber)
	for _, entry := range roster {
		assert.Equal(t, models.Absent, entry.Attendance)
		assert.Nil(t, entry.AbsenceReason)
	}
}

func TestCreateLesson_UnresolvedReferencesWriteNothing(t *testing.T) {
	tests := []struct {
		name string
		in   CreateLessonInput
		want error
	}{
		{
			name: "unknown subject",
			in:   CreateLessonInput{SubjectID: 99, TeacherID: 2001, Date: lessonDate, Classes: []string{"INF1A"}},
			want: ErrNotFound,
		},
		{
			name: "unknown teacher",
			in:   CreateLessonInput{SubjectID: 1, TeacherID: 9999, Date: lessonDate, Classes: []string{"INF1A"}},
			want: ErrNotFound,
		},
		{
			name: "unknown class",
			in:   CreateLessonInput{SubjectID: 1, TeacherID: 2001, Date: lessonDate, Classes: []string{"INF1A", "NOPE"}},
			want: ErrNotFound,
		},
		{
			name: "unknown student after valid class",
			in:   CreateLessonInput{SubjectID: 1, TeacherID: 2001, Date: lessonDate, Classes: []string{"INF1A"}, Students: []string{"Nobody"}},
			want: ErrNotFound,
		},
		{
			name: "missing date",
			in:   CreateLessonInput{SubjectID: 1, TeacherID: 2001, Classes: []string{"INF1A"}},
			want: ErrValidation,
		},
		{
			name: "no students",
			in:   CreateLessonInput{SubjectID: 1, TeacherID: 2001, Date: lessonDate},
			want: ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t)
			ctx := context.Background()

			_, _, err := svc.CreateLesson(ctx, tt.in)
			require.ErrorIs(t, err, tt.want)

			lessons, err := svc.ListLessons(ctx)
			require.NoError(t, err)
			assert.Empty(t, lessons)

			var enrollments int64
			require.NoError(t, svc.DB().Model(&models.LessonEnrollment{}).Count(&enrollments).Error)
			assert.Zero(t, enrollments)
		})
	}
}

func TestCreateLesson_AmbiguousStudentName(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	require.NoError(t, svc.DB().Create(&models.Student{StudentNumber: 1000005, Name: "Bo Jansen"}).Error)

	_, _, err := svc.CreateLesson(ctx, CreateLessonInput{
		SubjectID: 1, TeacherID: 2001, Date: lessonDate, Students: []string{"Bo Jansen"},
	})
	require.ErrorIs(t, err, ErrValidation)
}

func TestCheckIn(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	lesson := createTestLesson(t, svc, CreateLessonInput{Classes: []string{"INF1A"}})
	checkIns := testutil.ToFloat64(metrics.CheckIns)

	enrollment, err := svc.CheckIn(ctx, lesson.ID, 1000001)
	require.NoError(t, err)
	assert.Equal(t, models.Present, enrollment.Attendance)

	// second call is a no-op and is not counted again
	enrollment, err = svc.CheckIn(ctx, lesson.ID, 1000001)
	require.NoError(t, err)
	assert.Equal(t, models.Present, enrollment.Attendance)
	assert.Equal(t, checkIns+1, testutil.ToFloat64(metrics.CheckIns))

	stored, err := svc.Enrollment(ctx, lesson.ID, 1000001)
	require.NoError(t, err)
	assert.Equal(t, models.Present, stored.Attendance)

	other, err := svc.Enrollment(ctx, lesson.ID, 1000002)
	require.NoError(t, err)
	assert.Equal(t, models.Absent, other.Attendance)
}

func TestCheckIn_Failures(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	lesson := createTestLesson(t, svc, CreateLessonInput{Classes: []string{"INF1A"}})

	_, err := svc.CheckIn(ctx, lesson.ID+100, 1000001)
	assert.ErrorIs(t, err, ErrNotFound)

	// INF1B student is not enrolled
	_, err = svc.CheckIn(ctx, lesson.ID, 1000003)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.SetLessonEntryState(ctx, lesson.ID, models.EntryClosed)
	require.NoError(t, err)

	for _, student := range []uint{1000001, 1000003, 4242} {
		_, err = svc.CheckIn(ctx, lesson.ID, student)
		assert.ErrorIs(t, err, ErrLessonClosed)
		assert.ErrorIs(t, err, ErrConflict)
	}

	stored, err := svc.Enrollment(ctx, lesson.ID, 1000001)
	require.NoError(t, err)
	assert.Equal(t, models.Absent, stored.Attendance)

	// a teacher may reopen the lesson
	_, err = svc.SetLessonEntryState(ctx, lesson.ID, models.EntryOpened)
	require.NoError(t, err)
	_, err = svc.CheckIn(ctx, lesson.ID, 1000001)
	assert.NoError(t, err)
}

func TestSetLessonEntryState(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	lesson := createTestLesson(t, svc, CreateLessonInput{Classes: []string{"INF1B"}})

	_, err := svc.SetLessonEntryState(ctx, lesson.ID, models.EntryState("half-open"))
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.SetLessonEntryState(ctx, lesson.ID+1, models.EntryClosed)
	assert.ErrorIs(t, err, ErrNotFound)

	updated, err := svc.SetLessonEntryState(ctx, lesson.ID, models.EntryClosed)
	require.NoError(t, err)
	assert.Equal(t, models.EntryClosed, updated.EntryState)

	stored, err := svc.Lesson(ctx, lesson.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EntryClosed, stored.EntryState)
}

func TestMarkAttendance(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	lesson := createTestLesson(t, svc, CreateLessonInput{Classes: []string{"INF1A"}})
	_, err := svc.SetLessonEntryState(ctx, lesson.ID, models.EntryClosed)
	require.NoError(t, err)

	enrollment, err := svc.MarkAttendance(ctx, lesson.ID, 1000002, models.Absent, "sick")
	require.NoError(t, err)
	require.NotNil(t, enrollment.AbsenceReason)
	assert.Equal(t, "sick", *enrollment.AbsenceReason)

	// the override ignores the closed entry state
	enrollment, err = svc.MarkAttendance(ctx, lesson.ID, 1000002, models.Present, "")
	require.NoError(t, err)
	assert.Equal(t, models.Present, enrollment.Attendance)
	assert.Nil(t, enrollment.AbsenceReason)

	_, err = svc.MarkAttendance(ctx, lesson.ID, 1000002, models.Absent, "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.MarkAttendance(ctx, lesson.ID, 1000002, models.AttendanceState("late"), "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.MarkAttendance(ctx, lesson.ID, 1000004, models.Present, "")
	assert.ErrorIs(t, err, ErrNotFound)

	roster, err := svc.Roster(ctx, lesson.ID)
	require.NoError(t, err)
	require.Len(t, roster, 2)
	assert.Equal(t, models.Absent, roster[0].Attendance)
	assert.Equal(t, models.Present, roster[1].Attendance)
}

func TestStudentScheduleAndTeacherLessons(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	later := createTestLesson(t, svc, CreateLessonInput{
		SubjectID: 2, TeacherID: 2002, Date: lessonDate.Add(48 * time.Hour), Classes: []string{"INF1A"},
	})
	earlier := createTestLesson(t, svc, CreateLessonInput{
		SubjectID: 1, TeacherID: 2001, Date: lessonDate, Students: []string{"Ann de Vries"},
	})

	schedule, err := svc.StudentSchedule(ctx, 1000001)
	require.NoError(t, err)
	require.Len(t, schedule, 2)
	assert.Equal(t, earlier.ID, schedule[0].LessonID)
	assert.Equal(t, "Programmeren", schedule[0].SubjectName)
	assert.Equal(t, "Tom van der Velden", schedule[0].TeacherName)
	assert.True(t, schedule[0].Date.Equal(lessonDate))
	assert.Equal(t, later.ID, schedule[1].LessonID)
	assert.Equal(t, "Mark Otten", schedule[1].TeacherName)

	schedule, err = svc.StudentSchedule(ctx, 1000004)
	require.NoError(t, err)
	assert.Empty(t, schedule)

	taught, err := svc.TeacherLessons(ctx, 2002)
	require.NoError(t, err)
	require.Len(t, taught, 1)
	assert.Equal(t, later.ID, taught[0].ID)
	assert.Equal(t, "Databases", taught[0].Subject.Name)
}

func TestClassMembership(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddStudentToClass(ctx, "INF1A", "Chris Bakker")
	require.NoError(t, err)

	_, err = svc.AddStudentToClass(ctx, "INF1A", "Chris Bakker")
	require.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, "Student already in this class", Message(err))

	_, err = svc.AddStudentToClass(ctx, "NOPE", "Chris Bakker")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.AddStudentToClass(ctx, "INF1A", "Nobody")
	assert.ErrorIs(t, err, ErrNotFound)

	students, err := svc.ClassStudents(ctx, "INF1A")
	require.NoError(t, err)
	require.Len(t, students, 3)
	assert.Equal(t, uint(1000003), students[2].StudentNumber)

	require.NoError(t, svc.RemoveStudentFromClass(ctx, "INF1A", "Chris Bakker"))
	assert.ErrorIs(t, svc.RemoveStudentFromClass(ctx, "INF1A", "Chris Bakker"), ErrNotFound)

	// re-adding after removal works again
	_, err = svc.AddStudentToClass(ctx, "INF1A", "Chris Bakker")
	assert.NoError(t, err)

	classes, err := svc.ListClasses(ctx)
	require.NoError(t, err)
	require.Len(t, classes, 2)
	require.NotNil(t, classes[0].Counselor)
	assert.Equal(t, "Tom van der Velden", classes[0].Counselor.Name)
}

func TestListClasses_Empty(t *testing.T) {
	db, err := models.InitialiseDatabase(filepath.Join(t.TempDir(), "empty.db"))
	require.NoError(t, err)
	svc := NewService(config.Get(), db)

	classes, err := svc.ListClasses(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, classes)
	assert.Empty(t, classes)
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		password string
		want     error
	}{
		{"username too short", "10", "password123", ErrValidation},
		{"username too long", "100000000000000000001", "password123", ErrValidation},
		{"password too short", "1000001", "short", ErrValidation},
		{"not a number", "annie", "password123", ErrNotFound},
		{"unknown student", "1999999", "password123", ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.username, tt.password)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	account, err := svc.Register(ctx, "1000001", "password123")
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, account.Role)
	require.NotNil(t, account.StudentNumber)
	assert.Equal(t, uint(1000001), *account.StudentNumber)
	assert.NotEqual(t, "password123", account.PasswordHash)

	_, err = svc.Register(ctx, "1000001", "another-password")
	assert.ErrorIs(t, err, ErrConflict)

	_, err = svc.Authenticate(ctx, "1000001", "wrong-password")
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = svc.Authenticate(ctx, "1000002", "password123")
	assert.ErrorIs(t, err, ErrUnauthorized)

	loggedIn, err := svc.Authenticate(ctx, "1000001", "password123")
	require.NoError(t, err)
	assert.Equal(t, account.ID, loggedIn.ID)
}

func TestRegister_OneAccountPerStudent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	account, err := svc.Register(ctx, "1000001", "password123")
	require.NoError(t, err)

	// leading zeros name the same student
	for _, username := range []string{"01000001", "001000001", " 1000001 "} {
		_, err := svc.Register(ctx, username, "attacker123")
		assert.ErrorIs(t, err, ErrConflict, username)
	}
	_, err = svc.Authenticate(ctx, "01000001", "attacker123")
	assert.ErrorIs(t, err, ErrUnauthorized)

	// a padded number registers under the canonical username
	padded, err := svc.Register(ctx, "01000002", "password123")
	require.NoError(t, err)
	assert.Equal(t, "1000002", padded.Username)
	_, err = svc.Register(ctx, "1000002", "password123")
	assert.ErrorIs(t, err, ErrConflict)

	// the database refuses a second account for the same student as well
	second := models.Account{Username: "someone-else", PasswordHash: "x", StudentNumber: account.StudentNumber}
	assert.Error(t, svc.DB().Create(&second).Error)

	var count int64
	require.NoError(t, svc.DB().Model(&models.Account{}).Where("student_number = ?", 1000001).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreateTeacherAccount(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateTeacherAccount(ctx, 9999, "password123")
	assert.ErrorIs(t, err, ErrNotFound)

	account, err := svc.CreateTeacherAccount(ctx, 2001, "password123")
	require.NoError(t, err)
	assert.True(t, account.Role.IsTeacher())
	assert.Equal(t, "2001", account.Username)

	_, err = svc.CreateTeacherAccount(ctx, 2001, "password123")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestSessions(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	account, err := svc.Register(ctx, "1000003", "password123")
	require.NoError(t, err)

	session, err := svc.StartSession(ctx, account)
	require.NoError(t, err)
	assert.Len(t, session.SessionToken, sessionTokenBytes*2)

	resolved, err := svc.ResolveSession(ctx, session.SessionToken)
	require.NoError(t, err)
	assert.Equal(t, account.ID, resolved.Account.ID)
	assert.Equal(t, "1000003", resolved.Account.Username)

	_, err = svc.ResolveSession(ctx, "not-a-token")
	assert.ErrorIs(t, err, ErrUnauthorized)

	// move the clock past expiry
	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = svc.ResolveSession(ctx, session.SessionToken)
	assert.ErrorIs(t, err, ErrUnauthorized)

	cleaned, err := svc.CleanExpiredSessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, cleaned)

	svc.now = time.Now
	session, err = svc.StartSession(ctx, account)
	require.NoError(t, err)
	require.NoError(t, svc.EndSession(ctx, session.SessionToken))
	_, err = svc.ResolveSession(ctx, session.SessionToken)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "Lesson closed", Message(ErrLessonClosed))
	assert.Equal(t, "No valid student number", Message(notFoundErr("No valid student number")))
	assert.Equal(t, assert.AnError.Error(), Message(assert.AnError))
}
