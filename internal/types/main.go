package apiResponses

import "time"

type BaseBase struct {
	Status    int    `example:"200"`
	Success   bool   `example:"true"`
	Message   string `example:"Ok"`
	Timestamp string `example:"2026-01-12T21:52:50.253429709+01:00" format:"date-time"`
}

type BaseResponse struct {
	BaseBase
	Data any
}

type BaseError struct {
	BaseBase
}

type BadRequestError struct {
	BaseBase
	Status  int    `default:"400"`
	Success bool   `default:"false"`
	Message string `example:"Missing required field (date)"`
}
type UnauthorizedError struct {
	BaseBase
	Status  int    `default:"401"`
	Success bool   `default:"false"`
	Message string `example:"Invalid username or password"`
}
type ForbiddenError struct {
	BaseBase
	Status  int    `default:"403"`
	Success bool   `default:"false"`
	Message string `default:"Only teachers can do this"`
}
type NotFoundError struct {
	BaseBase
	Status  int    `default:"404"`
	Success bool   `default:"false"`
	Message string `default:"Lesson 12 not found"`
}
type ConflictError struct {
	BaseBase
	Status  int    `default:"409"`
	Success bool   `default:"false"`
	Message string `example:"Lesson closed"`
}

type InternalServerError struct {
	BaseBase
	Status  int    `default:"500"`
	Success bool   `default:"false"`
	Message string `default:"Internal Server Error"`
}

// Request bodies

type Credentials struct {
	Username string `json:"username" example:"1000001"`
	Password string `json:"password" example:"correct horse"`
	Next     string `json:"next,omitempty" example:"/checkin/12"`
}

type CreateLessonRequest struct {
	SubjectID uint      `json:"subject_id" example:"1"`
	TeacherID uint      `json:"teacher_id,omitempty" example:"2001"` // defaults to the logged in teacher
	Date      time.Time `json:"date" example:"2026-03-02T08:30:00Z"`
	Classes   []string  `json:"classes" example:"INF1A"`
	Students  []string  `json:"students" example:"Bo Jansen"`
}

type EntryStateRequest struct {
	State string `json:"state" example:"closed" enums:"opened,closed"`
}

type AttendanceRequest struct {
	StudentNumber uint   `json:"student_number" example:"1000001"`
	State         string `json:"state" example:"present" enums:"absent,present"`
	Reason        string `json:"reason,omitempty" example:"sick"`
}

type ClassStudentRequest struct {
	Student string `json:"student" example:"Bo Jansen"`
}

// Response data

type Me struct {
	Username      string `json:"username" example:"1000001"`
	Role          string `json:"role" example:"student"`
	IsTeacher     bool   `json:"is_teacher"`
	Name          string `json:"name" example:"Ann de Vries"`
	StudentNumber *uint  `json:"student_number,omitempty"`
	TeacherID     *uint  `json:"teacher_id,omitempty"`
}

// LoginRequired tells a client where to post the credentials and where it goes afterwards
type LoginRequired struct {
	Login string `json:"login" example:"POST /login"`
	Next  string `json:"next" example:"/checkin/12"`
}

type LoginSuccess struct {
	Me
	Redirect string `json:"redirect" example:"/home"`
}

type Home struct {
	Me
	Lessons any `json:"lessons"`
}

type Lesson struct {
	ID         uint      `json:"id" example:"12"`
	SubjectID  uint      `json:"subject_id" example:"1"`
	Subject    string    `json:"subject" example:"Programmeren"`
	Date       time.Time `json:"date"`
	EntryState string    `json:"entry_state" example:"opened"`
	CheckInURL string    `json:"checkin_url,omitempty" example:"http://localhost:8080/checkin/12"`
}

type CreatedLesson struct {
	Lesson
	Enrolled int `json:"enrolled" example:"24"`
}

type Enrollment struct {
	LessonID      uint    `json:"lesson_id" example:"12"`
	StudentNumber uint    `json:"student_number" example:"1000001"`
	Attendance    string  `json:"attendance" example:"present"`
	AbsenceReason *string `json:"absence_reason"`
}

type CheckInForm struct {
	Lesson
	StudentNumber uint   `json:"student_number" example:"1000001"`
	Attendance    string `json:"attendance" example:"absent"`
}

type Class struct {
	Code      string  `json:"code" example:"INF1A"`
	Counselor *string `json:"counselor" example:"Tom van der Velden"`
}

type Student struct {
	StudentNumber uint   `json:"student_number" example:"1000001"`
	Name          string `json:"name" example:"Ann de Vries"`
}

type Teacher struct {
	TeacherID uint   `json:"teacher_id" example:"2001"`
	Name      string `json:"name" example:"Tom van der Velden"`
}

type Subject struct {
	ID   uint   `json:"id" example:"1"`
	Name string `json:"name" example:"Programmeren"`
}

type Version struct {
	Name        string `json:"name" example:"aanwezigheid"`
	Version     string `json:"version" example:"1.0.0"`
	Environment string `json:"environment" example:"development"`
}
