package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/CLDWare/aanwezigheid/config"
	"github.com/CLDWare/aanwezigheid/internal/attendance"
	models "github.com/CLDWare/aanwezigheid/pkg/db"
	"github.com/CLDWare/aanwezigheid/pkg/logger"
)

const testPassword = "password123"

type testServer struct {
	t       *testing.T
	cfg     *config.Config
	service *attendance.Service
	handler http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger.SetOutput(io.Discard)

	db, err := models.InitialiseDatabase(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, models.SeedDummyData(ctx, db, models.NewDummyData()))

	cfg := *config.Get()
	cfg.Auth.BcryptCost = bcrypt.MinCost
	cfg.App.PublicURL = "https://school.example"
	service := attendance.NewService(&cfg, db)

	for _, student := range []string{"1000001", "1000003"} {
		_, err := service.Register(ctx, student, testPassword)
		require.NoError(t, err)
	}
	_, err = service.CreateTeacherAccount(ctx, 2001, testPassword)
	require.NoError(t, err)

	return &testServer{
		t:       t,
		cfg:     &cfg,
		service: service,
		handler: ApplyMiddleware(NewAPI(&cfg, service).CreateMux(), cfg.CORSOrigins()...),
	}
}

func (s *testServer) do(method, target string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	s.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	return w
}

func (s *testServer) login(username string) *http.Cookie {
	s.t.Helper()
	w := s.do(http.MethodPost, "/login", map[string]string{"username": username, "password": testPassword}, nil)
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())

	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == s.cfg.Auth.CookieName {
			return cookie
		}
	}
	s.t.Fatalf("login of %s did not set the session cookie", username)
	return nil
}

// decodeData reads the data field of a gecho envelope into dst
func decodeData(t *testing.T, w *httptest.ResponseRecorder, dst any) {
	t.Helper()
	var envelope map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope), w.Body.String())
	for key, raw := range envelope {
		if strings.EqualFold(key, "data") {
			require.NoError(t, json.Unmarshal(raw, dst))
			return
		}
	}
	t.Fatalf("no data in response: %s", w.Body.String())
}

func (s *testServer) createLesson(teacher *http.Cookie) uint {
	s.t.Helper()
	w := s.do(http.MethodPost, "/lessons", map[string]any{
		"subject_id": 1,
		"date":       "2026-03-02T08:30:00Z",
		"classes":    []string{"INF1A"},
		"students":   []string{"Bo Jansen"},
	}, teacher)
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())

	var lesson struct {
		ID         uint   `json:"id"`
		Enrolled   int    `json:"enrolled"`
		CheckInURL string `json:"checkin_url"`
	}
	decodeData(s.t, w, &lesson)
	require.NotZero(s.t, lesson.ID)
	assert.Equal(s.t, 2, lesson.Enrolled)
	assert.Equal(s.t, fmt.Sprintf("https://school.example/checkin/%d", lesson.ID), lesson.CheckInURL)
	return lesson.ID
}

func TestAPI_WithMiddleware(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/v", nil)
	req.Header.Set("Origin", "https://school.example")
	w := httptest.NewRecorder()
	srv.handler.ServeHTTP(w, req)

	// Check that the request went through middleware and reached the handler
	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	// Check CORS headers are present (from CORSMiddleware)
	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("expected CORS headers to be set by middleware")
	}

	if w.Header().Get("X-Request-ID") == "" {
		t.Error("expected a request id to be set by middleware")
	}
}

func TestAPI_UnknownRoute(t *testing.T) {
	srv := newTestServer(t)
	w := srv.do(http.MethodGet, "/does-not-exist", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAPI_UnauthenticatedRedirectsToLogin(t *testing.T) {
	srv := newTestServer(t)

	for _, target := range []string{"/home", "/lessons/5/roster", "/checkin/7"} {
		w := srv.do(http.MethodGet, target, nil, nil)
		assert.Equal(t, http.StatusSeeOther, w.Code, target)
		assert.Equal(t, "/login?next="+url.QueryEscape(target), w.Header().Get("Location"))
	}

	w := srv.do(http.MethodGet, "/home", nil, &http.Cookie{Name: srv.cfg.Auth.CookieName, Value: "forged"})
	assert.Equal(t, http.StatusSeeOther, w.Code)
}

func TestAPI_LoginPageAfterRedirect(t *testing.T) {
	srv := newTestServer(t)

	w := srv.do(http.MethodGet, "/checkin/7", nil, nil)
	require.Equal(t, http.StatusSeeOther, w.Code)

	// follow the redirect
	w = srv.do(http.MethodGet, w.Header().Get("Location"), nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code, w.Body.String())
	var page struct {
		Login string `json:"login"`
		Next  string `json:"next"`
	}
	decodeData(t, w, &page)
	assert.Equal(t, "POST /login", page.Login)
	assert.Equal(t, "/checkin/7", page.Next)

	w = srv.do(http.MethodGet, "/login?next="+url.QueryEscape("https://evil.example"), nil, nil)
	decodeData(t, w, &page)
	assert.Equal(t, "/home", page.Next)

	// logged in users skip the login page
	ann := srv.login("1000001")
	w = srv.do(http.MethodGet, "/login?next="+url.QueryEscape("/lessons"), nil, ann)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/lessons", w.Header().Get("Location"))

	w = srv.do(http.MethodGet, "/logout", nil, ann)
	require.Equal(t, http.StatusSeeOther, w.Code)
	w = srv.do(http.MethodGet, w.Header().Get("Location"), nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAPI_CORS(t *testing.T) {
	srv := newTestServer(t)
	ann := srv.login("1000001")

	tests := []struct {
		name        string
		origin      string
		allowOrigin string
		credentials string
	}{
		{"public url origin", "https://school.example", "https://school.example", "true"},
		{"foreign origin", "https://evil.example", "", ""},
		{"sibling subdomain", "https://evil.school.example", "", ""},
		{"no origin", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/home", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			req.AddCookie(ann)
			w := httptest.NewRecorder()
			srv.handler.ServeHTTP(w, req)

			assert.Equal(t, tt.allowOrigin, w.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, tt.credentials, w.Header().Get("Access-Control-Allow-Credentials"))
			assert.Contains(t, w.Header().Values("Vary"), "Origin")
		})
	}

	req := httptest.NewRequest(http.MethodOptions, "/lessons", nil)
	req.Header.Set("Origin", "https://evil.example")
	w := httptest.NewRecorder()
	srv.handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestAPI_RegisterPaddedStudentNumber(t *testing.T) {
	srv := newTestServer(t)

	// 1000001 is registered by newTestServer
	w := srv.do(http.MethodPost, "/register", map[string]string{"username": "01000001", "password": "attacker123"}, nil)
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	w = srv.do(http.MethodPost, "/login", map[string]string{"username": "01000001", "password": "attacker123"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAPI_TeacherOnlyRoutesRejectStudents(t *testing.T) {
	srv := newTestServer(t)
	teacher := srv.login("2001")
	lessonID := srv.createLesson(teacher)
	student := srv.login("1000001")

	routes := []struct {
		method string
		target string
		body   any
	}{
		{http.MethodGet, "/lessons/all", nil},
		{http.MethodPost, "/lessons", map[string]any{"subject_id": 1, "date": "2026-03-02T08:30:00Z", "classes": []string{"INF1A"}}},
		{http.MethodPut, fmt.Sprintf("/lessons/%d/entry-state", lessonID), map[string]string{"state": "closed"}},
		{http.MethodGet, fmt.Sprintf("/lessons/%d/roster", lessonID), nil},
		{http.MethodGet, fmt.Sprintf("/lessons/%d/qr", lessonID), nil},
		{http.MethodGet, fmt.Sprintf("/lessons/%d/live", lessonID), nil},
		{http.MethodGet, "/classes", nil},
		{http.MethodGet, "/classes/INF1A/students", nil},
		{http.MethodPost, "/classes/INF1A/students", map[string]string{"student": "Chris Bakker"}},
		{http.MethodDelete, "/classes/INF1A/students", map[string]string{"student": "Ann de Vries"}},
		{http.MethodGet, "/students", nil},
		{http.MethodGet, "/teachers", nil},
		{http.MethodGet, "/subjects", nil},
	}
	for _, route := range routes {
		t.Run(route.method+" "+route.target, func(t *testing.T) {
			w := srv.do(route.method, route.target, route.body, student)
			assert.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
		})
	}

	// nothing changed
	lesson, err := srv.service.Lesson(context.Background(), lessonID)
	require.NoError(t, err)
	assert.Equal(t, models.EntryOpened, lesson.EntryState)
	lessons, err := srv.service.ListLessons(context.Background())
	require.NoError(t, err)
	assert.Len(t, lessons, 1)
}

func TestAPI_CheckInFlow(t *testing.T) {
	srv := newTestServer(t)
	teacher := srv.login("2001")
	lessonID := srv.createLesson(teacher)
	checkin := fmt.Sprintf("/checkin/%d", lessonID)

	ann := srv.login("1000001")
	w := srv.do(http.MethodGet, checkin, nil, ann)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var form struct {
		ID         uint   `json:"id"`
		Attendance string `json:"attendance"`
	}
	decodeData(t, w, &form)
	assert.Equal(t, lessonID, form.ID)
	assert.Equal(t, "absent", form.Attendance)

	// not enrolled and teachers go home
	chris := srv.login("1000003")
	w = srv.do(http.MethodGet, checkin, nil, chris)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/home", w.Header().Get("Location"))
	w = srv.do(http.MethodGet, checkin, nil, teacher)
	assert.Equal(t, http.StatusSeeOther, w.Code)

	w = srv.do(http.MethodPost, checkin, nil, ann)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = srv.do(http.MethodPost, checkin, nil, ann)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = srv.do(http.MethodPost, checkin, nil, chris)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = srv.do(http.MethodGet, fmt.Sprintf("/lessons/%d/roster", lessonID), nil, teacher)
	require.Equal(t, http.StatusOK, w.Code)
	var roster []attendance.RosterEntry
	decodeData(t, w, &roster)
	require.Len(t, roster, 2)
	assert.Equal(t, models.Present, roster[0].Attendance)
	assert.Equal(t, models.Absent, roster[1].Attendance)

	w = srv.do(http.MethodPut, fmt.Sprintf("/lessons/%d/entry-state", lessonID), map[string]string{"state": "closed"}, teacher)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = srv.do(http.MethodGet, checkin, nil, ann)
	assert.Equal(t, http.StatusConflict, w.Code)
	w = srv.do(http.MethodPost, checkin, nil, ann)
	assert.Equal(t, http.StatusConflict, w.Code)
	w = srv.do(http.MethodPost, checkin, nil, chris)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAPI_PutAttendance(t *testing.T) {
	srv := newTestServer(t)
	teacher := srv.login("2001")
	lessonID := srv.createLesson(teacher)
	target := fmt.Sprintf("/lessons/%d/attendance", lessonID)
	ann := srv.login("1000001")

	w := srv.do(http.MethodPut, target, map[string]any{"student_number": 1000002, "state": "present"}, ann)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = srv.do(http.MethodPut, target, map[string]any{"student_number": 1000001, "state": "absent"}, ann)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = srv.do(http.MethodPut, target, map[string]any{"student_number": 1000001}, ann)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = srv.do(http.MethodPut, target, map[string]any{"student_number": 1000002, "state": "absent", "reason": "dentist"}, teacher)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var enrollment struct {
		Attendance    string  `json:"attendance"`
		AbsenceReason *string `json:"absence_reason"`
	}
	decodeData(t, w, &enrollment)
	assert.Equal(t, "absent", enrollment.Attendance)
	require.NotNil(t, enrollment.AbsenceReason)
	assert.Equal(t, "dentist", *enrollment.AbsenceReason)

	w = srv.do(http.MethodPut, target, map[string]any{"student_number": 1000001, "state": "absent"}, teacher)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAPI_QRCode(t *testing.T) {
	srv := newTestServer(t)
	teacher := srv.login("2001")
	lessonID := srv.createLesson(teacher)

	w := srv.do(http.MethodGet, fmt.Sprintf("/lessons/%d/qr", lessonID), nil, teacher)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("\x89PNG")))

	w = srv.do(http.MethodGet, "/lessons/999/qr", nil, teacher)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAPI_LoginForm(t *testing.T) {
	srv := newTestServer(t)

	form := url.Values{"username": {"1000001"}, "password": {testPassword}, "next": {"/checkin/3"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	srv.handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/checkin/3", w.Header().Get("Location"))

	form.Set("next", "https://evil.example")
	req = httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w = httptest.NewRecorder()
	srv.handler.ServeHTTP(w, req)
	assert.Equal(t, "/home", w.Header().Get("Location"))

	w = srv.do(http.MethodPost, "/login", map[string]string{"username": "1000001", "password": "wrong-password"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAPI_RegisterAndLogout(t *testing.T) {
	srv := newTestServer(t)

	w := srv.do(http.MethodPost, "/register", map[string]string{"username": "1000002", "password": testPassword}, nil)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = srv.do(http.MethodPost, "/register", map[string]string{"username": "1000002", "password": testPassword}, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = srv.do(http.MethodPost, "/register", map[string]string{"username": "1999999", "password": testPassword}, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = srv.do(http.MethodPost, "/register", map[string]string{"username": "1000004", "password": "short"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	bo := srv.login("1000002")
	w = srv.do(http.MethodGet, "/home", nil, bo)
	require.Equal(t, http.StatusOK, w.Code)
	var home struct {
		Name      string `json:"name"`
		IsTeacher bool   `json:"is_teacher"`
	}
	decodeData(t, w, &home)
	assert.Equal(t, "Bo Jansen", home.Name)
	assert.False(t, home.IsTeacher)

	w = srv.do(http.MethodGet, "/logout", nil, bo)
	assert.Equal(t, http.StatusSeeOther, w.Code)

	w = srv.do(http.MethodGet, "/home", nil, bo)
	assert.Equal(t, http.StatusSeeOther, w.Code)
}

func TestAPI_ClassesAndDirectory(t *testing.T) {
	srv := newTestServer(t)
	teacher := srv.login("2001")

	w := srv.do(http.MethodPost, "/classes/INF1A/students", map[string]string{"student": "Chris Bakker"}, teacher)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = srv.do(http.MethodPost, "/classes/INF1A/students", map[string]string{"student": "Chris Bakker"}, teacher)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = srv.do(http.MethodGet, "/classes/INF1A/students", nil, teacher)
	require.Equal(t, http.StatusOK, w.Code)
	var students []struct {
		StudentNumber uint `json:"student_number"`
	}
	decodeData(t, w, &students)
	assert.Len(t, students, 3)

	w = srv.do(http.MethodDelete, "/classes/INF1A/students?student="+url.QueryEscape("Chris Bakker"), nil, teacher)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = srv.do(http.MethodGet, "/classes/NOPE/students", nil, teacher)
	assert.Equal(t, http.StatusNotFound, w.Code)

	for _, target := range []string{"/classes", "/students", "/teachers", "/subjects", "/lessons/all", "/my-lessons", "/lessons"} {
		w = srv.do(http.MethodGet, target, nil, teacher)
		assert.Equal(t, http.StatusOK, w.Code, target)
	}
}
