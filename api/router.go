package api

import (
	"net/http"

	"github.com/MonkyMars/gecho"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/CLDWare/aanwezigheid/config"
	_ "github.com/CLDWare/aanwezigheid/docs"
	"github.com/CLDWare/aanwezigheid/internal/attendance"
	"github.com/CLDWare/aanwezigheid/internal/handlers"
	"github.com/CLDWare/aanwezigheid/internal/highscore"
	"github.com/CLDWare/aanwezigheid/internal/middleware"
)

// API holds the API dependencies of the attendance server
type API struct {
	authMiddleware        middleware.AuthenticationMiddleware
	versionHandler        *handlers.VersionHandler
	authenticationHandler *handlers.AuthenticationHandler
	homeHandler           *handlers.HomeHandler
	lessonHandler         *handlers.LessonHandler
	checkInHandler        *handlers.CheckInHandler
	classHandler          *handlers.ClassHandler
	directoryHandler      *handlers.DirectoryHandler
	websocketHandler      *handlers.WebsocketHandler
}

// NewAPI creates a new API instance
func NewAPI(cfg *config.Config, service *attendance.Service) *API {
	websocketHandler := handlers.NewWebsocketHandler(cfg, service)
	authenticationHandler := handlers.NewAuthenticationHandler(cfg, service)
	return &API{
		authMiddleware:        middleware.AuthenticationMiddleware{Config: cfg, Service: service},
		versionHandler:        handlers.NewVersionHandler(cfg),
		authenticationHandler: authenticationHandler,
		homeHandler:           handlers.NewHomeHandler(authenticationHandler, service),
		lessonHandler:         handlers.NewLessonHandler(cfg, service, websocketHandler),
		checkInHandler:        handlers.NewCheckInHandler(cfg, service, websocketHandler),
		classHandler:          handlers.NewClassHandler(service),
		directoryHandler:      handlers.NewDirectoryHandler(service),
		websocketHandler:      websocketHandler,
	}
}

// CreateMux creates and configures the HTTP mux
func (api *API) CreateMux() *http.ServeMux {
	mux := http.NewServeMux()
	api.setupRoutes(mux)
	return mux
}

// setupRoutes configures all the routes.
func (api *API) setupRoutes(mux *http.ServeMux) {
	auth := api.authMiddleware.Required
	teacher := api.authMiddleware.TeacherOnly

	// Public routes
	mux.HandleFunc("GET /v", api.versionHandler.GetVersion)
	mux.HandleFunc("GET /login", api.authenticationHandler.GetLogin)
	mux.HandleFunc("POST /login", api.authenticationHandler.PostLogin)
	mux.HandleFunc("POST /register", api.authenticationHandler.PostRegister)
	mux.HandleFunc("GET /logout", api.authenticationHandler.GetLogout)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.Handle("GET /swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Any logged in user
	mux.HandleFunc("GET /{$}", auth(api.homeHandler.GetRoot))
	mux.HandleFunc("GET /home", auth(api.homeHandler.GetHome))
	mux.HandleFunc("GET /lessons", auth(api.lessonHandler.GetLessons))
	mux.HandleFunc("GET /my-lessons", auth(api.lessonHandler.GetMyLessons))
	mux.HandleFunc("GET /checkin/{lessonId}", auth(api.checkInHandler.GetCheckIn))
	mux.HandleFunc("POST /checkin/{lessonId}", auth(api.checkInHandler.PostCheckIn))
	mux.HandleFunc("PUT /lessons/{id}/attendance", auth(api.lessonHandler.PutAttendance))

	// Teachers only
	mux.HandleFunc("GET /lessons/all", teacher(api.lessonHandler.GetAllLessons))
	mux.HandleFunc("POST /lessons", teacher(api.lessonHandler.PostLesson))
	mux.HandleFunc("PUT /lessons/{id}/entry-state", teacher(api.lessonHandler.PutEntryState))
	mux.HandleFunc("GET /lessons/{id}/roster", teacher(api.lessonHandler.GetRoster))
	mux.HandleFunc("GET /lessons/{id}/qr", teacher(api.lessonHandler.GetQR))
	mux.HandleFunc("GET /lessons/{id}/live", teacher(api.websocketHandler.GetLive))
	mux.HandleFunc("GET /classes", teacher(api.classHandler.GetClasses))
	mux.HandleFunc("GET /classes/{code}/students", teacher(api.classHandler.GetClassStudents))
	mux.HandleFunc("POST /classes/{code}/students", teacher(api.classHandler.PostClassStudent))
	mux.HandleFunc("DELETE /classes/{code}/students", teacher(api.classHandler.DeleteClassStudent))
	mux.HandleFunc("GET /students", teacher(api.directoryHandler.GetStudents))
	mux.HandleFunc("GET /teachers", teacher(api.directoryHandler.GetTeachers))
	mux.HandleFunc("GET /subjects", teacher(api.directoryHandler.GetSubjects))

	// fallback route - must be last because it matches all routes.
	mux.HandleFunc("/", fallBack)
}

// HighscoreAPI holds the dependencies of the highscore server
type HighscoreAPI struct {
	highscoreHandler *handlers.HighscoreHandler
}

func NewHighscoreAPI(service *highscore.Service) *HighscoreAPI {
	return &HighscoreAPI{
		highscoreHandler: handlers.NewHighscoreHandler(service),
	}
}

// CreateMux creates the mux of the highscore server
func (api *HighscoreAPI) CreateMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /highscores", api.highscoreHandler.GetGames)
	mux.HandleFunc("GET /highscores/{game}", api.highscoreHandler.GetScores)
	mux.HandleFunc("POST /highscores/{game}", api.highscoreHandler.PostScore)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("/", fallBack)
	return mux
}

// ApplyMiddleware applies middleware to a handler.
// allowedOrigins may send credentialed cross-origin requests, without any the handler is public.
func ApplyMiddleware(handler http.Handler, allowedOrigins ...string) http.Handler {
	return middleware.LoggingMiddleware(
		middleware.CORSMiddleware(allowedOrigins, handler),
	)
}

func fallBack(w http.ResponseWriter, r *http.Request) {
	gecho.NotFound(w).Send()
}
