package handlers

import (
	"net/http"

	"github.com/CLDWare/aanwezigheid/config"
	"github.com/CLDWare/aanwezigheid/internal/attendance"
	apiResponses "github.com/CLDWare/aanwezigheid/internal/types"
	models "github.com/CLDWare/aanwezigheid/pkg/db"
	"github.com/CLDWare/aanwezigheid/pkg/logger"
	"github.com/MonkyMars/gecho"
)

// AuthenticationHandler handles login, registration and logout
type AuthenticationHandler struct {
	config  *config.Config
	service *attendance.Service
}

// NewAuthenticationHandler creates a new authentication handler
func NewAuthenticationHandler(cfg *config.Config, service *attendance.Service) *AuthenticationHandler {
	return &AuthenticationHandler{
		config:  cfg,
		service: service,
	}
}

// readCredentials accepts both a json body and a submitted html form
func readCredentials(w http.ResponseWriter, r *http.Request) (apiResponses.Credentials, bool) {
	var creds apiResponses.Credentials
	if isJSON(r) {
		if !decodeJSON(w, r, &creds) {
			return creds, false
		}
	} else {
		if err := r.ParseForm(); err != nil {
			gecho.BadRequest(w).WithMessage(err.Error()).Send()
			return creds, false
		}
		creds.Username = r.PostForm.Get("username")
		creds.Password = r.PostForm.Get("password")
		creds.Next = r.PostForm.Get("next")
	}
	if creds.Next == "" {
		creds.Next = r.URL.Query().Get("next")
	}
	return creds, true
}

func (h *AuthenticationHandler) me(r *http.Request, account models.Account) apiResponses.Me {
	me := apiResponses.Me{
		Username:      account.Username,
		Role:          account.Role.String(),
		IsTeacher:     account.Role.IsTeacher(),
		StudentNumber: account.StudentNumber,
		TeacherID:     account.TeacherID,
	}
	ctx := r.Context()
	if account.StudentNumber != nil {
		if student, err := h.service.Student(ctx, *account.StudentNumber); err == nil {
			me.Name = student.Name
		}
	}
	if account.TeacherID != nil {
		if teacher, err := h.service.Teacher(ctx, *account.TeacherID); err == nil {
			me.Name = teacher.Name
		}
	}
	return me
}

// GetLogin
//
// @Summary		Login required
// @Description	Where unauthenticated browsers are redirected to, echoes the page to return to after POST /login
// @Tags			authentication
// @Produce		json
// @Param			next	query		string	false	"page to return to"
// @Failure		401	{object}	apiResponses.UnauthorizedError
// @Router			/login	[get]
func (h *AuthenticationHandler) GetLogin(w http.ResponseWriter, r *http.Request) {
	next := safeRedirect(r.URL.Query().Get("next"))
	if cookie, err := r.Cookie(h.config.Auth.CookieName); err == nil {
		if _, err := h.service.ResolveSession(r.Context(), cookie.Value); err == nil {
			http.Redirect(w, r, next, http.StatusSeeOther)
			return
		}
	}

	gecho.Unauthorized(w).WithMessage("Login required").WithData(apiResponses.LoginRequired{
		Login: "POST /login",
		Next:  next,
	}).Send()
}

// PostLogin
//
// @Summary		Log in
// @Description	Checks the credentials and sets the session cookie. Form posts are redirected to 'next', json posts get the redirect in the data.
// @Tags			authentication
// @Accept			json
// @Accept			x-www-form-urlencoded
// @Produce		json
// @Param			credentials	body		apiResponses.Credentials	true	"login"
// @Success		200	{object}	apiResponses.BaseResponse{data=apiResponses.LoginSuccess}
// @Success		303
// @Failure		400	{object}	apiResponses.BadRequestError
// @Failure		401	{object}	apiResponses.UnauthorizedError
// @Router			/login	[post]
func (h *AuthenticationHandler) PostLogin(w http.ResponseWriter, r *http.Request) {
	creds, ok := readCredentials(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	account, err := h.service.Authenticate(ctx, creds.Username, creds.Password)
	if err != nil {
		sendServiceError(w, err)
		return
	}

	session, err := h.service.StartSession(ctx, account)
	if err != nil {
		logger.Err(err)
		gecho.InternalServerError(w).WithMessage("Could not create authenticated session").Send()
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.config.Auth.CookieName,
		Value:    session.SessionToken,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   h.config.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	logger.Info("Login of", account.Username, "as", account.Role)

	redirect := safeRedirect(creds.Next)
	if !isJSON(r) {
		http.Redirect(w, r, redirect, http.StatusSeeOther)
		return
	}
	gecho.Success(w).WithData(apiResponses.LoginSuccess{
		Me:       h.me(r, account),
		Redirect: redirect,
	}).Send()
}

// PostRegister
//
// @Summary		Register a student account
// @Description	The username has to be the student number of an existing student
// @Tags			authentication
// @Accept			json
// @Produce		json
// @Param			credentials	body		apiResponses.Credentials	true	"new account"
// @Success		201	{object}	apiResponses.BaseResponse{data=apiResponses.Me}
// @Failure		400	{object}	apiResponses.BadRequestError
// @Failure		404	{object}	apiResponses.NotFoundError
// @Failure		409	{object}	apiResponses.ConflictError
// @Router			/register	[post]
func (h *AuthenticationHandler) PostRegister(w http.ResponseWriter, r *http.Request) {
	creds, ok := readCredentials(w, r)
	if !ok {
		return
	}

	account, err := h.service.Register(r.Context(), creds.Username, creds.Password)
	if err != nil {
		sendServiceError(w, err)
		return
	}
	logger.Info("Registered student account", account.Username)

	if !isJSON(r) {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	gecho.Created(w).WithData(h.me(r, account)).Send()
}

// GetLogout ends the session of the cookie, also when it is already invalid
func (h *AuthenticationHandler) GetLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(h.config.Auth.CookieName); err == nil {
		if err := h.service.EndSession(r.Context(), cookie.Value); err != nil {
			logger.Err("could not end session:", err)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.config.Auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
