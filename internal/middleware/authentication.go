package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/CLDWare/aanwezigheid/config"
	"github.com/CLDWare/aanwezigheid/internal/attendance"
	contextkeys "github.com/CLDWare/aanwezigheid/internal/contextKeys"
	models "github.com/CLDWare/aanwezigheid/pkg/db"
	"github.com/CLDWare/aanwezigheid/pkg/logger"
	"github.com/MonkyMars/gecho"
)

type AuthenticationMiddleware struct {
	Config  *config.Config
	Service *attendance.Service
}

// loginRedirect sends the browser to the login page, remembering where it wanted to go.
// A student scanning a check-in QR code before logging in ends up back at the check-in.
func loginRedirect(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/login?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusSeeOther)
}

// AuthenticationMiddleware.Required checks the session cookie and sets contextkeys.AuthSessionKey
// and contextkeys.AuthUserKey on the request context. Requests without a valid session are redirected to /login.
func (mw AuthenticationMiddleware) Required(next func(w http.ResponseWriter, r *http.Request)) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(mw.Config.Auth.CookieName)
		if err == http.ErrNoCookie {
			loginRedirect(w, r)
			return
		} else if err != nil {
			gecho.InternalServerError(w).Send()
			return
		}
		ctx := r.Context()

		session, err := mw.Service.ResolveSession(ctx, cookie.Value)
		if errors.Is(err, attendance.ErrUnauthorized) {
			http.SetCookie(w, &http.Cookie{Name: mw.Config.Auth.CookieName, Path: "/", MaxAge: -1})
			loginRedirect(w, r)
			return
		} else if err != nil {
			logger.Err("could not resolve session:", err)
			gecho.InternalServerError(w).Send()
			return
		}

		ctx = context.WithValue(ctx, contextkeys.AuthSessionKey, session)
		ctx = context.WithValue(ctx, contextkeys.AuthUserKey, session.Account)

		next(w, r.WithContext(ctx))
	}
}

// TeacherOnly rejects every account that is not a teacher, it has to run inside Required
func (mw AuthenticationMiddleware) TeacherOnly(next func(w http.ResponseWriter, r *http.Request)) func(w http.ResponseWriter, r *http.Request) {
	return mw.Required(func(w http.ResponseWriter, r *http.Request) {
		account, ok := r.Context().Value(contextkeys.AuthUserKey).(models.Account)
		if !ok {
			gecho.InternalServerError(w).Send()
			return
		}
		if !account.Role.IsTeacher() {
			gecho.Forbidden(w).WithMessage("Only teachers can do this").Send()
			return
		}
		next(w, r)
	})
}
