// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/linkshelf/internal/platform/constants"
	requestutil "github.com/taibuivan/linkshelf/internal/platform/request"
	"github.com/taibuivan/linkshelf/internal/platform/respond"
)

// # Definitions & Constructors

// Handler implements the /api/auth endpoints.
type Handler struct {
	service       *Service
	secureCookies bool
}

// NewHandler constructs an auth [Handler]. secureCookies marks the refresh
// cookie Secure and should be true outside development.
func NewHandler(service *Service, secureCookies bool) *Handler {
	return &Handler{service: service, secureCookies: secureCookies}
}

// Routes returns a [chi.Router] with the authentication endpoints.
//
// # Endpoints
//   - POST /signup, /login, /refresh, /logout : public
//   - GET /me, POST /change-password         : behind authenticate
func (handler *Handler) Routes(authenticate func(http.Handler) http.Handler) chi.Router {
	router := chi.NewRouter()

	router.Post("/signup", handler.signup)
	router.Post("/login", handler.login)
	router.Post("/refresh", handler.refresh)
	router.Post("/logout", handler.logout)

	router.Group(func(protected chi.Router) {
		protected.Use(authenticate)
		protected.Get("/me", handler.me)
		protected.Post("/change-password", handler.changePassword)
	})

	return router
}

/*
POST /api/auth/signup.

Request (Body):
  - username, email, password

Response:
  - 201: {user, accessToken} and the refresh cookie
  - 400: Validation error or duplicate identity
*/
func (handler *Handler) signup(writer http.ResponseWriter, request *http.Request) {
	var input SignupInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.service.Signup(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.setRefreshCookie(writer, session.RefreshToken, session.RefreshExpiresAt)
	respond.Created(writer, "User registered successfully", respond.Fields{
		constants.FieldUser:        session.User,
		constants.FieldAccessToken: session.AccessToken,
	})
}

/*
POST /api/auth/login.

Response:
  - 200: {user, accessToken} and the refresh cookie
  - 401: Invalid credentials
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input LoginInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.service.Login(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.setRefreshCookie(writer, session.RefreshToken, session.RefreshExpiresAt)
	respond.Success(writer, http.StatusOK, "Login successful", respond.Fields{
		constants.FieldUser:        session.User,
		constants.FieldAccessToken: session.AccessToken,
	})
}

/*
POST /api/auth/refresh.

Description: Reads the refresh token from the http-only cookie and returns a
new access token. The cookie is left untouched.
*/
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	var refreshToken string
	if cookie, err := request.Cookie(constants.RefreshTokenCookieName); err == nil {
		refreshToken = cookie.Value
	}

	accessToken, err := handler.service.Refresh(request.Context(), refreshToken)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, respond.Fields{constants.FieldAccessToken: accessToken})
}

/*
POST /api/auth/logout.

Description: Clears the refresh cookie. There is no server-side session.
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	handler.clearRefreshCookie(writer)
	respond.Success(writer, http.StatusOK, "Logged out successfully", nil)
}

// GET /api/auth/me returns the authenticated caller's profile.
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.Me(request.Context(), identity.ID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, respond.Fields{constants.FieldUser: user})
}

// POST /api/auth/change-password replaces the caller's password.
func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input ChangePasswordInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.ChangePassword(request.Context(), identity, input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Success(writer, http.StatusOK, "Password updated successfully", nil)
}

// # Cookie Management

func (handler *Handler) setRefreshCookie(writer http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Value:    token,
		Path:     constants.RefreshTokenCookiePath,
		Expires:  expiresAt,
		MaxAge:   int(time.Until(expiresAt).Seconds()),
		Secure:   handler.secureCookies,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

func (handler *Handler) clearRefreshCookie(writer http.ResponseWriter) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Value:    "",
		Path:     constants.RefreshTokenCookiePath,
		MaxAge:   -1,
		Secure:   handler.secureCookies,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}
