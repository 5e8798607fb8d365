package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-shop-api/internal/application/auth"
	"github.com/go-shop-api/internal/domain"
	"github.com/go-shop-api/internal/pkg/validate"
	"github.com/go-shop-api/internal/transport/http/middleware"
)

// AuthHandler handles the verification-code signup/reset flows plus login
// and logout.
type AuthHandler struct {
	svc       auth.Service
	cookieTTL time.Duration
}

// NewAuthHandler wires the auth service; cookieTTL should match the session
// credential's own lifetime so the cookie never outlives the token.
func NewAuthHandler(svc auth.Service, cookieTTL time.Duration) *AuthHandler {
	return &AuthHandler{svc: svc, cookieTTL: cookieTTL}
}

// SignUp escrows the account details and sends a verification code.
// No account exists until the code is confirmed.
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req domain.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err := h.svc.RequestSignupCode(r.Context(), req); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "verification code sent"})
}

// VerifyEmail consumes the signup code, creates the account and starts a session.
func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req auth.ConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	result, err := h.svc.ConfirmSignup(r.Context(), req.Email, req.Code)
	if err != nil {
		httpError(w, err)
		return
	}
	h.setSessionCookie(w, result.Token)
	writeJSON(w, http.StatusCreated, AuthEnvelope{Token: result.Token, User: result.User})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	result, err := h.svc.Login(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	h.setSessionCookie(w, result.Token)
	writeJSON(w, http.StatusOK, AuthEnvelope{Token: result.Token, User: result.User})
}

// Logout clears the session cookie. Credentials are stateless; the server
// keeps nothing to invalidate.
func (h *AuthHandler) Logout(w http.ResponseWriter, _ *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "logged out"})
}

// ForgotPassword escrows the new password and sends a reset code. The
// current password stays valid until the code is confirmed.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req auth.PasswordResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err := h.svc.RequestPasswordResetCode(r.Context(), req); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "password reset code sent"})
}

// VerifyForgotPassword consumes the reset code, applies the escrowed
// password and starts a session.
func (h *AuthHandler) VerifyForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req auth.ConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	result, err := h.svc.ConfirmPasswordReset(r.Context(), req.Email, req.Code)
	if err != nil {
		httpError(w, err)
		return
	}
	h.setSessionCookie(w, result.Token)
	writeJSON(w, http.StatusOK, AuthEnvelope{Token: result.Token, User: result.User})
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cookieTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
