package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/vncsmyrnk/votemap/internal/core/ports"
)

type AuthHandler struct {
	authService    ports.AuthService
	tokenTTL       time.Duration
	cookieDomain   string
	cookieSameSite http.SameSite
	logger         *slog.Logger
}

func NewAuthHandler(authService ports.AuthService, tokenTTL time.Duration, cookieDomain string, cookieSameSite http.SameSite, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		tokenTTL:       tokenTTL,
		cookieDomain:   cookieDomain,
		cookieSameSite: cookieSameSite,
		logger:         orDiscard(logger),
	}
}

type requestCodeRequest struct {
	PhoneNumber string `json:"phone_number"`
}

// RequestCode godoc
// @Summary      Sends a one-time login code
// @Tags         auth
// @Accept       json
// @Success      202
// @Failure      400
// @Router       /auth/otp/request [post]
func (h *AuthHandler) RequestCode(w http.ResponseWriter, r *http.Request) {
	var req requestCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.authService.RequestCode(r.Context(), req.PhoneNumber); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "sent"})
}

type verifyCodeRequest struct {
	PhoneNumber string `json:"phone_number"`
	Code        string `json:"code"`
	DeviceID    string `json:"device_id"`
}

// VerifyCode godoc
// @Summary      Exchanges a one-time code for an access token
// @Description  Creates the user on first login and hands the device's anonymous votes over to it.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Success      200
// @Failure      400
// @Failure      401
// @Router       /auth/otp/verify [post]
func (h *AuthHandler) VerifyCode(w http.ResponseWriter, r *http.Request) {
	var req verifyCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.DeviceID == "" {
		req.DeviceID = r.Header.Get(deviceIDHeader)
	}

	result, err := h.authService.VerifyCode(r.Context(), ports.VerifyCodeInput{
		PhoneNumber: req.PhoneNumber,
		Code:        req.Code,
		DeviceID:    req.DeviceID,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	h.setAccessTokenCookie(w, result.AccessToken)
	writeJSON(w, http.StatusOK, result)
}

// Logout godoc
// @Summary      Logs the authenticated user out
// @Description  Clears the access token cookie
// @Tags         auth
// @Success      200
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{Name: accessTokenCookie, MaxAge: -1, Path: "/", Domain: h.cookieDomain})
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *AuthHandler) setAccessTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     accessTokenCookie,
		Value:    token,
		Path:     "/",
		Domain:   h.cookieDomain,
		HttpOnly: true,
		Secure:   true,
		SameSite: h.cookieSameSite,
		MaxAge:   int(h.tokenTTL.Seconds()),
	})
}
