package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/heymumma/heymumma/internal/account/service"
	"github.com/heymumma/heymumma/pkg/heysdk"
	"github.com/heymumma/heymumma/pkg/slogx"
)

// LoginHandler serves POST /v1/login.
type LoginHandler struct {
	AccountService *service.AccountService
	SessionService *service.SessionService
}

// ServeHTTP godoc
//
//	@Summary		Sign in
//	@Description	Checks email and password and returns a session token. When profile_completed is false the client should send the user to profile setup.
//	@Tags			Accounts
//	@Accept			application/x-www-form-urlencoded
//	@Produce		json
//	@Param			email		formData	string					true	"Email address"
//	@Param			password	formData	string					true	"Password"
//	@Success		200			{object}	heysdk.SessionResponse	"access_token, token_type, expires_in, scope, profile_completed"
//	@Failure		400			{object}	heysdk.APIError			"Malformed form body"
//	@Failure		401			{object}	heysdk.APIError			"Invalid credentials"
//	@Failure		429			{object}	heysdk.APIError			"Rate limited"
//	@Failure		500			{object}	heysdk.APIError			"Internal server error"
//	@Router			/v1/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		heysdk.ErrInvalidFormBody.WriteError(w)
		return
	}

	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")
	if email == "" {
		heysdk.ErrInvalidCredentials.WriteError(w)
		return
	}

	acct, err := h.AccountService.Authenticate(r.Context(), email, password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		slogx.FromContext(r.Context()).Info("login rejected", "email", email)
		heysdk.ErrInvalidCredentials.WriteError(w)
		return
	}
	if err != nil {
		slogx.FromContext(r.Context()).Error("authenticate failed", "err", err)
		heysdk.ErrServerError.WriteError(w)
		return
	}

	writeSession(w, r, h.SessionService, acct, http.StatusOK)
}
