package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/heymumma/heymumma/internal/account/domain"
	"github.com/heymumma/heymumma/internal/account/service"
	"github.com/heymumma/heymumma/pkg/heysdk"
	"github.com/heymumma/heymumma/pkg/httpx"
	"github.com/heymumma/heymumma/pkg/slogx"
)

// SignupHandler serves POST /v1/signup.
type SignupHandler struct {
	AccountService *service.AccountService
	SessionService *service.SessionService
}

// ServeHTTP godoc
//
//	@Summary		Create an account
//	@Description	Registers a new account and signs it in. The profile starts empty, so profile_completed is false.
//	@Tags			Accounts
//	@Accept			application/x-www-form-urlencoded
//	@Produce		json
//	@Param			email				formData	string					true	"Email address"
//	@Param			name				formData	string					true	"Display name"
//	@Param			password			formData	string					true	"Password"
//	@Param			confirm_password	formData	string					true	"Must equal password"
//	@Success		201					{object}	heysdk.SessionResponse	"access_token, token_type, expires_in, scope, profile_completed"
//	@Failure		400					{object}	heysdk.APIError			"Missing fields or passwords do not match"
//	@Failure		409					{object}	heysdk.APIError			"Email already exists"
//	@Failure		429					{object}	heysdk.APIError			"Rate limited"
//	@Failure		500					{object}	heysdk.APIError			"Internal server error"
//	@Router			/v1/signup [post].
func (h *SignupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := slogx.FromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		heysdk.ErrInvalidFormBody.WriteError(w)
		return
	}

	email := strings.TrimSpace(r.PostFormValue("email"))
	name := strings.TrimSpace(r.PostFormValue("name"))
	password := r.PostFormValue("password")
	confirm := r.PostFormValue("confirm_password")

	missing := map[string]string{}
	for field, v := range map[string]string{"email": email, "name": name, "password": password} {
		if v == "" {
			missing[field] = "required"
		}
	}
	if len(missing) > 0 {
		heysdk.NewValidationError(missing).WriteError(w)
		return
	}
	if password != confirm {
		heysdk.ErrPasswordMismatch.WriteError(w)
		return
	}

	acct, err := h.AccountService.CreateAccount(r.Context(), email, name, password, domain.ProfileUpdate{})
	if errors.Is(err, service.ErrAccountExists) {
		heysdk.ErrAccountExists.WriteError(w)
		return
	}
	if err != nil {
		log.Error("create account failed", "err", err)
		heysdk.ErrServerError.WriteError(w)
		return
	}

	writeSession(w, r, h.SessionService, acct, http.StatusCreated)
}

func writeSession(w http.ResponseWriter, r *http.Request, sessions *service.SessionService, acct domain.Account, status int) {
	sess, err := sessions.Issue(acct)
	if err != nil {
		slogx.FromContext(r.Context()).Error("issue session failed", "err", err)
		heysdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, status, heysdk.SessionResponse{
		AccessToken:      sess.AccessToken,
		TokenType:        sess.TokenType,
		ExpiresIn:        sess.ExpiresIn,
		Scope:            sess.Scope,
		ProfileCompleted: sess.ProfileCompleted,
	})
}
