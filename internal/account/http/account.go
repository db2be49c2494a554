package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/heymumma/heymumma/internal/account/domain"
	"github.com/heymumma/heymumma/internal/account/service"
	"github.com/heymumma/heymumma/internal/account/store"
	"github.com/heymumma/heymumma/internal/guide"
	"github.com/heymumma/heymumma/pkg/heysdk"
	"github.com/heymumma/heymumma/pkg/httpx"
	"github.com/heymumma/heymumma/pkg/slogx"
)

// AccountHandler serves the signed-in account's own resources.
type AccountHandler struct {
	AccountService *service.AccountService
	Now            func() time.Time
}

// load fetches the account named by the session. It writes the error
// response itself and reports false when there is nothing to serve.
func (h *AccountHandler) load(w http.ResponseWriter, r *http.Request) (domain.Account, bool) {
	email, ok := httpx.EmailFromContext(r.Context())
	if !ok {
		heysdk.ErrInvalidToken.WriteError(w)
		return domain.Account{}, false
	}

	acct, err := h.AccountService.GetAccount(r.Context(), email)
	if errors.Is(err, store.ErrNotFound) {
		heysdk.ErrUserNotFound.WriteError(w)
		return domain.Account{}, false
	}
	if err != nil {
		slogx.FromContext(r.Context()).Error("load account failed", "err", err)
		heysdk.ErrServerError.WriteError(w)
		return domain.Account{}, false
	}
	return acct, true
}

// HandleMe godoc
//
//	@Summary		Get my account
//	@Description	Returns the signed-in account without its password. Requires 'profile:read' scope.
//	@Tags			Profile
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	heysdk.AccountResponse	"Account record"
//	@Failure		401	{object}	heysdk.APIError			"Invalid or missing access token"
//	@Failure		404	{object}	heysdk.APIError			"User not found"
//	@Failure		500	{object}	heysdk.APIError			"Internal server error"
//	@Router			/v1/me [get].
func (h *AccountHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	acct, ok := h.load(w, r)
	if !ok {
		return
	}
	httpx.WriteJSON(w, http.StatusOK, accountResponse(acct))
}

// HandleUpdateProfile godoc
//
//	@Summary		Update my profile
//	@Description	Sets any of age, height, weight, pregnancies and due_date. Omitted fields are left as they are. Once all five are present the profile counts as completed. Requires 'profile:write' scope.
//	@Tags			Profile
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		heysdk.ProfileRequest	true	"Fields to change"
//	@Success		200		{object}	heysdk.AccountResponse	"Updated account"
//	@Failure		400		{object}	heysdk.APIError			"Malformed body or out of range values"
//	@Failure		401		{object}	heysdk.APIError			"Invalid or missing access token"
//	@Failure		404		{object}	heysdk.APIError			"User not found"
//	@Failure		500		{object}	heysdk.APIError			"Internal server error"
//	@Router			/v1/me/profile [patch].
func (h *AccountHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	email, ok := httpx.EmailFromContext(ctx)
	if !ok {
		heysdk.ErrInvalidToken.WriteError(w)
		return
	}

	var req heysdk.ProfileRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		heysdk.ErrInvalidJSONBody.WriteError(w)
		return
	}

	update, problems := profileUpdate(req)
	if len(problems) > 0 {
		heysdk.NewValidationError(problems).WriteError(w)
		return
	}

	acct, err := h.AccountService.UpdateProfile(ctx, email, update)
	if errors.Is(err, store.ErrNotFound) {
		heysdk.ErrUserNotFound.WriteError(w)
		return
	}
	if err != nil {
		slogx.FromContext(ctx).Error("update profile failed", "err", err)
		heysdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, accountResponse(acct))
}

// HandleProfileStatus godoc
//
//	@Summary		Is my profile complete
//	@Description	Reports whether all five profile fields are set. Requires 'profile:read' scope.
//	@Tags			Profile
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	heysdk.ProfileStatusResponse	"profile_completed"
//	@Failure		401	{object}	heysdk.APIError					"Invalid or missing access token"
//	@Failure		500	{object}	heysdk.APIError					"Internal server error"
//	@Router			/v1/me/profile/status [get].
func (h *AccountHandler) HandleProfileStatus(w http.ResponseWriter, r *http.Request) {
	email, ok := httpx.EmailFromContext(r.Context())
	if !ok {
		heysdk.ErrInvalidToken.WriteError(w)
		return
	}

	done, err := h.AccountService.IsProfileComplete(r.Context(), email)
	if err != nil {
		slogx.FromContext(r.Context()).Error("profile status failed", "err", err)
		heysdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, heysdk.ProfileStatusResponse{ProfileCompleted: done})
}

// HandlePregnancy godoc
//
//	@Summary		Get my pregnancy progress
//	@Description	Derives weeks pregnant, trimester and days remaining from the due date, together with that week's guide. Requires 'profile:read' scope.
//	@Tags			Profile
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	heysdk.PregnancyResponse	"Progress and guide"
//	@Failure		401	{object}	heysdk.APIError				"Invalid or missing access token"
//	@Failure		404	{object}	heysdk.APIError				"User not found"
//	@Failure		409	{object}	heysdk.APIError				"No due date on the profile"
//	@Router			/v1/me/pregnancy [get].
func (h *AccountHandler) HandlePregnancy(w http.ResponseWriter, r *http.Request) {
	acct, ok := h.load(w, r)
	if !ok {
		return
	}

	due, ok := acct.DueDateTime()
	if !ok {
		heysdk.ErrDueDateMissing.WriteError(w)
		return
	}

	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	p := guide.ProgressAt(due, now())
	week, _ := guide.WeekGuide(p.GuideWeek())

	httpx.WriteJSON(w, http.StatusOK, heysdk.PregnancyResponse{
		DueDate:       p.DueDate,
		DaysPregnant:  p.DaysPregnant,
		WeeksPregnant: p.WeeksPregnant,
		DaysRemaining: p.DaysRemaining,
		Trimester:     p.Trimester,
		PercentDone:   p.PercentDone,
		Guide:         guideWeek(week),
	})
}
