package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/yokohama-dev/tsukuba/internal/checkin/domain"
	"github.com/yokohama-dev/tsukuba/internal/checkin/service"
	"github.com/yokohama-dev/tsukuba/internal/checkin/store"
	"github.com/yokohama-dev/tsukuba/pkg/checkinsdk"
	"github.com/yokohama-dev/tsukuba/pkg/httpx"
	"github.com/yokohama-dev/tsukuba/pkg/slogx"
)

type RegisterHandler struct {
	UserService    *service.UserService
	SessionService *service.SessionService
}

// ServeHTTP creates an account and issues its credential and session cookie.
//
//	@Summary		Register an account
//	@Description	Creates the profile, mints the one-time bearer credential and
//	@Description	sets the session cookie.
//	@Tags			UsersMe
//	@Accept			json
//	@Produce		json
//	@Param			request	body		checkinsdk.RegisterRequest	true	"profile fields"
//	@Success		201		{object}	checkinsdk.RegisterResponse
//	@Failure		400		{object}	checkinsdk.ErrorResponse	"invalid fields or screen name already used"
//	@Router			/users/me [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req checkinsdk.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request body", "")
		return
	}

	user, credential, err := h.UserService.Register(ctx, service.RegisterParams{
		ScreenName:   req.ScreenName,
		Name:         req.Name,
		Message:      req.Message,
		Visibility:   domain.Visibility(req.Visibility),
		Listed:       req.Listed,
		DisplaysPast: req.DisplaysPast,
	})
	if err != nil {
		writeUserError(w, log, err)
		return
	}

	session, err := h.SessionService.IssueSession(user)
	if err != nil {
		log.Error("failed to issue session", "user_id", user.ID, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}
	httpx.SetSessionCookie(w, r, session)

	httpx.WriteJSON(w, http.StatusCreated, checkinsdk.RegisterResponse{
		User:    toUserResponse(user),
		IDToken: credential,
	})
}

type MeHandler struct {
	UserService *service.UserService
}

// ServeHTTP returns the authenticated user's own profile.
//
//	@Summary	Get own profile
//	@Tags		UsersMe
//	@Produce	json
//	@Success	200	{object}	checkinsdk.User
//	@Failure	401	{object}	checkinsdk.ErrorResponse
//	@Failure	404	{object}	checkinsdk.ErrorResponse
//	@Router		/users/me [get].
func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	user, err := h.UserService.GetUserByID(ctx, httpx.UserIDFromContext(ctx))
	if errors.Is(err, store.ErrNotFound) {
		httpx.WriteError(w, http.StatusNotFound, "User not found", checkinsdk.ErrorTypeUserNotFound)
		return
	}
	if err != nil {
		log.Error("failed to load user", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

type UpdateMeHandler struct {
	UserService *service.UserService
}

// ServeHTTP applies a partial update to the authenticated user's profile.
//
//	@Summary	Update own profile
//	@Tags		UsersMe
//	@Accept		json
//	@Produce	json
//	@Param		request	body		checkinsdk.UpdateUserRequest	true	"fields to change"
//	@Success	200		{object}	checkinsdk.User
//	@Failure	400		{object}	checkinsdk.ErrorResponse	"invalid fields or screen name already used"
//	@Failure	401		{object}	checkinsdk.ErrorResponse
//	@Router		/users/me [patch].
func (h *UpdateMeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req checkinsdk.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request body", "")
		return
	}

	upd := domain.UserUpdate{
		ScreenName:   req.ScreenName,
		Name:         req.Name,
		Message:      req.Message,
		Listed:       req.Listed,
		DisplaysPast: req.DisplaysPast,
	}
	if req.Visibility != nil {
		visibility := domain.Visibility(*req.Visibility)
		upd.Visibility = &visibility
	}

	user, err := h.UserService.Update(ctx, httpx.UserIDFromContext(ctx), upd)
	if err != nil {
		writeUserError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

type RotateTokenHandler struct {
	UserService    *service.UserService
	SessionService *service.SessionService
}

// ServeHTTP reissues the bearer credential and refreshes the session cookie.
//
//	@Summary	Rotate credential
//	@Tags		UsersMe
//	@Produce	plain
//	@Success	200	{string}	string	"the new credential"
//	@Failure	401	{object}	checkinsdk.ErrorResponse
//	@Router		/users/me/token [get].
func (h *RotateTokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromContext(ctx)

	credential, err := h.UserService.RotateCredential(ctx, userID)
	if err != nil {
		log.Error("failed to rotate credential", "user_id", userID, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}

	user, err := h.UserService.GetUserByID(ctx, userID)
	if err != nil {
		log.Error("failed to load user", "user_id", userID, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}

	session, err := h.SessionService.IssueSession(user)
	if err != nil {
		log.Error("failed to issue session", "user_id", userID, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}
	httpx.SetSessionCookie(w, r, session)

	httpx.NoCache(w)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(credential))
}

type SigninHandler struct {
	UserService    *service.UserService
	SessionService *service.SessionService
}

// ServeHTTP exchanges a bearer credential for a session cookie.
//
//	@Summary	Sign in
//	@Tags		UsersMe
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	checkinsdk.User
//	@Failure	401	{object}	checkinsdk.ErrorResponse
//	@Router		/users/me/signin [post].
func (h *SigninHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	credential := httpx.BearerCredential(r)
	userID, err := h.SessionService.VerifyCredential(ctx, credential)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredential) {
			httpx.WriteError(w, http.StatusUnauthorized, "Invalid token", "")
			return
		}
		log.Error("failed to verify credential", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}

	user, err := h.UserService.GetUserByID(ctx, userID)
	if err != nil {
		log.Error("failed to load user", "user_id", userID, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}

	session, err := h.SessionService.IssueSession(user)
	if err != nil {
		log.Error("failed to issue session", "user_id", userID, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}
	httpx.SetSessionCookie(w, r, session)

	httpx.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

// SignoutHandler clears the session cookie.
//
//	@Summary	Sign out
//	@Tags		UsersMe
//	@Success	204
//	@Router		/users/me/signout [post].
func SignoutHandler(w http.ResponseWriter, r *http.Request) {
	httpx.ClearSessionCookie(w, r)
	w.WriteHeader(http.StatusNoContent)
}

// writeUserError maps user-service errors onto the wire taxonomy.
func writeUserError(w http.ResponseWriter, log interface{ Error(string, ...any) }, err error) {
	switch {
	case errors.Is(err, service.ErrScreenNameTaken):
		httpx.WriteError(w, http.StatusBadRequest,
			"The specified ID already used", checkinsdk.ErrorTypeScreenNameAlreadyUsed)
	case errors.Is(err, service.ErrInvalidScreenName):
		httpx.WriteError(w, http.StatusBadRequest,
			"Invalid screen name", checkinsdk.ErrorTypeInvalidScreenName)
	case errors.Is(err, service.ErrInvalidVisibility):
		httpx.WriteError(w, http.StatusBadRequest, "Invalid visibility", "")
	case errors.Is(err, store.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "User not found", checkinsdk.ErrorTypeUserNotFound)
	default:
		log.Error("user operation failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error", "")
	}
}
