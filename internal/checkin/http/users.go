package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/yokohama-dev/tsukuba/internal/checkin/domain"
	"github.com/yokohama-dev/tsukuba/internal/checkin/service"
	"github.com/yokohama-dev/tsukuba/internal/checkin/store"
	"github.com/yokohama-dev/tsukuba/pkg/checkinsdk"
	"github.com/yokohama-dev/tsukuba/pkg/httpx"
	"github.com/yokohama-dev/tsukuba/pkg/netx"
	"github.com/yokohama-dev/tsukuba/pkg/slogx"
)

type UsersListHandler struct {
	UserService    *service.UserService
	CheckinService *service.CheckinService
}

// ServeHTTP returns the public user directory.
//
//	@Summary		List users
//	@Description	Returns listed profiles visible from the caller's network origin,
//	@Description	each with its current presence status.
//	@Tags			Users
//	@Produce		json
//	@Success		200	{array}	checkinsdk.DirectoryEntry
//	@Router			/users [get].
func (h *UsersListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	users, err := h.UserService.ListUsers(ctx)
	if err != nil {
		log.Error("failed to list users", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}

	viewer := service.Viewer{
		Internal: h.CheckinService.Bucketer.IsInternal(netx.ClientIP(r)),
	}

	now := time.Now()
	entries := make([]checkinsdk.DirectoryEntry, 0, len(users))
	for _, user := range users {
		if !user.Listed || !service.VisibleTo(user, viewer) {
			continue
		}

		latest, ok, err := h.CheckinService.Latest(ctx, user.ID)
		if err != nil {
			log.Error("failed to load latest checkin", "user_id", user.ID, "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "Internal server error", "")
			return
		}

		entries = append(entries, checkinsdk.DirectoryEntry{
			User:   toUserResponse(user),
			Status: h.CheckinService.StatusOf(latest, ok, now),
		})
	}

	httpx.WriteJSON(w, http.StatusOK, entries)
}

type UserProfileHandler struct {
	UserService    *service.UserService
	CheckinService *service.CheckinService
}

// ServeHTTP returns a profile with its visibility-filtered history.
//
//	@Summary		Get a user profile
//	@Description	Returns the profile, its visible check-in buckets and aggregate
//	@Description	summary. The authenticated owner bypasses all visibility checks.
//	@Tags			Users
//	@Produce		json
//	@Param			atScreenName	path		string	true	"screen name prefixed with @"
//	@Success		200				{object}	checkinsdk.Profile
//	@Failure		403				{object}	checkinsdk.ErrorResponse	"profile not visible to this viewer"
//	@Failure		404				{object}	checkinsdk.ErrorResponse	"unknown screen name"
//	@Router			/users/{atScreenName} [get].
func (h *UserProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	atScreenName := r.PathValue("atScreenName")
	screenName, ok := strings.CutPrefix(atScreenName, "@")
	if !ok || !service.ValidScreenName(screenName) {
		httpx.WriteError(w, http.StatusNotFound, "User not found", checkinsdk.ErrorTypeUserNotFound)
		return
	}

	user, err := h.UserService.GetUserByScreenName(ctx, screenName)
	if errors.Is(err, store.ErrNotFound) {
		httpx.WriteError(w, http.StatusNotFound, "User not found", checkinsdk.ErrorTypeUserNotFound)
		return
	}
	if err != nil {
		log.Error("failed to load user", "screen_name", screenName, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}

	viewer := service.Viewer{
		UserID:   httpx.UserIDFromContext(ctx),
		Internal: h.CheckinService.Bucketer.IsInternal(netx.ClientIP(r)),
	}
	if !service.VisibleTo(user, viewer) {
		httpx.WriteError(w, http.StatusForbidden, "Forbidden", checkinsdk.ErrorTypeForbidden)
		return
	}

	history, err := h.CheckinService.History(ctx, user.ID)
	if err != nil {
		log.Error("failed to load checkins", "user_id", user.ID, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}

	now := time.Now()
	current := h.CheckinService.Bucketer.KeyAt(now)
	visible := service.FilterCheckins(user, viewer, history, current)

	checkins := make([]checkinsdk.Checkin, 0, len(visible))
	for _, row := range visible {
		checkins = append(checkins, toCheckinResponse(row))
	}

	summary := h.CheckinService.Summarize(visible, now)

	httpx.WriteJSON(w, http.StatusOK, checkinsdk.Profile{
		User:     toUserResponse(user),
		Checkins: checkins,
		Summary: checkinsdk.Summary{
			MonthHours: summary.MonthHours,
			MonthDays:  summary.MonthDays,
			YearHours:  summary.YearHours,
			YearDays:   summary.YearDays,
			Status:     summary.Status,
			UpdatedAt:  summary.UpdatedAt,
		},
	})
}

func toUserResponse(u domain.User) checkinsdk.User {
	return checkinsdk.User{
		ID:           u.ID,
		ScreenName:   u.ScreenName,
		Name:         u.Name,
		Message:      u.Message,
		Visibility:   string(u.Visibility),
		Listed:       u.Listed,
		DisplaysPast: u.DisplaysPast,
	}
}

func toCheckinResponse(c domain.Checkin) checkinsdk.Checkin {
	return checkinsdk.Checkin{
		Year:       c.Year,
		Month:      c.Month,
		Day:        c.Day,
		Hours:      c.Hours,
		Count:      c.Count,
		LocationID: c.LocationID,
		UpdatedAt:  c.UpdatedAt,
	}
}
