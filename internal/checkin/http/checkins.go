package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/yokohama-dev/tsukuba/internal/checkin/service"
	"github.com/yokohama-dev/tsukuba/pkg/checkinsdk"
	"github.com/yokohama-dev/tsukuba/pkg/httpx"
	"github.com/yokohama-dev/tsukuba/pkg/netx"
	"github.com/yokohama-dev/tsukuba/pkg/slogx"
)

type CheckinsHandler struct {
	CheckinService *service.CheckinService
}

// ServeHTTP records one presence signal for the authenticated user.
//
//	@Summary		Record a presence signal
//	@Description	Collapses repeated signals within the same hour and location class
//	@Description	into a single bucket with an incremented count.
//	@Tags			Checkins
//	@Security		BearerAuth
//	@Produce		json
//	@Success		201	{object}	checkinsdk.CheckinResponse	"resulting bucket count"
//	@Failure		401	{object}	checkinsdk.ErrorResponse	"missing or invalid credential"
//	@Failure		429	{object}	checkinsdk.ErrorResponse	"hourly signal limit reached"
//	@Router			/checkins [post].
func (h *CheckinsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromContext(ctx)
	if userID == "" {
		httpx.WriteError(w, http.StatusUnauthorized, "Token not found", "")
		return
	}

	origin := netx.ClientIP(r)

	count, err := h.CheckinService.Record(ctx, userID, origin)
	if errors.Is(err, service.ErrRateLimited) {
		httpx.WriteError(w, http.StatusTooManyRequests,
			fmt.Sprintf("Rate limit exceeded: %d", h.CheckinService.Limit()), "")
		return
	}
	if err != nil {
		log.Error("failed to record checkin", "user_id", userID, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, checkinsdk.CheckinResponse{Count: count})
}
