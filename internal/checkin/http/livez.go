package http

import (
	"net/http"
	"time"

	"github.com/yokohama-dev/tsukuba/pkg/checkinsdk"
	"github.com/yokohama-dev/tsukuba/pkg/httpx"
)

// LivezHandler reports that the process is up. It consults nothing beyond the
// process itself; readiness of the store is /readyz territory.
//
//	@Summary		Liveness probe
//	@Description	Reports process uptime and build version. Returns 200 as long as the binary is serving requests.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	checkinsdk.HealthResponse
//	@Router			/livez [get].
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, checkinsdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}
