package http

import (
	"net/http"
	"time"

	"github.com/yasohm/formulaire/internal/intake/service"
	"github.com/yasohm/formulaire/pkg/formsdk"
	"github.com/yasohm/formulaire/pkg/httpx"
	"github.com/yasohm/formulaire/pkg/slogx"
)

type StatsHandler struct {
	ReportService *service.ReportService
	Now           func() time.Time
}

// ServeHTTP handles GET /stats
//
//	@Summary		Registration Statistics
//	@Description	Total count, counts per track and per level, and the number of registrations of the last seven days.
//	@Tags			Reports
//	@Produce		json
//	@Success		200	{object}	formsdk.StatsResponse	"success, stats"
//	@Failure		500	{object}	formsdk.MessageResponse	"success, message"
//	@Router			/stats [get].
func (h *StatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	stats, err := h.ReportService.Stats(ctx, h.Now())
	if err != nil {
		log.Error("failed to compute stats", "error", err)
		formsdk.NewAPIError(http.StatusInternalServerError, formsdk.MsgStatsFailed).WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, formsdk.StatsResponse{
		Success: true,
		Stats: formsdk.Stats{
			Total:     stats.Total,
			ByFiliere: stats.ByFiliere,
			ByNiveau:  stats.ByNiveau,
			Recent:    stats.Recent,
		},
	})
}
