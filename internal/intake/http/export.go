package http

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/yasohm/formulaire/internal/intake/service"
	"github.com/yasohm/formulaire/pkg/formsdk"
	"github.com/yasohm/formulaire/pkg/httpx"
	"github.com/yasohm/formulaire/pkg/slogx"
)

type ExportHandler struct {
	ExportService *service.ExportService
	Now           func() time.Time
}

// ServeHTTP handles GET /export-excel
//
//	@Summary		Export Registrations
//	@Description	Downloads every registration as an xlsx workbook named Inscriptions_YYYY-MM-DD.xlsx.
//	@Tags			Reports
//	@Produce		application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
//	@Success		200	{file}		file					"xlsx workbook"
//	@Failure		500	{object}	formsdk.MessageResponse	"success, message"
//	@Router			/export-excel [get].
func (h *ExportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	// The workbook is rendered in full first so a failure can still be
	// answered with the JSON envelope.
	var buf bytes.Buffer
	if err := h.ExportService.Workbook(ctx, &buf); err != nil {
		log.Error("failed to export registrations", "error", err)
		formsdk.NewAPIError(http.StatusInternalServerError, formsdk.MsgExportFailed).WriteError(w)
		return
	}

	name := service.ExportFileName(h.Now())

	httpx.NoCache(w)
	w.Header().Set("Content-Type", service.ExportContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
