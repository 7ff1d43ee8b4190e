package http

import (
	"errors"
	"net/http"

	"github.com/yasohm/formulaire/internal/intake/domain"
	"github.com/yasohm/formulaire/internal/intake/service"
	"github.com/yasohm/formulaire/pkg/formsdk"
	"github.com/yasohm/formulaire/pkg/httpx"
	"github.com/yasohm/formulaire/pkg/slogx"
)

// RegistrationsHandler backs the admin listing.
type RegistrationsHandler struct {
	ReportService *service.ReportService
}

// HandleList handles GET /registrations
//
//	@Summary		List Registrations
//	@Description	Returns every registration, newest first.
//	@Tags			Registrations
//	@Produce		json
//	@Success		200	{object}	formsdk.RegistrationsResponse	"success, registrations"
//	@Failure		500	{object}	formsdk.MessageResponse			"success, message"
//	@Router			/registrations [get].
func (h *RegistrationsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	regs, err := h.ReportService.List(ctx)
	if err != nil {
		log.Error("failed to list registrations", "error", err)
		formsdk.NewAPIError(http.StatusInternalServerError, formsdk.MsgListFailed).WriteError(w)
		return
	}

	out := make([]formsdk.Registration, 0, len(regs))
	for _, reg := range regs {
		out = append(out, toRegistration(reg))
	}

	httpx.WriteJSON(w, http.StatusOK, formsdk.RegistrationsResponse{
		Success:       true,
		Registrations: out,
	})
}

// HandleDelete handles DELETE /registrations?id=
//
//	@Summary		Delete Registration
//	@Description	Deletes a registration and makes a best effort to remove its stored files.
//	@Tags			Registrations
//	@Produce		json
//	@Param			id	query		string					true	"Registration id"
//	@Success		200	{object}	formsdk.MessageResponse	"success, message"
//	@Failure		400	{object}	formsdk.MessageResponse	"success, message"
//	@Failure		404	{object}	formsdk.MessageResponse	"success, message"
//	@Failure		500	{object}	formsdk.MessageResponse	"success, message"
//	@Router			/registrations [delete].
func (h *RegistrationsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	err := h.ReportService.Delete(ctx, r.URL.Query().Get("id"))
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusOK, formsdk.MessageResponse{
			Success: true,
			Message: formsdk.MsgDeleted,
		})
	case errors.Is(err, service.ErrInvalidID):
		formsdk.NewAPIError(http.StatusBadRequest, formsdk.MsgIDRequired).WriteError(w)
	case errors.Is(err, service.ErrRegistrationNotFound):
		formsdk.NewAPIError(http.StatusNotFound, formsdk.MsgNotFound).WriteError(w)
	default:
		log.Error("failed to delete registration", "error", err)
		formsdk.NewAPIError(http.StatusInternalServerError, formsdk.MsgDeleteFailed).WriteError(w)
	}
}

func toRegistration(reg domain.Registration) formsdk.Registration {
	return formsdk.Registration{
		ID:                  reg.ID,
		Nom:                 reg.Nom,
		Prenom:              reg.Prenom,
		DateNaissance:       reg.DateNaissance,
		Email:               reg.Email,
		Telephone:           reg.Telephone,
		CNEMassar:           reg.CNEMassar,
		Niveau:              reg.Niveau,
		Filiere:             reg.Filiere,
		Question:            reg.Question,
		PhotoIdentite:       reg.PhotoIdentite,
		CertificatScolarite: reg.CertificatScolarite,
		CreatedAt:           reg.CreatedAt,
	}
}
