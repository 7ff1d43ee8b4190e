package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/yasohm/formulaire/internal/intake/blob"
	"github.com/yasohm/formulaire/internal/intake/metrics"
	"github.com/yasohm/formulaire/internal/intake/service"
	"github.com/yasohm/formulaire/pkg/formsdk"
	"github.com/yasohm/formulaire/pkg/formx"
	"github.com/yasohm/formulaire/pkg/httpx"
	"github.com/yasohm/formulaire/pkg/slogx"
)

// RegisterHandler accepts the registration form.
type RegisterHandler struct {
	IntakeService *service.IntakeService
	Parser        *formx.Parser
	Metrics       *metrics.Metrics
}

// ServeHTTP handles POST /register
//
//	@Summary		Submit Registration
//	@Description	Accepts the registration form as multipart/form-data. The identity photo and the school certificate are optional.
//	@Description	The email is lowercased before the uniqueness check.
//	@Tags			Registrations
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			nom						formData	string						true	"Family name"
//	@Param			prenom					formData	string						true	"Given name"
//	@Param			date_naissance			formData	string						true	"Date of birth"
//	@Param			email					formData	string						true	"Email address"
//	@Param			telephone				formData	string						true	"Phone number"
//	@Param			cne_massar				formData	string						true	"CNE or Massar code"
//	@Param			niveau					formData	string						true	"Level"
//	@Param			filiere					formData	string						true	"Track"
//	@Param			question				formData	string						false	"Free text question"
//	@Param			photo_identite			formData	file						false	"Identity photo"
//	@Param			certificat_scolarite	formData	file						false	"School certificate"
//	@Success		200						{object}	formsdk.RegisterResponse	"success, message, registration"
//	@Failure		400						{object}	formsdk.MessageResponse		"success, message"
//	@Failure		500						{object}	formsdk.MessageResponse		"success, message"
//	@Router			/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	form, err := h.Parser.ParseRequest(r)
	if err != nil {
		log.Warn("failed to parse form", "error", err)
		h.Metrics.IncrementParseFailure(parseFailureReason(err))
		abandonBody(w)
		formsdk.NewAPIError(http.StatusInternalServerError, formsdk.MsgServer).WriteError(w)
		return
	}

	reg, err := h.IntakeService.Register(ctx, service.NewSubmission(form))
	if err != nil {
		registerError(err).WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, formsdk.RegisterResponse{
		Success: true,
		Message: formsdk.MsgRegistered,
		Registration: &formsdk.RegistrationSummary{
			ID:     reg.ID,
			Nom:    reg.Nom,
			Prenom: reg.Prenom,
			Email:  reg.Email,
		},
	})
}

// abandonBody releases a read still blocked on the request body so the error
// can be flushed, and closes the connection once it is written. The server
// cannot reuse a connection whose body was left half read.
func abandonBody(w http.ResponseWriter) {
	_ = http.NewResponseController(w).SetReadDeadline(time.Now())
	w.Header().Set("Connection", "close")
}

// registerError maps an intake failure to the answer shown to the applicant.
func registerError(err error) *formsdk.APIError {
	var uploadErr *service.UploadError
	switch {
	case errors.Is(err, service.ErrMissingFields):
		return formsdk.NewAPIError(http.StatusBadRequest, formsdk.MsgMissingFields)
	case errors.Is(err, service.ErrInvalidEmail):
		return formsdk.NewAPIError(http.StatusBadRequest, formsdk.MsgInvalidEmail)
	case errors.Is(err, service.ErrDuplicateEmail):
		return formsdk.NewAPIError(http.StatusBadRequest, formsdk.MsgDuplicateEmail)
	case errors.Is(err, service.ErrPhotoType):
		return formsdk.NewAPIError(http.StatusBadRequest, formsdk.MsgPhotoType)
	case errors.Is(err, service.ErrPhotoSize):
		return formsdk.NewAPIError(http.StatusBadRequest, formsdk.MsgPhotoSize)
	case errors.Is(err, service.ErrCertificateType):
		return formsdk.NewAPIError(http.StatusBadRequest, formsdk.MsgCertificateType)
	case errors.Is(err, service.ErrCertificateSize):
		return formsdk.NewAPIError(http.StatusBadRequest, formsdk.MsgCertificateSize)
	case errors.As(err, &uploadErr):
		if uploadErr.Kind == blob.KindPhoto {
			return formsdk.NewAPIError(http.StatusInternalServerError, formsdk.MsgPhotoUpload)
		}
		return formsdk.NewAPIError(http.StatusInternalServerError, formsdk.MsgCertificateUpload)
	case errors.Is(err, service.ErrPersistence):
		return formsdk.NewAPIError(http.StatusInternalServerError, formsdk.MsgDatabase)
	default:
		return formsdk.NewAPIError(http.StatusInternalServerError, formsdk.MsgServer)
	}
}

// parseFailureReason labels the parse failure metric.
func parseFailureReason(err error) string {
	switch {
	case errors.Is(err, formx.ErrTimeout):
		return "timeout"
	case errors.Is(err, formx.ErrNoBody):
		return "no_body"
	case errors.Is(err, formx.ErrUnsupportedBody):
		return "unsupported"
	case errors.Is(err, formx.ErrMalformed):
		return "malformed"
	default:
		return "canceled"
	}
}
