package intake_test

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yasohm/formulaire/pkg/formsdk"
)

// TestRegisterWithFiles submits a complete form and fetches the stored photo
// back from /uploads/.
func TestRegisterWithFiles(t *testing.T) {
	client, cleanup := setupClient(t)
	defer cleanup()
	ctx := t.Context()

	req := applicant("Salma.Bennani@Example.ma")
	req.Question = "Y a-t-il des cours du soir ?"
	req.Photo = pngUpload()
	req.Certificate = pdfUpload()

	summary, err := client.Register(ctx, req)
	require.NoError(t, err)
	require.NotEmpty(t, summary.ID)
	require.Equal(t, "salma.bennani@example.ma", summary.Email)

	regs, err := client.ListRegistrations(ctx)
	require.NoError(t, err)
	require.Len(t, regs, 1)

	reg := regs[0]
	require.NotNil(t, reg.PhotoIdentite)
	require.NotNil(t, reg.CertificatScolarite)
	require.True(t, strings.HasPrefix(*reg.PhotoIdentite, "uploads/photo-"))
	require.True(t, strings.HasPrefix(*reg.CertificatScolarite, "uploads/certificat-"))

	resp, err := http.Get(client.BaseURL + "/" + *reg.PhotoIdentite)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, req.Photo.Data, body)
}

// TestRegisterUnderAPIPrefix uses the /api routes of the original deployment.
func TestRegisterUnderAPIPrefix(t *testing.T) {
	client, cleanup := setupClient(t)
	defer cleanup()
	client.Prefix = "/api"

	_, err := client.Register(t.Context(), applicant("api@example.ma"))
	require.NoError(t, err)

	regs, err := client.ListRegistrations(t.Context())
	require.NoError(t, err)
	require.Len(t, regs, 1)
}

// TestRegisterRejectsDuplicateEmail checks the uniqueness is case-insensitive.
func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	client, cleanup := setupClient(t)
	defer cleanup()
	ctx := t.Context()

	_, err := client.Register(ctx, applicant("dup@example.ma"))
	require.NoError(t, err)

	_, err = client.Register(ctx, applicant("  DUP@Example.MA"))
	assertAPIError(t, err, http.StatusBadRequest, formsdk.MsgDuplicateEmail)

	regs, err := client.ListRegistrations(ctx)
	require.NoError(t, err)
	require.Len(t, regs, 1)
}

// TestRegisterValidation walks through the rejections an applicant can see.
func TestRegisterValidation(t *testing.T) {
	client, cleanup := setupClient(t)
	defer cleanup()
	ctx := t.Context()

	missing := applicant("missing@example.ma")
	missing.CNEMassar = ""

	badEmail := applicant("salma@invalid")

	badPhoto := applicant("photo@example.ma")
	badPhoto.Photo = &formsdk.Upload{Filename: "photo.tiff", ContentType: "image/tiff", Data: []byte("II*")}

	bigPhoto := applicant("bigphoto@example.ma")
	bigPhoto.Photo = &formsdk.Upload{Filename: "photo.png", ContentType: "image/png", Data: make([]byte, 2<<20)}

	badCert := applicant("cert@example.ma")
	badCert.Certificate = &formsdk.Upload{Filename: "cert.zip", ContentType: "application/zip", Data: []byte("PK")}

	tests := []struct {
		name    string
		req     formsdk.RegisterRequest
		message string
	}{
		{"missing field", missing, formsdk.MsgMissingFields},
		{"invalid email", badEmail, formsdk.MsgInvalidEmail},
		{"photo type", badPhoto, formsdk.MsgPhotoType},
		{"photo size", bigPhoto, formsdk.MsgPhotoSize},
		{"certificate type", badCert, formsdk.MsgCertificateType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.Register(ctx, tt.req)
			assertAPIError(t, err, http.StatusBadRequest, tt.message)
		})
	}

	regs, err := client.ListRegistrations(ctx)
	require.NoError(t, err)
	require.Empty(t, regs)
}

// TestRegisterMethodNotAllowed checks unknown methods get the JSON envelope.
func TestRegisterMethodNotAllowed(t *testing.T) {
	client, cleanup := setupClient(t)
	defer cleanup()

	req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, client.BaseURL+"/register", nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.JSONEq(t, `{"success":false,"message":"Method not allowed"}`, string(body))
}
