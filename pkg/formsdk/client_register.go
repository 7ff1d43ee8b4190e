package formsdk

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
)

// Register submits a registration form. It returns the summary echoed by the
// service.
func (c *SDKClient) Register(ctx context.Context, req RegisterRequest) (*RegistrationSummary, error) {
	body, contentType, err := EncodeRegisterRequest(req)
	if err != nil {
		return nil, err
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/register", body, map[string]string{
		"Content-Type": contentType,
	})
	if err != nil {
		return nil, err
	}

	var out RegisterResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	if out.Registration == nil {
		return nil, fmt.Errorf("formulaire: response carries no registration")
	}
	return out.Registration, nil
}

// EncodeRegisterRequest renders req as a multipart/form-data body.
func EncodeRegisterRequest(req RegisterRequest) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fields := []struct{ name, value string }{
		{"nom", req.Nom},
		{"prenom", req.Prenom},
		{"date_naissance", req.DateNaissance},
		{"email", req.Email},
		{"telephone", req.Telephone},
		{"cne_massar", req.CNEMassar},
		{"niveau", req.Niveau},
		{"filiere", req.Filiere},
		{"question", req.Question},
	}
	for _, f := range fields {
		if err := mw.WriteField(f.name, f.value); err != nil {
			return nil, "", err
		}
	}

	files := []struct {
		name   string
		upload *Upload
	}{
		{"photo_identite", req.Photo},
		{"certificat_scolarite", req.Certificate},
	}
	for _, f := range files {
		if f.upload == nil {
			continue
		}
		if err := writeFile(mw, f.name, f.upload); err != nil {
			return nil, "", err
		}
	}

	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func writeFile(mw *multipart.Writer, field string, u *Upload) error {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(field), quoteEscaper.Replace(u.Filename)))

	// CreateFormFile would force application/octet-stream.
	contentType := u.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h.Set("Content-Type", contentType)

	w, err := mw.CreatePart(h)
	if err != nil {
		return err
	}
	_, err = w.Write(u.Data)
	return err
}
