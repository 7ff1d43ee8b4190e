package service

import (
	"mime"
	"regexp"
	"strings"

	"github.com/yasohm/formulaire/pkg/formx"
)

// Form field and file part names.
const (
	FieldNom           = "nom"
	FieldPrenom        = "prenom"
	FieldDateNaissance = "date_naissance"
	FieldEmail         = "email"
	FieldTelephone     = "telephone"
	FieldCNEMassar     = "cne_massar"
	FieldNiveau        = "niveau"
	FieldFiliere       = "filiere"
	FieldQuestion      = "question"

	FilePhoto       = "photo_identite"
	FileCertificate = "certificat_scolarite"
)

// DefaultMaxFileSize is the per-file limit enforced by the validator.
const DefaultMaxFileSize int64 = 100 << 20

var requiredFields = []string{
	FieldNom, FieldPrenom, FieldDateNaissance, FieldEmail,
	FieldTelephone, FieldCNEMassar, FieldNiveau, FieldFiliere,
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var photoTypes = setOf(
	"image/jpeg",
	"image/jpg",
	"image/png",
	"image/gif",
	"image/bmp",
	"image/webp",
	"application/pdf",
)

var certificateTypes = setOf(
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"image/jpeg",
	"image/jpg",
	"image/png",
	"image/gif",
	"image/bmp",
	"image/webp",
	"text/plain",
	"application/rtf",
)

func setOf(values ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(values))
	for _, v := range values {
		m[v] = struct{}{}
	}
	return m
}

// Submission is a parsed registration form.
type Submission struct {
	Nom           string
	Prenom        string
	DateNaissance string
	Email         string
	Telephone     string
	CNEMassar     string
	Niveau        string
	Filiere       string
	Question      string

	Photo       *formx.File
	Certificate *formx.File
}

// NewSubmission trims every text field and lowercases the email.
func NewSubmission(form *formx.Form) Submission {
	v := func(name string) string { return strings.TrimSpace(form.Value(name)) }
	return Submission{
		Nom:           v(FieldNom),
		Prenom:        v(FieldPrenom),
		DateNaissance: v(FieldDateNaissance),
		Email:         NormalizeEmail(form.Value(FieldEmail)),
		Telephone:     v(FieldTelephone),
		CNEMassar:     v(FieldCNEMassar),
		Niveau:        v(FieldNiveau),
		Filiere:       v(FieldFiliere),
		Question:      v(FieldQuestion),
		Photo:         form.File(FilePhoto),
		Certificate:   form.File(FileCertificate),
	}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateFields checks required fields and then the email shape.
func ValidateFields(s Submission) error {
	values := map[string]string{
		FieldNom:           s.Nom,
		FieldPrenom:        s.Prenom,
		FieldDateNaissance: s.DateNaissance,
		FieldEmail:         s.Email,
		FieldTelephone:     s.Telephone,
		FieldCNEMassar:     s.CNEMassar,
		FieldNiveau:        s.Niveau,
		FieldFiliere:       s.Filiere,
	}
	for _, name := range requiredFields {
		if strings.TrimSpace(values[name]) == "" {
			return ErrMissingFields
		}
	}

	if !emailPattern.MatchString(strings.TrimSpace(s.Email)) {
		return ErrInvalidEmail
	}
	return nil
}

// ValidatePhoto checks the declared type and then the size of an identity
// photo. A nil file is valid.
func ValidatePhoto(f *formx.File, maxSize int64) error {
	return validateFile(f, maxSize, photoTypes, ErrPhotoType, ErrPhotoSize)
}

// ValidateCertificate checks the declared type and then the size of an
// enrollment certificate. A nil file is valid.
func ValidateCertificate(f *formx.File, maxSize int64) error {
	return validateFile(f, maxSize, certificateTypes, ErrCertificateType, ErrCertificateSize)
}

func validateFile(f *formx.File, maxSize int64, allowed map[string]struct{}, errType, errSize error) error {
	if f == nil {
		return nil
	}
	if _, ok := allowed[MediaType(f.ContentType)]; !ok {
		return errType
	}
	if f.Truncated || f.Size > maxSize || int64(len(f.Data)) > maxSize {
		return errSize
	}
	return nil
}

// MediaType strips parameters from a declared content type and lowercases it.
func MediaType(contentType string) string {
	if mt, _, err := mime.ParseMediaType(contentType); err == nil {
		return mt
	}
	mt, _, _ := strings.Cut(contentType, ";")
	return strings.ToLower(strings.TrimSpace(mt))
}
