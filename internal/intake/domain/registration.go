package domain

import "time"

// Registration is one applicant submission. It is created once and never
// updated.
type Registration struct {
	ID            string
	Nom           string
	Prenom        string
	DateNaissance string // free text, only presence is checked
	Email         string // lowercased and trimmed
	Telephone     string
	CNEMassar     string
	Niveau        string
	Filiere       string
	Question      *string // nil when absent or blank

	// References to stored files (URL or relative path), nil when no file
	// was submitted.
	PhotoIdentite       *string
	CertificatScolarite *string

	CreatedAt time.Time
}

// FileRefs returns the stored file references that are set.
func (r Registration) FileRefs() []string {
	var refs []string
	for _, ref := range []*string{r.PhotoIdentite, r.CertificatScolarite} {
		if ref != nil && *ref != "" {
			refs = append(refs, *ref)
		}
	}
	return refs
}
