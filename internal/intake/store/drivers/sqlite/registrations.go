package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/yasohm/formulaire/internal/intake/domain"
	"github.com/yasohm/formulaire/pkg/idx"
)

const registrationColumns = `id, nom, prenom, date_naissance, email, telephone, cne_massar,
	niveau, filiere, question, photo_identite, certificat_scolarite, created_at`

type registrationsRepo struct {
	db  *sql.DB
	now func() time.Time
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRegistration(row rowScanner) (domain.Registration, error) {
	var (
		r                           domain.Registration
		question, photo, certificat sql.NullString
	)
	err := row.Scan(
		&r.ID, &r.Nom, &r.Prenom, &r.DateNaissance, &r.Email, &r.Telephone, &r.CNEMassar,
		&r.Niveau, &r.Filiere, &question, &photo, &certificat, &r.CreatedAt,
	)
	if err != nil {
		return domain.Registration{}, err
	}
	r.Question = mapNullStringPtr(question)
	r.PhotoIdentite = mapNullStringPtr(photo)
	r.CertificatScolarite = mapNullStringPtr(certificat)
	r.CreatedAt = r.CreatedAt.UTC()
	return r, nil
}

func (r *registrationsRepo) CreateRegistration(ctx context.Context, reg domain.Registration) (domain.Registration, error) {
	reg.CreatedAt = r.now().UTC()
	reg.ID = idx.NewAt(reg.CreatedAt).String()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO registrations (`+registrationColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		reg.ID, reg.Nom, reg.Prenom, reg.DateNaissance, reg.Email, reg.Telephone, reg.CNEMassar,
		reg.Niveau, reg.Filiere,
		mapOptionalString(reg.Question),
		mapOptionalString(reg.PhotoIdentite),
		mapOptionalString(reg.CertificatScolarite),
		reg.CreatedAt,
	)
	if err != nil {
		return domain.Registration{}, mapConstraint(err)
	}
	return reg, nil
}

func (r *registrationsRepo) GetRegistrationByID(ctx context.Context, id string) (domain.Registration, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+registrationColumns+` FROM registrations WHERE id = ?`, id)
	reg, err := scanRegistration(row)
	if err != nil {
		return domain.Registration{}, mapNotFound(err)
	}
	return reg, nil
}

func (r *registrationsRepo) GetRegistrationByEmail(ctx context.Context, email string) (domain.Registration, error) {
	// The email column is declared COLLATE NOCASE.
	row := r.db.QueryRowContext(ctx,
		`SELECT `+registrationColumns+` FROM registrations WHERE email = ?`, email)
	reg, err := scanRegistration(row)
	if err != nil {
		return domain.Registration{}, mapNotFound(err)
	}
	return reg, nil
}

func (r *registrationsRepo) ListRegistrations(ctx context.Context) ([]domain.Registration, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+registrationColumns+` FROM registrations ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Registration, 0)
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, reg)
	}
	return out, rows.Err()
}

func (r *registrationsRepo) DeleteRegistration(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM registrations WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return mapNotFound(sql.ErrNoRows)
	}
	return nil
}
