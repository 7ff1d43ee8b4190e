package intake_test

import (
	"bytes"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"github.com/yasohm/formulaire/pkg/formsdk"
)

// TestDeleteRegistration removes a registration together with its files.
func TestDeleteRegistration(t *testing.T) {
	client, cleanup := setupClient(t)
	defer cleanup()
	ctx := t.Context()

	req := applicant("delete@example.ma")
	req.Photo = pngUpload()
	summary, err := client.Register(ctx, req)
	require.NoError(t, err)

	regs, err := client.ListRegistrations(ctx)
	require.NoError(t, err)
	photoURL := client.BaseURL + "/" + *regs[0].PhotoIdentite

	err = client.DeleteRegistration(ctx, "")
	assertAPIError(t, err, http.StatusBadRequest, formsdk.MsgIDRequired)

	require.NoError(t, client.DeleteRegistration(ctx, summary.ID))

	err = client.DeleteRegistration(ctx, summary.ID)
	assertAPIError(t, err, http.StatusNotFound, formsdk.MsgNotFound)

	regs, err = client.ListRegistrations(ctx)
	require.NoError(t, err)
	require.Empty(t, regs)

	resp, err := http.Get(photoURL)
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// TestStats counts registrations per track and level.
func TestStats(t *testing.T) {
	client, cleanup := setupClient(t)
	defer cleanup()
	ctx := t.Context()

	forms := []struct{ email, filiere, niveau string }{
		{"a@example.ma", "Informatique", "Master 1"},
		{"b@example.ma", "Informatique", "Licence 3"},
		{"c@example.ma", "Mathématiques", "Licence 3"},
	}
	for _, f := range forms {
		req := applicant(f.email)
		req.Filiere = f.filiere
		req.Niveau = f.niveau
		_, err := client.Register(ctx, req)
		require.NoError(t, err)
	}

	stats, err := client.GetStats(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, stats.Total)
	require.Equal(t, 3, stats.Recent)
	require.Equal(t, map[string]int{"Informatique": 2, "Mathématiques": 1}, stats.ByFiliere)
	require.Equal(t, map[string]int{"Master 1": 1, "Licence 3": 2}, stats.ByNiveau)
}

// TestExportExcel downloads the workbook and reads it back.
func TestExportExcel(t *testing.T) {
	client, cleanup := setupClient(t)
	defer cleanup()
	ctx := t.Context()

	req := applicant("export@example.ma")
	req.Question = "Les frais sont-ils mensuels ?"
	_, err := client.Register(ctx, req)
	require.NoError(t, err)

	data, name, err := client.ExportExcel(ctx)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(name, "Inscriptions_"))
	require.True(t, strings.HasSuffix(name, ".xlsx"))
	_, err = time.Parse(time.DateOnly, strings.TrimSuffix(strings.TrimPrefix(name, "Inscriptions_"), ".xlsx"))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Inscriptions")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "Nom", rows[0][0])
	require.Equal(t, "export@example.ma", rows[1][3])
	require.Equal(t, "Les frais sont-ils mensuels ?", rows[1][8])
}
