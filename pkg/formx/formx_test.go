package formx_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yasohm/formulaire/pkg/formx"
)

type filePart struct {
	field, filename, contentType string
	data                         []byte
}

func buildForm(t *testing.T, fields map[string]string, files ...filePart) (string, []byte) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, f.field, f.filename))
		if f.contentType != "" {
			h.Set("Content-Type", f.contentType)
		}
		w, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = w.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return mw.FormDataContentType(), buf.Bytes()
}

func TestParseStream(t *testing.T) {
	ct, body := buildForm(t,
		map[string]string{"nom": "Alaoui", "email": "a@b.ma"},
		filePart{"photo_identite", "me.png", "image/png", []byte("png-bytes")},
		filePart{"certificat_scolarite", "cert.pdf", "application/pdf", []byte("pdf")},
		filePart{"extra", "notes.txt", "text/plain", []byte("kept")},
	)

	form, err := formx.New().Parse(context.Background(), ct, bytes.NewReader(body))
	require.NoError(t, err)

	require.Equal(t, "Alaoui", form.Value("nom"))
	require.Equal(t, "a@b.ma", form.Value("email"))

	photo := form.File("photo_identite")
	require.NotNil(t, photo)
	require.Equal(t, "me.png", photo.Filename)
	require.Equal(t, "image/png", photo.ContentType)
	require.Equal(t, []byte("png-bytes"), photo.Data)
	require.EqualValues(t, len("png-bytes"), photo.Size)
	require.False(t, photo.Truncated)

	require.NotNil(t, form.File("certificat_scolarite"))
	require.NotNil(t, form.File("extra"))
}

func TestParseBufferedBody(t *testing.T) {
	ct, body := buildForm(t, map[string]string{"nom": "Bennani"},
		filePart{"photo_identite", "p.jpg", "image/jpeg", []byte{0xff, 0xd8}})

	form, err := formx.New().Parse(context.Background(), ct, body)
	require.NoError(t, err)
	require.Equal(t, "Bennani", form.Value("nom"))
	require.Equal(t, []byte{0xff, 0xd8}, form.File("photo_identite").Data)
}

func TestParseRejectsUnsupportedBodies(t *testing.T) {
	p := formx.New(formx.WithTimeout(time.Hour))
	ct, _ := buildForm(t, map[string]string{"nom": "x"})

	start := time.Now()
	_, err := p.Parse(context.Background(), ct, "already decoded text")
	require.ErrorIs(t, err, formx.ErrUnsupportedBody)

	_, err = p.Parse(context.Background(), ct, map[string]string{"nom": "x"})
	require.ErrorIs(t, err, formx.ErrUnsupportedBody)

	_, err = p.Parse(context.Background(), ct, nil)
	require.ErrorIs(t, err, formx.ErrNoBody)

	require.Less(t, time.Since(start), time.Second, "unsupported bodies must fail fast")
}

func TestParseRejectsNonMultipart(t *testing.T) {
	p := formx.New()

	_, err := p.Parse(context.Background(), "application/json", []byte(`{}`))
	require.ErrorIs(t, err, formx.ErrMalformed)

	_, err = p.Parse(context.Background(), "multipart/form-data", []byte(`x`))
	require.ErrorIs(t, err, formx.ErrMalformed)
}

func TestParseMalformedBody(t *testing.T) {
	body := "--xyz\r\nContent-Disposition: form-data; name=\"nom\"\r\n\r\nvalue-without-closing"

	_, err := formx.New().Parse(context.Background(), "multipart/form-data; boundary=xyz", strings.NewReader(body))
	require.ErrorIs(t, err, formx.ErrMalformed)
}

func TestParseOversizedFileIsTruncatedNotFatal(t *testing.T) {
	big := bytes.Repeat([]byte("a"), 25)
	ct, body := buildForm(t, map[string]string{"nom": "x"},
		filePart{"photo_identite", "big.png", "image/png", big},
		filePart{"certificat_scolarite", "c.pdf", "application/pdf", []byte("ok")},
	)

	form, err := formx.New(formx.WithMaxFileSize(10)).Parse(context.Background(), ct, body)
	require.NoError(t, err)

	photo := form.File("photo_identite")
	require.True(t, photo.Truncated)
	require.EqualValues(t, 25, photo.Size)
	require.Len(t, photo.Data, 10)

	cert := form.File("certificat_scolarite")
	require.False(t, cert.Truncated)
	require.Equal(t, []byte("ok"), cert.Data)
}

func TestParseCapsFieldValues(t *testing.T) {
	ct, body := buildForm(t, map[string]string{"question": strings.Repeat("q", 50)})

	form, err := formx.New(formx.WithMaxFieldSize(8)).Parse(context.Background(), ct, body)
	require.NoError(t, err)
	require.Equal(t, "qqqqqqqq", form.Value("question"))
}

func TestParseDropsEmptyFileInputs(t *testing.T) {
	ct, body := buildForm(t, map[string]string{"nom": "x"},
		filePart{field: "photo_identite", filename: "", contentType: "application/octet-stream"})

	form, err := formx.New().Parse(context.Background(), ct, body)
	require.NoError(t, err)
	require.Nil(t, form.File("photo_identite"))
	require.Empty(t, form.Fields["photo_identite"])
}

func TestParseDefaultsFileContentType(t *testing.T) {
	ct, body := buildForm(t, nil, filePart{"photo_identite", "x.bin", "", []byte("1")})

	form, err := formx.New().Parse(context.Background(), ct, body)
	require.NoError(t, err)
	require.Equal(t, "application/octet-stream", form.File("photo_identite").ContentType)
}

func TestParseTimesOutOnStalledStream(t *testing.T) {
	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })

	go func() {
		// Start a file part and then go silent.
		_, _ = pw.Write([]byte("--xyz\r\nContent-Disposition: form-data; name=\"photo_identite\"; filename=\"a.png\"\r\nContent-Type: image/png\r\n\r\npartial"))
	}()

	start := time.Now()
	_, err := formx.New(formx.WithTimeout(50*time.Millisecond)).
		Parse(context.Background(), "multipart/form-data; boundary=xyz", pr)

	require.ErrorIs(t, err, formx.ErrTimeout)
	require.Less(t, time.Since(start), 2*time.Second)
}

func TestParseHonoursContextCancellation(t *testing.T) {
	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := formx.New().Parse(ctx, "multipart/form-data; boundary=xyz", pr)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestParseRequest(t *testing.T) {
	ct, body := buildForm(t, map[string]string{"nom": "Idrissi"})

	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", ct)

	form, err := formx.New().ParseRequest(req)
	require.NoError(t, err)
	require.Equal(t, "Idrissi", form.Value("nom"))

	empty := httptest.NewRequest(http.MethodPost, "/register", nil)
	empty.Header.Set("Content-Type", ct)
	_, err = formx.New().ParseRequest(empty)
	require.ErrorIs(t, err, formx.ErrNoBody)
}
