// Package formx parses multipart/form-data bodies into text fields and
// in-memory files.
//
// Parsing is event driven: a reader goroutine walks the parts and emits
// field, file and end-of-form events while the caller's goroutine folds them
// into a Form. The parse completes only once the end of the form has been seen
// and no file is still being accumulated, and it is bounded by a wall-clock
// timeout so that a client which never finishes sending cannot pin a handler.
package formx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"time"
)

const (
	DefaultMaxFileSize  int64 = 100 << 20 // 100 MiB per file part
	DefaultMaxFieldSize int64 = 1 << 20
	DefaultTimeout            = 30 * time.Second

	defaultFileContentType = "application/octet-stream"
)

var (
	ErrNoBody          = errors.New("formx: request has no body")
	ErrUnsupportedBody = errors.New("formx: unsupported request body format")
	ErrMalformed       = errors.New("formx: malformed multipart body")
	ErrTimeout         = errors.New("formx: timed out while parsing form data")
)

// File is one uploaded file part held in memory.
type File struct {
	Field       string
	Filename    string
	ContentType string // as declared by the client, never sniffed
	Data        []byte

	// Size counts every byte the client sent for this part. It exceeds
	// len(Data) when the part went over the size ceiling.
	Size      int64
	Truncated bool
}

// Form is the parse result. Repeated names keep the last value seen.
type Form struct {
	Fields map[string]string
	Files  map[string]*File
}

// Value returns the text field name, or "" when absent.
func (f *Form) Value(name string) string { return f.Fields[name] }

// File returns the file part name, or nil when absent.
func (f *Form) File(name string) *File { return f.Files[name] }

type Parser struct {
	maxFileSize  int64
	maxFieldSize int64
	timeout      time.Duration
}

type Option func(*Parser)

// WithMaxFileSize sets the per-file ceiling. Bytes beyond it are drained and
// discarded.
func WithMaxFileSize(n int64) Option {
	return func(p *Parser) {
		if n > 0 {
			p.maxFileSize = n
		}
	}
}

// WithMaxFieldSize caps text field values.
func WithMaxFieldSize(n int64) Option {
	return func(p *Parser) {
		if n > 0 {
			p.maxFieldSize = n
		}
	}
}

// WithTimeout sets the wall-clock budget for a whole parse.
func WithTimeout(d time.Duration) Option {
	return func(p *Parser) {
		if d > 0 {
			p.timeout = d
		}
	}
}

func New(opts ...Option) *Parser {
	p := &Parser{
		maxFileSize:  DefaultMaxFileSize,
		maxFieldSize: DefaultMaxFieldSize,
		timeout:      DefaultTimeout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// MaxFileSize reports the configured per-file ceiling.
func (p *Parser) MaxFileSize() int64 { return p.maxFileSize }

// ParseRequest parses the body of r using the request context.
func (p *Parser) ParseRequest(r *http.Request) (*Form, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, ErrNoBody
	}
	return p.Parse(r.Context(), r.Header.Get("Content-Type"), r.Body)
}

// Parse reads a multipart body. body is either a live stream (io.Reader) or
// an already buffered []byte; any other shape fails with ErrUnsupportedBody
// before the timeout starts.
func (p *Parser) Parse(ctx context.Context, contentType string, body any) (*Form, error) {
	src, err := asReader(body)
	if err != nil {
		return nil, err
	}

	boundary, err := boundaryOf(contentType)
	if err != nil {
		return nil, err
	}

	return p.run(ctx, multipart.NewReader(src, boundary))
}

func asReader(body any) (io.Reader, error) {
	switch b := body.(type) {
	case nil:
		return nil, ErrNoBody
	case []byte:
		return bytes.NewReader(b), nil
	case io.Reader:
		return b, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedBody, body)
	}
}

func boundaryOf(contentType string) (string, error) {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if mediaType != "multipart/form-data" {
		return "", fmt.Errorf("%w: content type %q", ErrMalformed, mediaType)
	}
	if params["boundary"] == "" {
		return "", fmt.Errorf("%w: missing boundary", ErrMalformed)
	}
	return params["boundary"], nil
}

// run starts the reader and folds its events until the form is complete, the
// reader reports a form level error, the timeout fires or ctx is done.
func (p *Parser) run(ctx context.Context, mr *multipart.Reader) (*Form, error) {
	events := make(chan event)
	stop := make(chan struct{})
	defer close(stop)

	emit := func(ev event) bool {
		select {
		case events <- ev:
			return true
		case <-stop:
			return false
		}
	}
	go p.read(mr, emit)

	timer := time.NewTimer(p.timeout)
	defer timer.Stop()

	c := newCollector()
	for {
		select {
		case ev := <-events:
			c.apply(ev)
			if c.err != nil {
				return nil, fmt.Errorf("%w: %w", ErrMalformed, c.err)
			}
			if c.done() {
				return c.form, nil
			}
		case <-timer.C:
			return nil, ErrTimeout
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// read walks the parts in order. It returns as soon as emit reports that
// nobody is listening any more.
func (p *Parser) read(mr *multipart.Reader, emit func(event) bool) {
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			emit(event{kind: evEndOfForm})
			return
		}
		if err != nil {
			emit(event{kind: evFormError, err: err})
			return
		}

		ok := p.readPart(part, emit)
		_ = part.Close()
		if !ok {
			return
		}
	}
}

func (p *Parser) readPart(part *multipart.Part, emit func(event) bool) bool {
	name := part.FormName()
	if name == "" {
		return true
	}

	filename, isFile := fileParam(part)
	if !isFile {
		value, err := readCapped(part, p.maxFieldSize)
		if err != nil {
			emit(event{kind: evFormError, err: err})
			return false
		}
		return emit(event{kind: evField, name: name, value: value})
	}

	if !emit(event{kind: evFileStarted, name: name}) {
		return false
	}

	f, err := p.accumulate(part, name, filename)
	if err != nil {
		return emit(event{kind: evFileErrored, name: name, err: err})
	}
	if f.Filename == "" && f.Size == 0 {
		// Browsers submit an empty, nameless part for an untouched file input.
		return emit(event{kind: evFileErrored, name: name})
	}
	return emit(event{kind: evFileFinished, name: name, file: f})
}

// accumulate buffers up to maxFileSize bytes and drains the rest so the
// multipart reader can move on to the next part.
func (p *Parser) accumulate(part *multipart.Part, name, filename string) (*File, error) {
	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(part, p.maxFileSize))
	if err != nil {
		return nil, err
	}

	extra, err := io.Copy(io.Discard, part)
	if err != nil {
		return nil, err
	}

	contentType := part.Header.Get("Content-Type")
	if contentType == "" {
		contentType = defaultFileContentType
	}

	return &File{
		Field:       name,
		Filename:    filename,
		ContentType: contentType,
		Data:        buf.Bytes(),
		Size:        n + extra,
		Truncated:   extra > 0,
	}, nil
}

// fileParam reports whether the part carries a filename parameter at all.
// Part.FileName alone cannot tell filename="" apart from a plain field.
func fileParam(part *multipart.Part) (string, bool) {
	_, params, err := mime.ParseMediaType(part.Header.Get("Content-Disposition"))
	if err != nil {
		return "", false
	}
	if _, ok := params["filename"]; !ok {
		return "", false
	}
	return part.FileName(), true
}

func readCapped(r io.Reader, limit int64) (string, error) {
	b, err := io.ReadAll(io.LimitReader(r, limit))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}
	return string(b), nil
}
