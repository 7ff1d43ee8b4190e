// Package blob stores uploaded file bytes in durable object storage and hands
// back a reference (URL or relative path) that can later be used to delete
// them.
package blob

import (
	"context"
	"errors"
	"math/rand/v2"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Kind prefixes generated object names.
type Kind string

const (
	KindPhoto       Kind = "photo"
	KindCertificate Kind = "certificat"
)

var (
	// ErrExists means the backend already holds an object with that name.
	// Drivers never overwrite.
	ErrExists = errors.New("blob: object already exists")

	// ErrForeignRef means the reference was not issued by this store.
	ErrForeignRef = errors.New("blob: reference not owned by this store")
)

type Object struct {
	Name        string
	ContentType string
	Data        []byte
}

// Store is implemented by every storage backend.
type Store interface {
	// Put persists obj under obj.Name and returns its reference. It fails
	// with ErrExists instead of replacing an existing object.
	Put(ctx context.Context, obj Object) (string, error)

	// Delete removes the object behind ref. Deleting an object that is
	// already gone is not an error.
	Delete(ctx context.Context, ref string) error

	Ping(ctx context.Context) error
}

var extPattern = regexp.MustCompile(`^[A-Za-z0-9]{1,16}$`)

// NewName returns "<kind>-<unix millis>-<base36 random><ext>". ext is the
// last dot-separated segment of filename, kept only when it is a short
// alphanumeric token.
func NewName(kind Kind, filename string, now time.Time) string {
	var b strings.Builder
	b.WriteString(string(kind))
	b.WriteByte('-')
	b.WriteString(strconv.FormatInt(now.UnixMilli(), 10))
	b.WriteByte('-')
	b.WriteString(strconv.FormatUint(rand.Uint64(), 36))
	b.WriteString(Ext(filename))
	return b.String()
}

// Ext returns ".<ext>" for filename, or "" when it has no usable extension.
func Ext(filename string) string {
	i := strings.LastIndexByte(filename, '.')
	if i < 0 {
		return ""
	}
	ext := filename[i+1:]
	if !extPattern.MatchString(ext) {
		return ""
	}
	return "." + ext
}

// ValidName reports whether name is a single path element safe to use as an
// object name.
func ValidName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.ContainsAny(name, `/\`)
}
