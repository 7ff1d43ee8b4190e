// Package gcs stores uploads in a Google Cloud Storage bucket.
package gcs

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/yasohm/formulaire/internal/intake/blob"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const defaultPublicHost = "https://storage.googleapis.com"

type Config struct {
	Bucket string

	// CredentialsFile points at a service account JSON key. Application
	// default credentials are used when empty.
	CredentialsFile string

	// PublicHost overrides the host used to build object references.
	PublicHost string
}

type Store struct {
	client *storage.Client
	bucket string
	prefix string // "<public host>/<bucket>/"
}

func New(ctx context.Context, cfg Config, opts ...option.ClientOption) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("gcs: bucket is required")
	}
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gcs: create client: %w", err)
	}

	host := strings.TrimRight(cfg.PublicHost, "/")
	if host == "" {
		host = defaultPublicHost
	}

	return &Store{
		client: client,
		bucket: cfg.Bucket,
		prefix: host + "/" + cfg.Bucket + "/",
	}, nil
}

func (s *Store) Close() error { return s.client.Close() }

func (s *Store) Put(ctx context.Context, obj blob.Object) (string, error) {
	if !blob.ValidName(obj.Name) {
		return "", fmt.Errorf("gcs: invalid object name %q", obj.Name)
	}

	w := s.client.Bucket(s.bucket).
		Object(obj.Name).
		If(storage.Conditions{DoesNotExist: true}).
		NewWriter(ctx)
	w.ContentType = obj.ContentType

	if _, err := w.Write(obj.Data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("gcs: write %s: %w", obj.Name, err)
	}
	if err := w.Close(); err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) && gerr.Code == http.StatusPreconditionFailed {
			return "", blob.ErrExists
		}
		return "", fmt.Errorf("gcs: close %s: %w", obj.Name, err)
	}

	return s.prefix + url.PathEscape(obj.Name), nil
}

func (s *Store) Delete(ctx context.Context, ref string) error {
	name, err := s.nameOf(ref)
	if err != nil {
		return err
	}

	err = s.client.Bucket(s.bucket).Object(name).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("gcs: delete %s: %w", name, err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	_, err := s.client.Bucket(s.bucket).Attrs(ctx)
	return err
}

func (s *Store) nameOf(ref string) (string, error) {
	rest, ok := strings.CutPrefix(ref, s.prefix)
	if !ok {
		return "", fmt.Errorf("%w: %q", blob.ErrForeignRef, ref)
	}
	name, err := url.PathUnescape(rest)
	if err != nil || !blob.ValidName(name) {
		return "", fmt.Errorf("%w: %q", blob.ErrForeignRef, ref)
	}
	return name, nil
}
