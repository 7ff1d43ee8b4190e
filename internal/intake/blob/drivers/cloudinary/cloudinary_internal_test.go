package cloudinary

import (
	"path"
	"testing"
	"time"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/stretchr/testify/require"
	"github.com/yasohm/formulaire/internal/intake/blob"
)

func TestParseRef(t *testing.T) {
	tests := []struct {
		ref  string
		want assetRef
	}{
		{
			ref:  "https://res.cloudinary.com/demo/image/upload/v1726000000/formulaire/photo-1726000000123-abc.png",
			want: assetRef{resourceType: "image", deliveryType: "upload", publicID: "formulaire/photo-1726000000123-abc"},
		},
		{
			ref:  "https://res.cloudinary.com/demo/image/upload/photo-1-x.jpg",
			want: assetRef{resourceType: "image", deliveryType: "upload", publicID: "photo-1-x"},
		},
		{
			ref:  "https://res.cloudinary.com/demo/raw/upload/v12/certificat-1-x.docx",
			want: assetRef{resourceType: "raw", deliveryType: "upload", publicID: "certificat-1-x.docx"},
		},
		{
			ref:  "https://res.cloudinary.com/demo/raw/upload/v12/notes.v2.txt",
			want: assetRef{resourceType: "raw", deliveryType: "upload", publicID: "notes.v2.txt"},
		},
	}

	for _, tt := range tests {
		got, err := parseRef(tt.ref)
		require.NoError(t, err, tt.ref)
		require.Equal(t, tt.want, got, tt.ref)
	}
}

func TestParseRefRejectsForeignRefs(t *testing.T) {
	for _, ref := range []string{
		"",
		"uploads/photo-1-x.png",
		"https://res.cloudinary.com/demo/image",
	} {
		_, err := parseRef(ref)
		require.ErrorIs(t, err, blob.ErrForeignRef, ref)
	}
}

func TestUploadParams(t *testing.T) {
	now := time.UnixMilli(1726000000123)

	tests := []struct {
		kind         blob.Kind
		filename     string
		contentType  string
		resourceType string
		keepsExt     bool
	}{
		{blob.KindPhoto, "moi.png", "image/png", "image", false},
		{blob.KindPhoto, "moi.JPG", "image/jpeg", "image", false},
		{blob.KindCertificate, "attestation.pdf", "application/pdf", "image", false},
		{blob.KindCertificate, "attestation.docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", "raw", true},
		{blob.KindCertificate, "attestation.doc", "application/msword", "raw", true},
		{blob.KindCertificate, "notes.txt", "text/plain; charset=utf-8", "raw", true},
		{blob.KindCertificate, "lettre.rtf", "application/rtf", "raw", true},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			name := blob.NewName(tt.kind, tt.filename, now)
			params := uploadParams(blob.Object{Name: name, ContentType: tt.contentType}, "inscriptions")

			require.Equal(t, tt.resourceType, params.ResourceType)
			require.Equal(t, "inscriptions", params.Folder)
			require.False(t, *params.Overwrite)
			require.False(t, *params.UniqueFilename)
			if tt.keepsExt {
				require.Equal(t, name, params.PublicID)
				require.Equal(t, path.Ext(tt.filename), path.Ext(params.PublicID))
			} else {
				require.Equal(t, name[:len(name)-len(path.Ext(name))], params.PublicID)
			}
		})
	}
}

func TestAlreadyExisted(t *testing.T) {
	require.True(t, alreadyExisted(&uploader.UploadResult{Response: map[string]any{"existing": true}}))
	require.False(t, alreadyExisted(&uploader.UploadResult{Response: map[string]any{"existing": false}}))
	require.False(t, alreadyExisted(&uploader.UploadResult{Response: map[string]any{"public_id": "photo-1-x"}}))
	require.False(t, alreadyExisted(&uploader.UploadResult{}))
}
