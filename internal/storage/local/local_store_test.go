package local

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"peakbridge/internal/domain"
	"peakbridge/internal/port"
)

func TestUploadDownloadDelete(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = store.Upload(ctx, port.UploadInput{
		Key:         "jobs/abc/file1.pdf",
		Body:        strings.NewReader("%PDF-content"),
		ContentType: "application/pdf",
	})
	require.NoError(t, err)

	data, err := store.Download(ctx, "ignored", "jobs/abc/file1.pdf")
	require.NoError(t, err)
	assert.Equal(t, "%PDF-content", string(data))

	require.NoError(t, store.Delete(ctx, "ignored", "jobs/abc/file1.pdf"))

	_, err = store.Download(ctx, "ignored", "jobs/abc/file1.pdf")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDownloadMissingKey(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Download(context.Background(), "", "nope/missing.pdf")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRejectsTraversalKeys(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = store.Upload(ctx, port.UploadInput{Key: "../escape.txt", Body: strings.NewReader("x")})
	assert.Error(t, err)

	_, err = store.Download(ctx, "", "/etc/passwd")
	assert.Error(t, err)

	assert.Error(t, store.Delete(ctx, "", ".."))
}

func TestDeleteMissingKeyIsNoop(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Delete(context.Background(), "", "never/was.pdf"))
}
