package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPDF(t *testing.T) {
	assert.True(t, IsPDF([]byte("%PDF-1.7\n...")))
	assert.False(t, IsPDF([]byte("ใบเสร็จรับเงิน")))
	assert.False(t, IsPDF(nil))
	assert.False(t, IsPDF([]byte("%PD")))
}

func TestSupportedContentType(t *testing.T) {
	assert.True(t, SupportedContentType("application/pdf"))
	assert.True(t, SupportedContentType("application/x-pdf"))
	assert.True(t, SupportedContentType("text/plain"))
	assert.True(t, SupportedContentType("text/plain; charset=utf-8"))
	assert.True(t, SupportedContentType(" Application/PDF "))
	assert.True(t, SupportedContentType(""))
	assert.True(t, SupportedContentType("application/octet-stream"))

	assert.False(t, SupportedContentType("image/png"))
	assert.False(t, SupportedContentType("application/zip"))
}

func TestTextPassesThroughPlainText(t *testing.T) {
	in := "ใบเสร็จรับเงิน/ใบกำกับภาษี\nShopee (Thailand)"
	out, err := Text([]byte(in))
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestTextRejectsBrokenPDF(t *testing.T) {
	_, err := Text([]byte("%PDF-1.4 truncated garbage"))
	assert.Error(t, err)
}
