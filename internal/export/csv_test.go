package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"peakbridge/internal/peak"
)

func TestEscapeCell(t *testing.T) {
	assert.Equal(t, "'=SUM(A1)", EscapeCell("=SUM(A1)"))
	assert.Equal(t, "'+66812345678", EscapeCell("+66812345678"))
	assert.Equal(t, "'-100", EscapeCell("-100"))
	assert.Equal(t, "'@user", EscapeCell("@user"))
	assert.Equal(t, "0105558019581", EscapeCell("0105558019581"))
	assert.Equal(t, "", EscapeCell(""))
}

func TestWriteCSVStartsWithBOM(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), BOM))
}

func TestWriteCSVHeaderOrder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(buf.Bytes(), BOM)))
	header, err := r.Read()
	require.NoError(t, err)
	require.Len(t, header, len(peak.Columns))
	assert.Equal(t, "ลำดับที่*", header[0])
	assert.Equal(t, "วันที่เอกสาร", header[1])
	assert.Equal(t, "กลุ่มจัดประเภท", header[len(header)-1])
}

func TestWriteCSVRenumbersSequence(t *testing.T) {
	rows := []peak.Row{
		{Seq: "7", TaxID: "0105558019581"},
		{Seq: "9", TaxID: "0105561071449"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, rows))

	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(buf.Bytes(), BOM)))
	records, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "1", records[1][0])
	assert.Equal(t, "2", records[2][0])
	assert.Equal(t, "0105561071449", records[2][4])
}

func TestWriteCSVEscapesFormulaCells(t *testing.T) {
	rows := []peak.Row{{Description: "=HYPERLINK(evil)"}}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, rows))

	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(buf.Bytes(), BOM)))
	records, err := r.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "'=HYPERLINK(evil)", records[1][11])
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "a1b2c3", SanitizeFilename("a1b2c3"))
	assert.Equal(t, "my_job", SanitizeFilename("my job!"))
	assert.Equal(t, "a_b", SanitizeFilename("a///___b"))
	assert.Equal(t, "abc", SanitizeFilename("__abc__"))

	long := strings.Repeat("x", 150)
	assert.Len(t, SanitizeFilename(long), 100)
}

func TestBuildFilename(t *testing.T) {
	got := BuildFilename("3f2d1c0b", "csv")
	date := time.Now().Format("2006-01-02")
	assert.Equal(t, "peak_import_3f2d1c0b_"+date+".csv", got)
}
