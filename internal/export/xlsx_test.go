package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"peakbridge/internal/peak"
)

func TestWriteXLSXRoundTrip(t *testing.T) {
	rows := []peak.Row{
		peak.Row{Seq: "5", TaxID: "0105558019581", Branch: "00000", PaidAmount: "1234.50", Description: "ค่าธรรมเนียม Shopee"}.Normalized(),
		peak.Row{Seq: "3", TaxID: "0105561071449", PaidAmount: "98.01"}.Normalized(),
	}

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, rows))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	require.Contains(t, sheets, "PEAK_IMPORT")

	got, err := f.GetRows("PEAK_IMPORT")
	require.NoError(t, err)
	require.Len(t, got, 3)

	// Header in sheet order.
	assert.Equal(t, "ลำดับที่*", got[0][0])
	assert.Equal(t, "เลขทะเบียน 13 หลัก", got[0][4])

	// Sequence renumbered, leading zeros preserved.
	assert.Equal(t, "1", got[1][0])
	assert.Equal(t, "2", got[2][0])
	assert.Equal(t, "0105558019581", got[1][4])
	assert.Equal(t, "00000", got[1][5])
}

func TestWriteXLSXEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows("PEAK_IMPORT")
	require.NoError(t, err)
	require.Len(t, got, 1)
}
