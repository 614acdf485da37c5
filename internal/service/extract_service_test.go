package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"peakbridge/internal/domain"
	"peakbridge/internal/extract"
)

const shopeeReceipt = `Shopee (Thailand) Co., Ltd.
บริษัท ช้อปปี้ (ประเทศไทย) จำกัด เลขประจำตัวผู้เสียภาษี 0105558019581 สำนักงานใหญ่
บริษัท แรบบิท ดิจิทัล กรุ๊ป จำกัด เลขประจำตัวผู้เสียภาษี 0105561071873
ใบเสร็จรับเงิน / Receipt
เลขที่เอกสาร: TRS2506120NHXMFW 1218-0001593
วันที่เอกสาร: 12/06/2025
1 Commission Fee 935.00
2 Transaction Fee 65.00
Total Value of Services (Excluded VAT) 1,000.00
VAT 7% 70.00
Total Value of Services (Included VAT) 1,070.00`

func newExtractFixture() ExtractService {
	return NewExtractService(extract.NewEngine())
}

func TestExtractDocumentShopee(t *testing.T) {
	svc := newExtractFixture()

	out := svc.ExtractDocument(context.Background(), shopeeReceipt, "shopee-202506.pdf", domain.JobFilter{})

	require.Equal(t, domain.PlatformShopee, out.Platform)
	assert.Equal(t, domain.RowOK, out.Status)
	assert.Empty(t, out.Errors)
	assert.Equal(t, "TRS2506120NHXMFW1218-0001593", out.Row.InvoiceNo)
	assert.Equal(t, "1070.00", out.Row.PaidAmount)
}

func TestExtractDocumentEmptyText(t *testing.T) {
	svc := newExtractFixture()

	out := svc.ExtractDocument(context.Background(), "   \n\t ", "blank.pdf", domain.JobFilter{})

	assert.Equal(t, domain.RowError, out.Status)
	assert.Equal(t, domain.PlatformUnknown, out.Platform)
	require.Len(t, out.Errors, 1)
	assert.Equal(t, "เอกสารไม่มีข้อความให้อ่าน", out.Errors[0])
}

func TestExtractDocumentPlatformFilterMismatch(t *testing.T) {
	svc := newExtractFixture()

	out := svc.ExtractDocument(context.Background(), shopeeReceipt, "shopee-202506.pdf",
		domain.JobFilter{Platforms: []string{"lazada"}})

	assert.Equal(t, domain.RowNeedsReview, out.Status)
	require.NotEmpty(t, out.Errors)
	assert.Contains(t, out.Errors[len(out.Errors)-1], "ไม่ตรงกับแพลตฟอร์ม")
}

func TestExtractDocumentPlatformFilterMatchIsCaseInsensitive(t *testing.T) {
	svc := newExtractFixture()

	out := svc.ExtractDocument(context.Background(), shopeeReceipt, "shopee-202506.pdf",
		domain.JobFilter{Platforms: []string{" Shopee "}})

	assert.Equal(t, domain.RowOK, out.Status)
}

func TestExtractDocumentCompanyFilterMismatch(t *testing.T) {
	svc := newExtractFixture()

	out := svc.ExtractDocument(context.Background(), shopeeReceipt, "shopee-202506.pdf",
		domain.JobFilter{Companies: []string{"TOPONE"}})

	assert.Equal(t, domain.RowNeedsReview, out.Status)
	require.NotEmpty(t, out.Errors)
	assert.Contains(t, out.Errors[len(out.Errors)-1], "ไม่ตรงกับบริษัท")
}

func TestExtractDocumentCompanyFilterMatch(t *testing.T) {
	svc := newExtractFixture()

	out := svc.ExtractDocument(context.Background(), shopeeReceipt, "shopee-202506.pdf",
		domain.JobFilter{Companies: []string{"rabbit"}})

	assert.Equal(t, domain.RowOK, out.Status)
}
