package service_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"peakbridge/internal/config"
	"peakbridge/internal/domain"
	"peakbridge/internal/peak"
	"peakbridge/internal/port"
	"peakbridge/internal/service"
	"peakbridge/mocks"
)

type jobServiceFixture struct {
	jobRepo  *mocks.MockJobRepo
	fileRepo *mocks.MockJobFileRepo
	rowRepo  *mocks.MockRowRepo
	storage  *mocks.MockObjectStorage
	svc      service.JobService
}

func newJobServiceFixture(upload config.UploadConfig) *jobServiceFixture {
	f := &jobServiceFixture{
		jobRepo:  new(mocks.MockJobRepo),
		fileRepo: new(mocks.MockJobFileRepo),
		rowRepo:  new(mocks.MockRowRepo),
		storage:  new(mocks.MockObjectStorage),
	}
	f.svc = service.NewJobService(f.jobRepo, f.fileRepo, f.rowRepo, f.storage, "uploads", upload)
	return f
}

func pdfUpload(name string) service.UploadFile {
	return service.UploadFile{
		Name:        name,
		ContentType: "application/pdf",
		Size:        1024,
		Body:        strings.NewReader("%PDF-stub"),
	}
}

func TestCreateJobEmptyBatch(t *testing.T) {
	f := newJobServiceFixture(config.UploadConfig{MaxFiles: 50, MaxFileSizeMB: 20})

	_, err := f.svc.CreateJob(context.Background(), service.CreateJobInput{})
	assert.ErrorIs(t, err, domain.ErrEmptyBatch)
}

func TestCreateJobTooManyFiles(t *testing.T) {
	f := newJobServiceFixture(config.UploadConfig{MaxFiles: 2, MaxFileSizeMB: 20})

	input := service.CreateJobInput{Files: []service.UploadFile{
		pdfUpload("a.pdf"), pdfUpload("b.pdf"), pdfUpload("c.pdf"),
	}}
	_, err := f.svc.CreateJob(context.Background(), input)
	assert.ErrorIs(t, err, domain.ErrTooManyFiles)
}

func TestCreateJobFileTooLarge(t *testing.T) {
	f := newJobServiceFixture(config.UploadConfig{MaxFiles: 50, MaxFileSizeMB: 1})

	big := pdfUpload("huge.pdf")
	big.Size = 2 * 1024 * 1024
	_, err := f.svc.CreateJob(context.Background(), service.CreateJobInput{Files: []service.UploadFile{big}})
	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
	assert.Contains(t, err.Error(), "huge.pdf")
}

func TestCreateJobUnsupportedType(t *testing.T) {
	f := newJobServiceFixture(config.UploadConfig{MaxFiles: 50, MaxFileSizeMB: 20})

	img := pdfUpload("scan.png")
	img.ContentType = "image/png"
	_, err := f.svc.CreateJob(context.Background(), service.CreateJobInput{Files: []service.UploadFile{img}})
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
}

func TestCreateJobStoresAndQueuesFiles(t *testing.T) {
	f := newJobServiceFixture(config.UploadConfig{MaxFiles: 50, MaxFileSizeMB: 20})
	ctx := context.Background()
	creator := uuid.New()

	f.jobRepo.On("Create", ctx, mock.AnythingOfType("*domain.Job")).Return(nil)
	f.storage.On("Upload", ctx, mock.AnythingOfType("port.UploadInput")).
		Return(&port.UploadOutput{}, nil).Twice()
	f.fileRepo.On("Create", ctx, mock.AnythingOfType("*domain.JobFile")).Return(nil).Twice()

	job, err := f.svc.CreateJob(ctx, service.CreateJobInput{
		Files:     []service.UploadFile{pdfUpload("a.pdf"), pdfUpload("b.pdf")},
		Filter:    domain.JobFilter{Platforms: []string{"shopee"}},
		CreatedBy: creator,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.JobProcessing, job.Status)
	assert.Equal(t, 2, job.TotalFiles)
	assert.Equal(t, creator, job.CreatedBy)
	assert.JSONEq(t, `{"platforms":["shopee"]}`, string(job.FilterConfig))

	f.jobRepo.AssertExpectations(t)
	f.storage.AssertExpectations(t)
	f.fileRepo.AssertExpectations(t)

	// Files are keyed under the job's prefix and start queued.
	for _, call := range f.fileRepo.Calls {
		file := call.Arguments.Get(1).(*domain.JobFile)
		assert.Equal(t, job.ID, file.JobID)
		assert.Equal(t, domain.FileQueued, file.State)
		assert.True(t, strings.HasPrefix(file.StorageKey, "jobs/"+job.ID.String()+"/"))
		assert.True(t, strings.HasSuffix(file.StorageKey, ".pdf"))
	}
}

func TestListJobsClampsPaging(t *testing.T) {
	f := newJobServiceFixture(config.UploadConfig{})
	ctx := context.Background()

	f.jobRepo.On("List", ctx, 0, 20).Return([]domain.Job{}, 0, nil).Times(3)

	_, _, err := f.svc.ListJobs(ctx, -5, 0)
	require.NoError(t, err)
	_, _, err = f.svc.ListJobs(ctx, 0, -1)
	require.NoError(t, err)
	_, _, err = f.svc.ListJobs(ctx, 0, 500)
	require.NoError(t, err)

	f.jobRepo.AssertExpectations(t)
}

func TestCancelJobAlreadyTerminal(t *testing.T) {
	f := newJobServiceFixture(config.UploadConfig{})
	ctx := context.Background()
	id := uuid.New()

	f.jobRepo.On("GetByID", ctx, id).Return(&domain.Job{ID: id, Status: domain.JobDone}, nil)

	_, err := f.svc.CancelJob(ctx, id)
	assert.ErrorIs(t, err, domain.ErrJobFinished)
	f.jobRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestCancelJob(t *testing.T) {
	f := newJobServiceFixture(config.UploadConfig{})
	ctx := context.Background()
	id := uuid.New()

	running := &domain.Job{ID: id, Status: domain.JobProcessing}
	cancelled := &domain.Job{ID: id, Status: domain.JobCancelled}
	f.jobRepo.On("GetByID", ctx, id).Return(running, nil).Once()
	f.jobRepo.On("UpdateStatus", ctx, id, domain.JobCancelled).Return(nil)
	f.jobRepo.On("GetByID", ctx, id).Return(cancelled, nil).Once()

	job, err := f.svc.CancelJob(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.JobCancelled, job.Status)
	f.jobRepo.AssertExpectations(t)
}

func okRowRecord(t *testing.T, status domain.RowStatus) *domain.RowRecord {
	t.Helper()
	row := peak.Row{
		DocDate:    "20251209",
		TaxID:      "0105558019581",
		InvoiceNo:  "THTAX0125000001",
		PaidAmount: "107.00",
	}.Normalized()
	data, err := json.Marshal(row)
	require.NoError(t, err)
	return &domain.RowRecord{
		ID:      uuid.New(),
		JobID:   uuid.New(),
		Seq:     1,
		Status:  status,
		RowData: data,
		Errors:  []byte(`["something"]`),
	}
}

func TestPatchRowAppliesKnownKeys(t *testing.T) {
	f := newJobServiceFixture(config.UploadConfig{})
	ctx := context.Background()
	rec := okRowRecord(t, domain.RowNeedsReview)

	f.rowRepo.On("GetByID", ctx, rec.ID).Return(rec, nil)
	f.rowRepo.On("Update", ctx, rec).Return(nil)

	got, err := f.svc.PatchRow(ctx, rec.ID, service.RowPatch{
		"E_tax_id_13": "0105561071449",
		"bogus_key":   "ignored",
	})
	require.NoError(t, err)

	var row peak.Row
	require.NoError(t, json.Unmarshal(got.RowData, &row))
	assert.Equal(t, "0105561071449", row.TaxID)
	assert.Equal(t, domain.RowOK, got.Status)
	assert.JSONEq(t, `[]`, string(got.Errors))
}

func TestPatchRowRejectsInvalidEdit(t *testing.T) {
	f := newJobServiceFixture(config.UploadConfig{})
	ctx := context.Background()
	rec := okRowRecord(t, domain.RowOK)

	f.rowRepo.On("GetByID", ctx, rec.ID).Return(rec, nil)

	_, err := f.svc.PatchRow(ctx, rec.ID, service.RowPatch{"B_doc_date": "31/12/2568"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	f.rowRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestPatchRowRejectsErrorRow(t *testing.T) {
	f := newJobServiceFixture(config.UploadConfig{})
	ctx := context.Background()
	rec := okRowRecord(t, domain.RowError)

	f.rowRepo.On("GetByID", ctx, rec.ID).Return(rec, nil)

	_, err := f.svc.PatchRow(ctx, rec.ID, service.RowPatch{"E_tax_id_13": "0105561071449"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestExportRowsSkipsErrorsAndRenumbers(t *testing.T) {
	f := newJobServiceFixture(config.UploadConfig{})
	ctx := context.Background()
	jobID := uuid.New()

	ok1 := okRowRecord(t, domain.RowOK)
	bad := okRowRecord(t, domain.RowError)
	ok2 := okRowRecord(t, domain.RowNeedsReview)

	f.jobRepo.On("GetByID", ctx, jobID).Return(&domain.Job{ID: jobID}, nil)
	f.rowRepo.On("ListByJob", ctx, jobID).Return([]domain.RowRecord{*ok1, *bad, *ok2}, nil)

	rows, err := f.svc.ExportRows(ctx, jobID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "1", rows[0].Seq)
	assert.Equal(t, "2", rows[1].Seq)
}
