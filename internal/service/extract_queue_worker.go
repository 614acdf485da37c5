package service

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"peakbridge/internal/domain"
	"peakbridge/internal/ingest"
	"peakbridge/internal/port"
)

// ExtractQueueConfig holds settings for the extraction queue worker.
type ExtractQueueConfig struct {
	PollInterval time.Duration
	MaxRetries   int
	Concurrency  int
}

// ExtractQueueWorker polls for queued job files and runs extraction on
// them. Failures are isolated per file: one broken document never stops
// the rest of its batch.
type ExtractQueueWorker struct {
	jobRepo  port.JobRepository
	fileRepo port.JobFileRepository
	rowRepo  port.RowRepository
	storage  port.ObjectStorage
	extract  ExtractService
	email    port.EmailSender
	notifyTo string
	cfg      ExtractQueueConfig
	wg       sync.WaitGroup
}

// NewExtractQueueWorker creates a new ExtractQueueWorker.
func NewExtractQueueWorker(
	jobRepo port.JobRepository,
	fileRepo port.JobFileRepository,
	rowRepo port.RowRepository,
	storage port.ObjectStorage,
	extract ExtractService,
	email port.EmailSender,
	notifyTo string,
	cfg ExtractQueueConfig,
) *ExtractQueueWorker {
	return &ExtractQueueWorker{
		jobRepo:  jobRepo,
		fileRepo: fileRepo,
		rowRepo:  rowRepo,
		storage:  storage,
		extract:  extract,
		email:    email,
		notifyTo: notifyTo,
		cfg:      cfg,
	}
}

// Start runs the polling loop until ctx is canceled. It blocks until all
// in-flight extractions have finished.
func (w *ExtractQueueWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	sem := make(chan struct{}, w.cfg.Concurrency)

	log.Printf("extractQueueWorker: started (poll=%s, concurrency=%d, maxRetries=%d)",
		w.cfg.PollInterval, w.cfg.Concurrency, w.cfg.MaxRetries)

	for {
		select {
		case <-ctx.Done():
			log.Printf("extractQueueWorker: shutting down, waiting for in-flight extractions...")
			w.wg.Wait()
			log.Printf("extractQueueWorker: shutdown complete")
			return
		case <-ticker.C:
			available := w.cfg.Concurrency - len(sem)
			if available <= 0 {
				continue
			}

			files, err := w.fileRepo.ClaimQueued(ctx, available)
			if err != nil {
				if ctx.Err() != nil {
					continue
				}
				log.Printf("extractQueueWorker: ClaimQueued error: %v", err)
				continue
			}

			for i := range files {
				file := files[i] // copy for goroutine

				sem <- struct{}{} // acquire
				w.wg.Add(1)
				go func() {
					defer w.wg.Done()
					defer func() { <-sem }() // release

					// Use a fresh context independent of the poll context
					// so in-flight files complete even during shutdown.
					fileCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
					defer cancel()

					w.processFile(fileCtx, &file)
				}()
			}
		}
	}
}

// processFile runs one document end to end: fetch the stored bytes,
// recover text, extract, persist the row, settle the file state and
// refresh the job counters.
func (w *ExtractQueueWorker) processFile(ctx context.Context, file *domain.JobFile) {
	log.Printf("extractQueueWorker: processing file %s (%s, attempt %d)",
		file.ID, file.OriginalName, file.Attempts)

	data, err := w.storage.Download(ctx, file.StorageBucket, file.StorageKey)
	if err != nil {
		if !IsTransient(err) {
			// The object is gone; waiting will not bring it back.
			w.finish(ctx, file, domain.FileError, domain.PlatformUnknown, "ไม่พบไฟล์ในที่เก็บ")
			return
		}
		w.retryOrFail(ctx, file, "อ่านไฟล์จากที่เก็บไม่สำเร็จ: "+err.Error())
		return
	}

	text, err := ingest.Text(data)
	if err != nil {
		// A PDF the reader cannot even open will not improve on retry.
		w.finish(ctx, file, domain.FileError, domain.PlatformUnknown, "อ่านเอกสารไม่สำเร็จ: "+err.Error())
		return
	}

	job, err := w.jobRepo.GetByID(ctx, file.JobID)
	if err != nil {
		w.retryOrFail(ctx, file, "โหลดงานไม่สำเร็จ: "+err.Error())
		return
	}
	var filter domain.JobFilter
	_ = json.Unmarshal(job.FilterConfig, &filter)

	outcome := w.extract.ExtractDocument(ctx, text, file.OriginalName, filter)

	// Retries re-extract from scratch; drop any rows a previous attempt
	// left behind.
	if err := w.rowRepo.DeleteByFile(ctx, file.ID); err != nil {
		w.retryOrFail(ctx, file, "ล้างแถวเดิมไม่สำเร็จ: "+err.Error())
		return
	}

	errorsJSON, _ := json.Marshal(outcome.Errors)
	rowJSON, _ := json.Marshal(outcome.Row)
	rec := &domain.RowRecord{
		JobID:      file.JobID,
		FileID:     file.ID,
		Seq:        file.Position + 1,
		Platform:   outcome.Platform,
		Status:     outcome.Status,
		SourceFile: file.OriginalName,
		RowData:    rowJSON,
		Errors:     errorsJSON,
	}
	if err := w.rowRepo.Create(ctx, rec); err != nil {
		w.retryOrFail(ctx, file, "บันทึกแถวไม่สำเร็จ: "+err.Error())
		return
	}

	state := domain.FileDone
	message := ""
	switch outcome.Status {
	case domain.RowNeedsReview:
		state = domain.FileNeedsReview
		if len(outcome.Errors) > 0 {
			message = outcome.Errors[0]
		}
	case domain.RowError:
		state = domain.FileError
		if len(outcome.Errors) > 0 {
			message = outcome.Errors[0]
		}
	}
	w.finish(ctx, file, state, outcome.Platform, message)
}

// retryOrFail requeues a file after a transient failure until the
// attempt budget runs out, then marks it failed.
func (w *ExtractQueueWorker) retryOrFail(ctx context.Context, file *domain.JobFile, message string) {
	if file.Attempts < w.cfg.MaxRetries {
		log.Printf("extractQueueWorker: file %s attempt %d failed, requeueing: %s",
			file.ID, file.Attempts, message)
		if err := w.fileRepo.Requeue(ctx, file.ID); err != nil {
			log.Printf("extractQueueWorker: requeue %s: %v", file.ID, err)
		}
		return
	}
	w.finish(ctx, file, domain.FileError, domain.PlatformUnknown, message)
}

// finish settles a file's terminal state and refreshes the job. When the
// refresh reports the job itself just finished, the completion email
// goes out.
func (w *ExtractQueueWorker) finish(ctx context.Context, file *domain.JobFile, state domain.FileState, platform domain.Platform, message string) {
	if err := w.fileRepo.Finish(ctx, file.ID, state, platform, message); err != nil {
		log.Printf("extractQueueWorker: finish %s: %v", file.ID, err)
		return
	}
	job, err := w.jobRepo.RefreshCounters(ctx, file.JobID)
	if err != nil {
		log.Printf("extractQueueWorker: refresh job %s: %v", file.JobID, err)
		return
	}
	log.Printf("extractQueueWorker: file %s -> %s (job %s: %d/%d)",
		file.ID, state, job.ID, job.ProcessedFiles, job.TotalFiles)

	if job.Status.IsTerminal() && job.Status != domain.JobCancelled && w.notifyTo != "" {
		if err := w.email.SendJobFinished(ctx, w.notifyTo, job); err != nil {
			log.Printf("extractQueueWorker: notify for job %s: %v", job.ID, err)
		}
	}
}
