package drive

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"docflow/internal/model"
)

// Job is one staged file waiting to be mirrored to the remote drive.
type Job struct {
	DocumentID string
	TempPath   string
	RemoteName string
}

// StatusStore persists relay status transitions for a document.
type StatusStore interface {
	UpdateRelayStatus(ctx context.Context, id string, status model.RelayStatus) error
}

const (
	defaultQueueSize   = 64
	defaultWorkers     = 2
	defaultMaxAttempts = 3
	defaultBaseBackoff = 2 * time.Second
)

// Relayer mirrors staged uploads to the remote drive in the background.
// Jobs are enqueued after the HTTP response is sent; each job is retried
// with exponential backoff and its document row is marked mirrored or
// failed when the outcome is final. The staged temp file is removed only
// after the whole file reached the drive.
type Relayer struct {
	uploader    Uploader
	store       StatusStore
	jobs        chan Job
	workers     int
	maxAttempts int
	baseBackoff time.Duration
	sleep       func(ctx context.Context, d time.Duration) error
	loc         *time.Location
}

// NewRelayer creates a relayer with default queue depth, worker count and
// retry policy.
func NewRelayer(uploader Uploader, store StatusStore, loc *time.Location) *Relayer {
	if loc == nil {
		loc = time.UTC
	}
	return &Relayer{
		uploader:    uploader,
		store:       store,
		jobs:        make(chan Job, defaultQueueSize),
		workers:     defaultWorkers,
		maxAttempts: defaultMaxAttempts,
		baseBackoff: defaultBaseBackoff,
		sleep:       sleepCtx,
		loc:         loc,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Enqueue hands a job to the relay workers. It returns false when the queue
// is full; the document then stays pending for a later sweep.
func (r *Relayer) Enqueue(job Job) bool {
	select {
	case r.jobs <- job:
		return true
	default:
		r.logJSON(map[string]any{
			"event":         "relay_enqueue_dropped",
			"status":        "error",
			"document_id":   job.DocumentID,
			"error_message": "relay queue full",
		})
		return false
	}
}

// Start launches the worker pool. It blocks until ctx is cancelled and all
// in-flight jobs have finished, so call it from its own goroutine.
func (r *Relayer) Start(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < r.workers; i++ {
		g.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case job := <-r.jobs:
					r.process(ctx, job)
				}
			}
		})
	}
	return g.Wait()
}

func (r *Relayer) process(ctx context.Context, job Job) {
	start := time.Now()

	var lastErr error
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		lastErr = r.uploader.UploadFile(ctx, job.TempPath, job.RemoteName)
		if lastErr == nil {
			break
		}

		r.logJSON(map[string]any{
			"event":         "relay_attempt_failed",
			"status":        "error",
			"document_id":   job.DocumentID,
			"attempt":       attempt,
			"error_message": lastErr.Error(),
		})

		if attempt == r.maxAttempts {
			break
		}
		// 2s, 4s, 8s, ...
		backoff := r.baseBackoff << (attempt - 1)
		if err := r.sleep(ctx, backoff); err != nil {
			lastErr = err
			break
		}
	}

	if lastErr != nil {
		// Temp file is kept so a later sweep can retry from local state.
		r.markStatus(job.DocumentID, model.RelayFailed)
		r.logJSON(map[string]any{
			"event":         "relay_failed",
			"status":        "error",
			"document_id":   job.DocumentID,
			"error_message": lastErr.Error(),
			"duration_ms":   time.Since(start).Milliseconds(),
		})
		return
	}

	if err := os.Remove(job.TempPath); err != nil {
		r.logJSON(map[string]any{
			"event":         "relay_temp_cleanup_failed",
			"status":        "error",
			"document_id":   job.DocumentID,
			"error_message": err.Error(),
		})
	}

	r.markStatus(job.DocumentID, model.RelayMirrored)
	r.logJSON(map[string]any{
		"event":       "relay_success",
		"status":      "success",
		"document_id": job.DocumentID,
		"duration_ms": time.Since(start).Milliseconds(),
	})
}

func (r *Relayer) markStatus(documentID string, status model.RelayStatus) {
	// Status writes outlive the request; bound them independently.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := r.store.UpdateRelayStatus(ctx, documentID, status); err != nil {
		r.logJSON(map[string]any{
			"event":         "relay_status_update_failed",
			"status":        "error",
			"document_id":   documentID,
			"relay_status":  string(status),
			"error_message": err.Error(),
		})
	}
}

func (r *Relayer) logJSON(data map[string]any) {
	data["component"] = "relay"
	data["ts"] = time.Now().In(r.loc).Format(time.RFC3339Nano)
	if _, ok := data["level"]; !ok {
		if data["status"] == "error" {
			data["level"] = "error"
		} else {
			data["level"] = "info"
		}
	}

	b, err := json.Marshal(data)
	if err != nil {
		log.Printf("failed to marshal relay log: %v", err)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}
