package drive

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docflow/internal/model"
)

type stubUploader struct {
	mu       sync.Mutex
	failures int
	calls    int
}

func (u *stubUploader) UploadFile(ctx context.Context, localPath, remoteName string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.calls++
	if u.calls <= u.failures {
		return errors.New("drive unreachable")
	}
	return nil
}

func (u *stubUploader) callCount() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.calls
}

type stubStatusStore struct {
	mu       sync.Mutex
	statuses map[string]model.RelayStatus
	done     chan struct{}
}

func newStubStatusStore() *stubStatusStore {
	return &stubStatusStore{
		statuses: make(map[string]model.RelayStatus),
		done:     make(chan struct{}, 8),
	}
}

func (s *stubStatusStore) UpdateRelayStatus(ctx context.Context, id string, status model.RelayStatus) error {
	s.mu.Lock()
	s.statuses[id] = status
	s.mu.Unlock()
	s.done <- struct{}{}
	return nil
}

func (s *stubStatusStore) statusFor(id string) model.RelayStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statuses[id]
}

func newTestRelayer(uploader Uploader, store StatusStore) *Relayer {
	r := NewRelayer(uploader, store, time.UTC)
	r.sleep = func(ctx context.Context, d time.Duration) error { return nil }
	return r
}

func startRelayer(t *testing.T, r *Relayer) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = r.Start(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
}

func waitForStatus(t *testing.T, store *stubStatusStore) {
	t.Helper()
	select {
	case <-store.done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for relay status update")
	}
}

func stagedFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "staged.pdf")
	require.NoError(t, os.WriteFile(path, []byte("content"), 0o600))
	return path
}

func TestRelayerSuccessRemovesTempFile(t *testing.T) {
	path := stagedFile(t)
	uploader := &stubUploader{}
	store := newStubStatusStore()

	r := newTestRelayer(uploader, store)
	startRelayer(t, r)

	require.True(t, r.Enqueue(Job{DocumentID: "doc-1", TempPath: path, RemoteName: "staged.pdf"}))
	waitForStatus(t, store)

	assert.Equal(t, model.RelayMirrored, store.statusFor("doc-1"))
	assert.NoFileExists(t, path)
}

func TestRelayerRetriesTransientFailure(t *testing.T) {
	path := stagedFile(t)
	uploader := &stubUploader{failures: 2}
	store := newStubStatusStore()

	r := newTestRelayer(uploader, store)
	startRelayer(t, r)

	require.True(t, r.Enqueue(Job{DocumentID: "doc-1", TempPath: path, RemoteName: "staged.pdf"}))
	waitForStatus(t, store)

	assert.Equal(t, model.RelayMirrored, store.statusFor("doc-1"))
	assert.Equal(t, 3, uploader.callCount())
	assert.NoFileExists(t, path)
}

func TestRelayerMarksFailedAfterMaxAttempts(t *testing.T) {
	path := stagedFile(t)
	uploader := &stubUploader{failures: 10}
	store := newStubStatusStore()

	r := newTestRelayer(uploader, store)
	startRelayer(t, r)

	require.True(t, r.Enqueue(Job{DocumentID: "doc-1", TempPath: path, RemoteName: "staged.pdf"}))
	waitForStatus(t, store)

	assert.Equal(t, model.RelayFailed, store.statusFor("doc-1"))
	assert.Equal(t, 3, uploader.callCount())
	assert.FileExists(t, path, "staged file should survive a failed relay")
}

func TestRelayerEnqueueFullQueue(t *testing.T) {
	uploader := &stubUploader{}
	store := newStubStatusStore()

	r := NewRelayer(uploader, store, time.UTC)
	r.jobs = make(chan Job, 1)

	assert.True(t, r.Enqueue(Job{DocumentID: "doc-1"}))
	assert.False(t, r.Enqueue(Job{DocumentID: "doc-2"}))
}
