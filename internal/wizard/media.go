package wizard

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/bursa-register/internal/domain"
)

// MaxImageBytes is the default per-image size limit.
const MaxImageBytes int64 = 5 << 20

// MediaFile is an image selected for upload.
type MediaFile struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// UploadState is the progress of one media field.
type UploadState struct {
	Pending int    `json:"pending"`
	Error   string `json:"error,omitempty"`
}

// Uploads tracks the media fields.
type Uploads struct {
	Logo   UploadState `json:"logo"`
	Photos UploadState `json:"photos"`
}

func (u Uploads) busy() bool {
	return u.Logo.Pending > 0 || u.Photos.Pending > 0
}

// UploadError is a per-field media failure.
type UploadError struct {
	Field  string
	Reason string
	Err    error
}

func (e *UploadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Field, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *UploadError) Unwrap() error { return e.Err }

func maxPhotosReason() string {
	return fmt.Sprintf("Maksimal %d foto", domain.MaxPhotos)
}

// CheckImage applies the local guards that run before any network call.
func CheckImage(file MediaFile, maxBytes int64) string {
	if !strings.HasPrefix(strings.ToLower(file.ContentType), "image/") {
		return "File harus berupa gambar"
	}
	if file.Size > maxBytes {
		return fmt.Sprintf("Ukuran file maksimal %dMB", maxBytes>>20)
	}
	return ""
}

// checkUploadableLocked rejects new uploads once the payload is on its way,
// since their result could no longer reach the submission.
func (w *Wizard) checkUploadableLocked() error {
	if err := w.checkOpenLocked(); err != nil {
		return err
	}
	if w.phase == PhaseSubmitting {
		return ErrSubmissionInFlight
	}
	return nil
}

// UploadLogo uploads the logo. While an upload is pending the slot rejects
// another selection. On failure the logo is cleared.
func (w *Wizard) UploadLogo(ctx context.Context, file MediaFile) (string, error) {
	w.mu.Lock()
	if err := w.checkUploadableLocked(); err != nil {
		w.mu.Unlock()
		return "", err
	}
	if w.uploads.Logo.Pending > 0 {
		w.mu.Unlock()
		return "", ErrUploadInProgress
	}
	if reason := CheckImage(file, w.maxImageBytes); reason != "" {
		w.uploads.Logo.Error = reason
		w.mu.Unlock()
		return "", &UploadError{Field: "logo", Reason: reason}
	}
	w.uploads.Logo = UploadState{Pending: 1}
	w.mu.Unlock()

	url, err := w.deps.Media.Upload(ctx, file)

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.phase.Terminal() {
		return "", ErrClosed
	}
	w.uploads.Logo.Pending = 0
	if err != nil {
		w.draft.LogoURL = ""
		w.uploads.Logo.Error = msgUploadFailed
		w.logger.Warn("logo upload failed", zap.String("file", file.Name), zap.Error(err))
		return "", &UploadError{Field: "logo", Reason: msgUploadFailed, Err: err}
	}
	w.draft.LogoURL = url
	return url, nil
}

// RemoveLogo clears the logo.
func (w *Wizard) RemoveLogo() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.checkOpenLocked(); err != nil {
		return err
	}
	if w.uploads.Logo.Pending > 0 {
		return ErrUploadInProgress
	}
	w.draft.LogoURL = ""
	w.uploads.Logo.Error = ""
	return nil
}

// UploadPhotos uploads a batch of photos concurrently. A batch that would
// take the gallery past the cap is rejected whole before any upload starts.
// Each photo is appended when its own upload resolves, so gallery order is
// completion order. The returned URLs are the ones that succeeded.
func (w *Wizard) UploadPhotos(ctx context.Context, files []MediaFile) ([]string, error) {
	if len(files) == 0 {
		return nil, nil
	}

	w.mu.Lock()
	if err := w.checkUploadableLocked(); err != nil {
		w.mu.Unlock()
		return nil, err
	}
	if len(w.draft.Photos)+w.uploads.Photos.Pending+len(files) > domain.MaxPhotos {
		reason := maxPhotosReason()
		w.uploads.Photos.Error = reason
		w.mu.Unlock()
		return nil, &UploadError{Field: "photos", Reason: reason}
	}
	for _, file := range files {
		if reason := CheckImage(file, w.maxImageBytes); reason != "" {
			w.uploads.Photos.Error = reason
			w.mu.Unlock()
			return nil, &UploadError{Field: "photos", Reason: reason}
		}
	}
	w.uploads.Photos.Pending += len(files)
	w.uploads.Photos.Error = ""
	w.mu.Unlock()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		uploaded []string
		firstErr error
	)
	for _, file := range files {
		wg.Add(1)
		go func(file MediaFile) {
			defer wg.Done()
			url, err := w.deps.Media.Upload(ctx, file)
			kept, rerr := w.resolvePhoto(file, url, err)
			mu.Lock()
			defer mu.Unlock()
			if kept {
				uploaded = append(uploaded, url)
			}
			if rerr != nil && firstErr == nil {
				firstErr = rerr
			}
		}(file)
	}
	wg.Wait()
	return uploaded, firstErr
}

func (w *Wizard) resolvePhoto(file MediaFile, url string, err error) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.phase.Terminal() {
		return false, ErrClosed
	}
	w.uploads.Photos.Pending--
	if err != nil {
		w.uploads.Photos.Error = msgUploadFailed
		w.logger.Warn("photo upload failed", zap.String("file", file.Name), zap.Error(err))
		return false, &UploadError{Field: "photos", Reason: msgUploadFailed, Err: err}
	}
	w.draft.Photos = append(w.draft.Photos, url)
	return true, nil
}

// RemovePhoto deletes the photo at index.
func (w *Wizard) RemovePhoto(index int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.checkOpenLocked(); err != nil {
		return err
	}
	if index < 0 || index >= len(w.draft.Photos) {
		return &FieldError{Field: "photos", Reason: fmt.Sprintf("no photo at index %d", index)}
	}
	w.draft.Photos = append(w.draft.Photos[:index], w.draft.Photos[index+1:]...)
	w.uploads.Photos.Error = ""
	return nil
}
