package media

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/bursa-register/internal/wizard"
)

// ErrNotConfigured is returned when no Cloudinary credentials were provided.
var ErrNotConfigured = errors.New("media store not configured")

// uploadAPI is the part of the Cloudinary upload API the store uses.
type uploadAPI interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
}

// CloudinaryStore uploads wizard images to Cloudinary and returns their
// secure delivery URL.
type CloudinaryStore struct {
	api    uploadAPI
	folder string
	now    func() time.Time
	logger *zap.Logger
}

// NewCloudinaryStore connects with a CLOUDINARY_URL style connection string.
func NewCloudinaryStore(connURL, folder string, logger *zap.Logger) (*CloudinaryStore, error) {
	if connURL == "" {
		return nil, ErrNotConfigured
	}
	cld, err := cloudinary.NewFromURL(connURL)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}
	return newStore(&cld.Upload, folder, logger), nil
}

func newStore(api uploadAPI, folder string, logger *zap.Logger) *CloudinaryStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CloudinaryStore{api: api, folder: folder, now: time.Now, logger: logger}
}

// Upload stores the image under a time-prefixed random public ID.
func (s *CloudinaryStore) Upload(ctx context.Context, file wizard.MediaFile) (string, error) {
	if file.Body == nil {
		return "", errors.New("empty upload body")
	}
	params := uploader.UploadParams{
		Folder:   s.folder,
		PublicID: s.publicID(),
	}

	result, err := s.api.Upload(ctx, file.Body, params)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", file.Name, err)
	}
	if result == nil {
		return "", fmt.Errorf("upload %s: empty response", file.Name)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("upload %s: %s", file.Name, result.Error.Message)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("upload %s: no url returned", file.Name)
	}

	s.logger.Debug("image uploaded",
		zap.String("file", file.Name),
		zap.String("public_id", result.PublicID),
		zap.Int64("bytes", file.Size))
	return result.SecureURL, nil
}

func (s *CloudinaryStore) publicID() string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("%d-%s", s.now().UnixMilli(), random)
}

// Unavailable is the store used when no Cloudinary account is configured.
// Every upload fails and the wizard reports the generic upload error.
type Unavailable struct{}

// Upload always returns ErrNotConfigured.
func (Unavailable) Upload(context.Context, wizard.MediaFile) (string, error) {
	return "", ErrNotConfigured
}
