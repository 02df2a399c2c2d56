package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/civicgrid/complaint-service/internal/config"
	"github.com/civicgrid/complaint-service/internal/domain"
	"github.com/civicgrid/complaint-service/internal/repository"
	"github.com/civicgrid/complaint-service/internal/storage"
	"github.com/civicgrid/complaint-service/pkg/util"
)

// allowedMimeTypes is the declared-type allowlist for uploads.
var allowedMimeTypes = map[string]struct{}{
	"image/jpeg":      {},
	"image/png":       {},
	"image/webp":      {},
	"application/pdf": {},
	"video/mp4":       {},
}

// AttachmentService validates uploads and writes them to object storage.
type AttachmentService struct {
	complaints repository.ComplaintRepository
	attaches   repository.AttachmentRepository
	store      storage.ObjectStore
	maxBytes   int64
}

// NewAttachmentService constructs the service.
func NewAttachmentService(cfg config.StorageConfig, complaints repository.ComplaintRepository, attaches repository.AttachmentRepository, store storage.ObjectStore) *AttachmentService {
	maxBytes := cfg.MaxUploadBytes
	if maxBytes <= 0 {
		maxBytes = 50 * 1024 * 1024
	}
	return &AttachmentService{
		complaints: complaints,
		attaches:   attaches,
		store:      store,
		maxBytes:   maxBytes,
	}
}

// Upload stores a file against a complaint and records its metadata.
// Size is bounded and the declared MIME type must be allowlisted.
func (s *AttachmentService) Upload(ctx context.Context, actor *domain.User, complaintID, fileName, mimeType string, data []byte) (*domain.Attachment, error) {
	if int64(len(data)) > s.maxBytes {
		return nil, util.NewValidationError("file too large", map[string]any{"max_bytes": s.maxBytes})
	}
	if _, ok := allowedMimeTypes[strings.ToLower(strings.TrimSpace(mimeType))]; !ok {
		return nil, util.NewValidationError("unsupported file type", map[string]any{"mime_type": mimeType})
	}

	complaint, err := s.complaints.GetByID(ctx, complaintID)
	if err != nil {
		if util.IsNotFound(err) {
			return nil, util.NewNotFound("complaint", nil)
		}
		return nil, err
	}
	if !canAccessComplaint(actor, complaint) {
		return nil, util.NewForbidden("access denied")
	}

	objectName := buildObjectName(complaint.ID, fileName)
	url, err := s.store.Put(ctx, objectName, mimeType, data)
	if err != nil {
		return nil, err
	}

	attachment := &domain.Attachment{
		ComplaintID: complaint.ID,
		StorageKey:  objectName,
		FileName:    fileName,
		MimeType:    mimeType,
		SizeBytes:   int64(len(data)),
		URL:         url,
	}
	if err := s.attaches.Create(ctx, attachment); err != nil {
		return nil, err
	}
	return attachment, nil
}

// buildObjectName derives a collision-free object key: timestamp plus a
// random suffix, keeping the original extension.
func buildObjectName(complaintID, fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s/%d-%s%s", complaintID, time.Now().UnixMilli(), suffix, ext)
}
