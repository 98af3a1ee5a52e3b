package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"vidconv/internal/apperr"
	"vidconv/internal/model"
	"vidconv/internal/queue"
	"vidconv/internal/storage"
)

const (
	defaultStorageTimeout = 60 * time.Second
	defaultPublishTimeout = 10 * time.Second
	compensateTimeout     = 10 * time.Second
)

// UploadService orchestrates the gateway intake pipeline: store the video
// stream, then durably enqueue a conversion task. Store-then-publish is not
// atomic, so a publish failure rolls the store back with a compensating
// delete; no task may ever reference an object that does not exist.
type UploadService interface {
	// Upload stores the stream and publishes a conversion task for it,
	// returning the durable object id.
	Upload(ctx context.Context, r io.Reader, filename, contentType string, size int64, username string) (string, error)
}

type uploadService struct {
	store          storage.Storage
	pub            queue.Publisher
	log            *slog.Logger
	storageTimeout time.Duration
	publishTimeout time.Duration
}

// NewUploadService constructs an UploadService. Non-positive timeouts fall
// back to package defaults.
func NewUploadService(store storage.Storage, pub queue.Publisher, log *slog.Logger, storageTimeout, publishTimeout time.Duration) UploadService {
	if log == nil {
		log = slog.Default()
	}
	if storageTimeout <= 0 {
		storageTimeout = defaultStorageTimeout
	}
	if publishTimeout <= 0 {
		publishTimeout = defaultPublishTimeout
	}
	return &uploadService{
		store:          store,
		pub:            pub,
		log:            log,
		storageTimeout: storageTimeout,
		publishTimeout: publishTimeout,
	}
}

func (s *uploadService) Upload(ctx context.Context, r io.Reader, filename, contentType string, size int64, username string) (string, error) {
	if r == nil {
		return "", apperr.Newf(apperr.KindBadRequest, "upload stream is nil")
	}

	// Object key is UUID-based: stable, returnable, and collision-free
	// across concurrent uploads of identical filenames.
	key := "videos/" + uuid.New().String() + filepath.Ext(filename)

	sctx, cancel := context.WithTimeout(ctx, s.storageTimeout)
	defer cancel()

	info, err := s.store.Put(sctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": filename,
			"submitter":         username,
		},
	})
	if err != nil {
		// Nothing was enqueued, nothing to compensate.
		return "", apperr.New(apperr.KindStorageFailure, fmt.Errorf("store upload: %w", err))
	}

	task := model.ConvertTask{
		VideoFID: info.Key,
		Username: username,
	}

	pctx, cancel := context.WithTimeout(ctx, s.publishTimeout)
	defer cancel()

	if err := s.pub.Publish(pctx, task); err != nil {
		s.compensate(ctx, info.Key, err)
		return "", apperr.New(apperr.KindPublishFailure, fmt.Errorf("publish task: %w", err))
	}

	return info.Key, nil
}

// compensate deletes the stored object after a failed publish. The delete is
// best effort: a failure leaves an orphaned object, which is logged as an
// operational alert rather than escalated to the client.
func (s *uploadService) compensate(ctx context.Context, key string, publishErr error) {
	dctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), compensateTimeout)
	defer cancel()

	if err := s.store.Delete(dctx, key); err != nil {
		s.log.Error("orphaned object: compensating delete failed",
			"object_id", key,
			"publish_error", publishErr.Error(),
			"delete_error", err.Error(),
		)
		return
	}
	s.log.Warn("publish failed, stored object rolled back",
		"object_id", key,
		"publish_error", publishErr.Error(),
	)
}
