package usecase

import (
	"context"
	"io"

	"studio-portfolio/pkg/queue"
)

// MediaStore is the external host holding uploaded files. *s3.Client
// satisfies it.
type MediaStore interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// CleanupPublisher hands undeletable objects to the cleanup worker.
type CleanupPublisher interface {
	PublishCleanupTask(ctx context.Context, task queue.CleanupTask) error
}
