package usecase

import (
	"context"
	"errors"
	"fmt"

	"studio-portfolio/pkg/logger"
	"studio-portfolio/pkg/queue"
)

// CleanupUseCase deletes objects handed over by failed uploads and deletes.
type CleanupUseCase interface {
	Handle(ctx context.Context, task queue.CleanupTask) error
}

type cleanupUseCase struct {
	store  MediaStore
	logger *logger.Logger
}

func NewCleanupUseCase(store MediaStore, logger *logger.Logger) CleanupUseCase {
	return &cleanupUseCase{store: store, logger: logger}
}

// Handle attempts every key and returns the joined failures. Deleting a key
// that is already gone succeeds, so retrying the whole task is safe.
func (uc *cleanupUseCase) Handle(ctx context.Context, task queue.CleanupTask) error {
	var errs []error
	deleted := 0
	for _, key := range task.Keys {
		if err := uc.store.Delete(ctx, key); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
			continue
		}
		deleted++
	}

	uc.logger.Info("Cleanup task (%s, attempt %d): deleted %d of %d objects", task.Reason, task.Attempts+1, deleted, len(task.Keys))
	return errors.Join(errs...)
}
