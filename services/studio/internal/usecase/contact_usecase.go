package usecase

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"studio-portfolio/pkg/logger"
	"studio-portfolio/services/studio/internal/entity"
	"studio-portfolio/services/studio/internal/repo/persistent"
)

const MaxContactMessageLength = 5000

type ContactUseCase interface {
	Submit(ctx context.Context, msg *entity.ContactMessage) error
	List(ctx context.Context, handled *bool, page, limit int) ([]*entity.ContactMessage, entity.Pagination, error)
	MarkHandled(ctx context.Context, id string, handled bool) error
}

type contactUseCase struct {
	contactRepo persistent.ContactRepository
	logger      *logger.Logger
}

func NewContactUseCase(contactRepo persistent.ContactRepository, logger *logger.Logger) ContactUseCase {
	return &contactUseCase{contactRepo: contactRepo, logger: logger}
}

func (uc *contactUseCase) Submit(ctx context.Context, msg *entity.ContactMessage) error {
	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = strings.ToLower(strings.TrimSpace(msg.Email))
	msg.Phone = strings.TrimSpace(msg.Phone)
	msg.Service = strings.TrimSpace(msg.Service)
	msg.Message = strings.TrimSpace(msg.Message)
	msg.Handled = false

	if msg.Name == "" || utf8.RuneCountInString(msg.Name) > MaxNameLength {
		return fmt.Errorf("%w: name must be 1-%d characters", ErrInvalidInput, MaxNameLength)
	}
	if msg.Email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if msg.Message == "" || utf8.RuneCountInString(msg.Message) > MaxContactMessageLength {
		return fmt.Errorf("%w: message must be 1-%d characters", ErrInvalidInput, MaxContactMessageLength)
	}

	if err := uc.contactRepo.Create(ctx, msg); err != nil {
		uc.logger.Error("Failed to store contact message: %v", err)
		return fmt.Errorf("failed to send message")
	}
	uc.logger.Info("Contact message %s received from %s", msg.ID, msg.Email)
	return nil
}

func (uc *contactUseCase) List(ctx context.Context, handled *bool, page, limit int) ([]*entity.ContactMessage, entity.Pagination, error) {
	page, limit = entity.NormalizePage(page, limit)
	items, total, err := uc.contactRepo.List(ctx, handled, limit, entity.Offset(page, limit))
	if err != nil {
		uc.logger.Error("Failed to list contact messages: %v", err)
		return nil, entity.Pagination{}, fmt.Errorf("failed to list messages")
	}
	return items, entity.NewPagination(page, limit, total), nil
}

func (uc *contactUseCase) MarkHandled(ctx context.Context, id string, handled bool) error {
	if err := uc.contactRepo.SetHandled(ctx, id, handled); err != nil {
		return mapRepoError(err)
	}
	return nil
}
