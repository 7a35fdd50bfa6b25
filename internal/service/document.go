package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/livingprogress/mentorme/internal/model"
	"github.com/livingprogress/mentorme/internal/repository"
	"github.com/livingprogress/mentorme/internal/storage"
	"github.com/livingprogress/mentorme/internal/validation"
)

// ErrStorageUnavailable is returned when documents are used without configured storage.
var ErrStorageUnavailable = errors.New("document storage unavailable")

type DocumentService struct {
	repo        repository.DocumentRepository
	goalRepo    repository.GoalRepository
	storage     storage.Storage
	constraints validation.FileConstraints
}

func NewDocumentService(repo repository.DocumentRepository, goalRepo repository.GoalRepository, storage storage.Storage, maxSize int64) *DocumentService {
	constraints := validation.DocumentConstraints
	if maxSize > 0 {
		constraints = constraints.WithMaxSize(maxSize)
	}

	return &DocumentService{
		repo:        repo,
		goalRepo:    goalRepo,
		storage:     storage,
		constraints: constraints,
	}
}

// WithTx returns a copy whose record lookups run in tx. Storage calls are unaffected.
func (s *DocumentService) WithTx(tx *sqlx.Tx) *DocumentService {
	return &DocumentService{
		repo:        s.repo.WithTx(tx),
		goalRepo:    s.goalRepo.WithTx(tx),
		storage:     s.storage,
		constraints: s.constraints,
	}
}

// Upload validates and stores a file for a goal, then records it.
// The stored object is removed again if the record cannot be created.
func (s *DocumentService) Upload(ctx context.Context, goalID int64, file multipart.File, header *multipart.FileHeader) (*model.Document, error) {
	err := validateID(goalID, "goal id")
	if err != nil {
		return nil, err
	}

	_, err = s.goalRepo.ByID(ctx, goalID)
	if err != nil {
		return nil, wrapRepoErr(err)
	}

	mimeType, err := validation.ValidateFile(header, s.constraints)
	if err != nil {
		return nil, invalidArgument("%s", err.Error())
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	key := path.Join("goals", fmt.Sprint(goalID), uuid.New().String()+ext)

	err = s.storage.Save(ctx, key, mimeType, file)
	if err != nil {
		return nil, storageErr(err)
	}

	document := &model.Document{
		GoalID:       goalID,
		OriginalName: filepath.Base(header.Filename),
		MimeType:     mimeType,
		Size:         header.Size,
		StoragePath:  key,
		CreatedAt:    time.Now(),
	}

	err = s.repo.Create(ctx, document)
	if err != nil {
		delErr := s.storage.Delete(ctx, key)
		if delErr != nil {
			slog.Error("failed to delete document from storage during cleanup", "error", delErr, "key", key)
		}
		return nil, wrapRepoErr(err)
	}

	s.attachURL(ctx, document)
	return document, nil
}

// Documents lists a goal's documents with download URLs.
func (s *DocumentService) Documents(ctx context.Context, goalID int64) ([]*model.Document, error) {
	err := validateID(goalID, "goal id")
	if err != nil {
		return nil, err
	}

	_, err = s.goalRepo.ByID(ctx, goalID)
	if err != nil {
		return nil, wrapRepoErr(err)
	}

	documents, err := s.repo.ByGoal(ctx, goalID)
	if err != nil {
		return nil, wrapRepoErr(err)
	}

	for _, document := range documents {
		s.attachURL(ctx, document)
	}

	return documents, nil
}

func (s *DocumentService) Delete(ctx context.Context, id int64) error {
	err := validateID(id, "id")
	if err != nil {
		return err
	}

	document, err := s.repo.ByID(ctx, id)
	if err != nil {
		return wrapRepoErr(err)
	}

	err = s.repo.Delete(ctx, id)
	if err != nil {
		return wrapRepoErr(err)
	}

	s.removeObject(ctx, document.StoragePath)
	return nil
}

// Stored returns a goal's document records without download URLs, so their
// objects can be removed after the goal's rows are cascaded away.
func (s *DocumentService) Stored(ctx context.Context, goalID int64) ([]*model.Document, error) {
	documents, err := s.repo.ByGoal(ctx, goalID)
	if err != nil {
		return nil, wrapRepoErr(err)
	}
	return documents, nil
}

// StoredForProgram is Stored for every goal of a program.
func (s *DocumentService) StoredForProgram(ctx context.Context, programID int64) ([]*model.Document, error) {
	documents, err := s.repo.ByProgram(ctx, programID)
	if err != nil {
		return nil, wrapRepoErr(err)
	}
	return documents, nil
}

// RemoveObjects deletes stored objects whose rows were cascaded away with their goal.
func (s *DocumentService) RemoveObjects(ctx context.Context, documents []*model.Document) {
	for _, document := range documents {
		s.removeObject(ctx, document.StoragePath)
	}
}

func (s *DocumentService) removeObject(ctx context.Context, key string) {
	err := s.storage.Delete(ctx, key)
	if err != nil && !errors.Is(err, storage.ErrNotConfigured) {
		slog.Error("failed to delete document from storage", "error", err, "key", key)
	}
}

func (s *DocumentService) attachURL(ctx context.Context, document *model.Document) {
	url, err := s.storage.PresignedURL(ctx, document.StoragePath)
	if err != nil {
		if !errors.Is(err, storage.ErrNotConfigured) {
			slog.Warn("failed to presign document url", "error", err, "document_id", document.ID)
		}
		return
	}
	document.URL = url
}

func storageErr(err error) error {
	if errors.Is(err, storage.ErrNotConfigured) {
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return fmt.Errorf("%w: %w", ErrOperationFailed, err)
}
