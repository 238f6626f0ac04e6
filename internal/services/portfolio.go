// Package services provides the portfolio and account services that
// orchestrate rendering, blob storage and metadata persistence.
package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mycms/portfolio-backend/internal/blobstore"
	"github.com/mycms/portfolio-backend/internal/common"
	"github.com/mycms/portfolio-backend/internal/render"
	"github.com/mycms/portfolio-backend/internal/repository"
	"github.com/mycms/portfolio-backend/model"
	"github.com/mycms/portfolio-backend/util"
)

// DefaultTemplate is used when a create request names no template.
const DefaultTemplate = "template1"

// blobKeyPrefix namespaces portfolio pages inside the blob store.
const blobKeyPrefix = "portfolios/"

const htmlContentType = "text/html; charset=utf-8"

// PortfolioService implements the portfolio lifecycle:
// create -> present -> update* -> delete.
type PortfolioService struct {
	repo     repository.Portfolios
	blobs    blobstore.Store
	renderer *render.Renderer
	logger   *zap.SugaredLogger
}

// NewPortfolioService wires the service to its collaborators.
func NewPortfolioService(repo repository.Portfolios, blobs blobstore.Store, renderer *render.Renderer, logger *zap.SugaredLogger) *PortfolioService {
	return &PortfolioService{
		repo:     repo,
		blobs:    blobs,
		renderer: renderer,
		logger:   logger,
	}
}

// CreateInput is the validated payload for portfolio generation.
type CreateInput struct {
	Template string
	Username string
	Fields   render.Fields
}

func blobKey(filename string) string {
	return blobKeyPrefix + filename
}

// Create renders the page, stores the blob, then writes the metadata
// record pointing at it. The blob is written first; if the metadata
// write fails afterwards the blob is left orphaned (logged, not
// compensated).
func (s *PortfolioService) Create(ctx context.Context, in CreateInput) (*model.Portfolio, error) {
	if util.IsEmpty(in.Username) || util.IsEmpty(in.Fields.Name) || util.IsEmpty(in.Fields.Bio) ||
		util.IsEmpty(in.Fields.Email) || len(in.Fields.Skills) == 0 || len(in.Fields.Projects) == 0 {
		return nil, fmt.Errorf("required fields missing: %w", common.ErrValidation)
	}

	templateID := in.Template
	if templateID == "" {
		templateID = DefaultTemplate
	}

	htmlContent, err := s.renderer.Render(templateID, in.Fields)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	filename := util.StorageFilename(now.UnixMilli(), in.Fields.Name)

	url, err := s.blobs.Put(ctx, blobKey(filename), []byte(htmlContent), htmlContentType)
	if err != nil {
		return nil, fmt.Errorf("storing portfolio page: %w", err)
	}

	p := &model.Portfolio{
		Username:  in.Username,
		Filename:  filename,
		Title:     in.Fields.Name,
		Bio:       in.Fields.Bio,
		URL:       url,
		CreatedAt: now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		// The page is already durable under its key but no record
		// references it. Surfacing the key lets an operator clean up.
		s.logger.Warnw("metadata write failed, blob orphaned",
			"filename", filename, "error", err)
		return nil, fmt.Errorf("saving portfolio metadata: %w", err)
	}

	return p, nil
}

// List returns the owner's portfolios newest first, each with a derived
// thumbnail. Thumbnail extraction is best effort: a missing blob or an
// imageless page degrades to the default placeholder and never fails
// the listing.
func (s *PortfolioService) List(ctx context.Context, owner string) ([]model.PortfolioListItem, error) {
	if util.IsEmpty(owner) {
		return nil, fmt.Errorf("owner is required: %w", common.ErrValidation)
	}

	records, err := s.repo.ListByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}

	items := make([]model.PortfolioListItem, 0, len(records))
	for _, p := range records {
		thumbnail := model.DefaultThumbnail
		if content, err := s.blobs.Get(ctx, blobKey(p.Filename)); err == nil {
			if extracted := extractThumbnail(content); extracted != "" {
				thumbnail = extracted
			}
		} else {
			s.logger.Debugw("thumbnail extraction skipped", "filename", p.Filename, "error", err)
		}

		items = append(items, model.PortfolioListItem{
			Filename:  p.Filename,
			Title:     p.Title,
			Bio:       p.Bio,
			URL:       p.URL,
			Thumbnail: thumbnail,
		})
	}
	return items, nil
}

// Read returns the stored page verbatim.
func (s *PortfolioService) Read(ctx context.Context, filename string) ([]byte, error) {
	return s.blobs.Get(ctx, blobKey(filename))
}

// Update overwrites the stored page wholesale. Metadata is not touched,
// so title and bio may go stale relative to the new content.
func (s *PortfolioService) Update(ctx context.Context, filename, htmlContent string) error {
	if util.IsEmpty(htmlContent) {
		return fmt.Errorf("html content is required: %w", common.ErrValidation)
	}
	if _, err := s.blobs.Put(ctx, blobKey(filename), []byte(htmlContent), htmlContentType); err != nil {
		return fmt.Errorf("updating portfolio page: %w", err)
	}
	return nil
}

// Delete removes the blob first and only then the metadata record. When
// the blob delete fails the record is kept, so it never points at a
// blob that silently lives on. The reverse gap (blob gone, record
// delete fails) is accepted.
func (s *PortfolioService) Delete(ctx context.Context, filename string) error {
	if err := s.blobs.Delete(ctx, blobKey(filename)); err != nil {
		return fmt.Errorf("deleting portfolio page: %w", err)
	}
	if err := s.repo.Delete(ctx, filename); err != nil {
		return fmt.Errorf("deleting portfolio metadata: %w", err)
	}
	return nil
}
