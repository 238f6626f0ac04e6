package repository

import (
	"context"
	"fmt"

	"github.com/arangodb/go-driver/v2/arangodb"

	"github.com/mycms/portfolio-backend/database"
	"github.com/mycms/portfolio-backend/internal/common"
	"github.com/mycms/portfolio-backend/model"
)

// ArangoPortfolios stores portfolio metadata in the portfolios collection.
type ArangoPortfolios struct {
	db database.DBConnection
}

// NewArangoPortfolios wires the repository to an initialized connection.
func NewArangoPortfolios(db database.DBConnection) *ArangoPortfolios {
	return &ArangoPortfolios{db: db}
}

// Create inserts the metadata record.
func (r *ArangoPortfolios) Create(ctx context.Context, p *model.Portfolio) error {
	meta, err := r.db.Collections[database.PortfoliosCollection].CreateDocument(ctx, p)
	if err != nil {
		return fmt.Errorf("creating portfolio %s: %w", p.Filename, err)
	}
	p.Key = meta.Key
	return nil
}

// ListByOwner returns the owner's records, newest first.
func (r *ArangoPortfolios) ListByOwner(ctx context.Context, owner string) ([]model.Portfolio, error) {
	query := `
		FOR p IN portfolios
			FILTER p.username == @username
			SORT p.createdAt DESC
			RETURN p
	`
	cursor, err := r.db.Database.Query(ctx, query, &arangodb.QueryOptions{
		BindVars: map[string]interface{}{
			"username": owner,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("listing portfolios for %s: %w", owner, err)
	}
	defer cursor.Close()

	portfolios := []model.Portfolio{}
	for cursor.HasMore() {
		var p model.Portfolio
		if _, err := cursor.ReadDocument(ctx, &p); err != nil {
			return nil, fmt.Errorf("reading portfolio for %s: %w", owner, err)
		}
		portfolios = append(portfolios, p)
	}
	return portfolios, nil
}

// Find looks a record up by its storage filename.
func (r *ArangoPortfolios) Find(ctx context.Context, filename string) (*model.Portfolio, error) {
	query := `
		FOR p IN portfolios
			FILTER p.filename == @filename
			LIMIT 1
			RETURN p
	`
	cursor, err := r.db.Database.Query(ctx, query, &arangodb.QueryOptions{
		BindVars: map[string]interface{}{
			"filename": filename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("querying portfolio %s: %w", filename, err)
	}
	defer cursor.Close()

	if !cursor.HasMore() {
		return nil, fmt.Errorf("portfolio %s: %w", filename, common.ErrNotFound)
	}

	var p model.Portfolio
	if _, err := cursor.ReadDocument(ctx, &p); err != nil {
		return nil, fmt.Errorf("reading portfolio %s: %w", filename, err)
	}
	return &p, nil
}

// Delete removes the record for a storage filename.
func (r *ArangoPortfolios) Delete(ctx context.Context, filename string) error {
	query := `
		FOR p IN portfolios
			FILTER p.filename == @filename
			REMOVE p IN portfolios
	`
	cursor, err := r.db.Database.Query(ctx, query, &arangodb.QueryOptions{
		BindVars: map[string]interface{}{
			"filename": filename,
		},
	})
	if err != nil {
		return fmt.Errorf("deleting portfolio %s: %w", filename, err)
	}
	return cursor.Close()
}
