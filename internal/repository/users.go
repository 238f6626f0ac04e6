package repository

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/arangodb/go-driver/v2/arangodb"
	"github.com/arangodb/go-driver/v2/arangodb/shared"

	"github.com/mycms/portfolio-backend/database"
	"github.com/mycms/portfolio-backend/internal/common"
	"github.com/mycms/portfolio-backend/model"
)

// ArangoUsers stores user accounts in the users collection.
type ArangoUsers struct {
	db database.DBConnection
}

// NewArangoUsers wires the repository to an initialized connection.
func NewArangoUsers(db database.DBConnection) *ArangoUsers {
	return &ArangoUsers{db: db}
}

// Find looks a user up by username.
func (r *ArangoUsers) Find(ctx context.Context, username string) (*model.User, error) {
	query := `
		FOR u IN users
			FILTER u.username == @username
			LIMIT 1
			RETURN u
	`
	cursor, err := r.db.Database.Query(ctx, query, &arangodb.QueryOptions{
		BindVars: map[string]interface{}{
			"username": username,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("querying user %s: %w", username, err)
	}
	defer cursor.Close()

	if !cursor.HasMore() {
		return nil, fmt.Errorf("user %s: %w", username, common.ErrNotFound)
	}

	var user model.User
	if _, err := cursor.ReadDocument(ctx, &user); err != nil {
		return nil, fmt.Errorf("reading user %s: %w", username, err)
	}
	return &user, nil
}

// Create inserts the user. The unique persistent index on username is
// the real uniqueness guarantee; its violation surfaces as ErrConflict
// even when two signups pass the service-level pre-check concurrently.
func (r *ArangoUsers) Create(ctx context.Context, u *model.User) (string, error) {
	meta, err := r.db.Collections[database.UsersCollection].CreateDocument(ctx, u)
	if err != nil {
		if shared.IsArangoErrorWithCode(err, http.StatusConflict) {
			return "", fmt.Errorf("user %s: %w", u.Username, common.ErrConflict)
		}
		return "", fmt.Errorf("creating user %s: %w", u.Username, err)
	}
	return meta.Key, nil
}

// Update applies the patch with falsy-means-keep semantics, matching
// the original system: an empty patch field is "no change", never
// "clear the field".
func (r *ArangoUsers) Update(ctx context.Context, username string, patch model.UserPatch) (*model.User, error) {
	user, err := r.Find(ctx, username)
	if err != nil {
		return nil, err
	}

	if patch.Realname != "" {
		user.Realname = patch.Realname
	}
	if patch.Bio != "" {
		user.Bio = patch.Bio
	}
	if patch.ProfilePic != "" {
		user.ProfilePic = patch.ProfilePic
	}
	user.UpdatedAt = time.Now()

	query := `
		FOR u IN users
			FILTER u.username == @username
			UPDATE u WITH {
				realname: @realname,
				bio: @bio,
				profilePic: @profilePic,
				updated_at: @updatedAt
			} IN users
			RETURN NEW
	`
	cursor, err := r.db.Database.Query(ctx, query, &arangodb.QueryOptions{
		BindVars: map[string]interface{}{
			"username":   username,
			"realname":   user.Realname,
			"bio":        user.Bio,
			"profilePic": user.ProfilePic,
			"updatedAt":  user.UpdatedAt,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("updating user %s: %w", username, err)
	}
	defer cursor.Close()

	if !cursor.HasMore() {
		return nil, fmt.Errorf("user %s: %w", username, common.ErrNotFound)
	}

	var updated model.User
	if _, err := cursor.ReadDocument(ctx, &updated); err != nil {
		return nil, fmt.Errorf("reading updated user %s: %w", username, err)
	}
	return &updated, nil
}
