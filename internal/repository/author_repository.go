package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/author-service/internal/database"
	"github.com/iliyamo/author-service/internal/model"
	"github.com/iliyamo/author-service/internal/validate"
)

const authorColumns = "authorId, authorActivationToken, authorAvatarUrl, authorEmail, authorHash, authorUsername"

// authorRow mirrors the 'author' table.
type authorRow struct {
	ID              []byte         `db:"authorId"`
	ActivationToken sql.NullString `db:"authorActivationToken"`
	AvatarURL       sql.NullString `db:"authorAvatarUrl"`
	Email           string         `db:"authorEmail"`
	Hash            string         `db:"authorHash"`
	Username        string         `db:"authorUsername"`
}

// toAuthor runs the row back through the validating constructor, so a row
// that no longer satisfies the entity rules surfaces as an error.
func (r authorRow) toAuthor() (*model.Author, error) {
	a, err := model.NewAuthor(validate.IDBytes(r.ID), r.ActivationToken.String,
		r.AvatarURL.String, r.Email, r.Hash, r.Username)
	if err != nil {
		return nil, fmt.Errorf("load author: %w", err)
	}
	return a, nil
}

// AuthorRepo persists authors. The table is expected to exist already.
type AuthorRepo struct{ DB *sqlx.DB }

func NewAuthorRepo(db *sqlx.DB) *AuthorRepo { return &AuthorRepo{DB: db} }

// params binds every column by name. The id goes over the wire as its 16 raw bytes.
func params(a *model.Author) map[string]any {
	id := a.ID()
	var token any
	if t := a.ActivationToken(); t != "" {
		token = t
	}
	return map[string]any{
		"authorId":              id[:],
		"authorActivationToken": token,
		"authorAvatarUrl":       a.AvatarURL(),
		"authorEmail":           a.Email(),
		"authorHash":            a.Hash(),
		"authorUsername":        a.Username(),
	}
}

// Insert adds a new author row.
func (r *AuthorRepo) Insert(ctx context.Context, a *model.Author) error {
	_, err := r.DB.NamedExecContext(ctx,
		`INSERT INTO author (`+authorColumns+`)
		 VALUES (:authorId, :authorActivationToken, :authorAvatarUrl, :authorEmail, :authorHash, :authorUsername)`,
		params(a))
	return uniqueViolation(err)
}

// Update overwrites every mutable column of the row identified by a.ID().
func (r *AuthorRepo) Update(ctx context.Context, a *model.Author) error {
	res, err := r.DB.NamedExecContext(ctx,
		`UPDATE author SET authorActivationToken = :authorActivationToken, authorAvatarUrl = :authorAvatarUrl,
		 authorEmail = :authorEmail, authorHash = :authorHash, authorUsername = :authorUsername
		 WHERE authorId = :authorId`,
		params(a))
	if err != nil {
		return uniqueViolation(err)
	}
	return expectOneRow(res)
}

// Delete removes the author with the given id.
func (r *AuthorRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.DB.NamedExecContext(ctx,
		"DELETE FROM author WHERE authorId = :authorId",
		map[string]any{"authorId": id[:]})
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

// GetByID fetches an author by primary key.
func (r *AuthorRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	return r.getOne(ctx, "authorId = ?", id[:])
}

// GetByUsername fetches an author by exact username.
func (r *AuthorRepo) GetByUsername(ctx context.Context, username string) (*model.Author, error) {
	return r.getOne(ctx, "authorUsername = ?", strings.TrimSpace(username))
}

// GetByEmail fetches an author by normalized email.
func (r *AuthorRepo) GetByEmail(ctx context.Context, email string) (*model.Author, error) {
	return r.getOne(ctx, "authorEmail = ?", strings.ToLower(strings.TrimSpace(email)))
}

// GetByActivationToken fetches the author still waiting on token.
func (r *AuthorRepo) GetByActivationToken(ctx context.Context, token string) (*model.Author, error) {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		return nil, ErrAuthorNotFound
	}
	return r.getOne(ctx, "authorActivationToken = ?", token)
}

// GetAll returns every author ordered by username.
func (r *AuthorRepo) GetAll(ctx context.Context) ([]*model.Author, error) {
	var rows []authorRow
	if err := r.DB.SelectContext(ctx, &rows,
		"SELECT "+authorColumns+" FROM author ORDER BY authorUsername"); err != nil {
		return nil, err
	}
	authors := make([]*model.Author, 0, len(rows))
	for _, row := range rows {
		a, err := row.toAuthor()
		if err != nil {
			return nil, err
		}
		authors = append(authors, a)
	}
	return authors, nil
}

func (r *AuthorRepo) getOne(ctx context.Context, where string, arg any) (*model.Author, error) {
	var row authorRow
	err := r.DB.GetContext(ctx, &row,
		r.DB.Rebind("SELECT "+authorColumns+" FROM author WHERE "+where+" LIMIT 1"), arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAuthorNotFound
		}
		return nil, err
	}
	return row.toAuthor()
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrAuthorNotFound
	}
	return nil
}

// uniqueViolation tags duplicate key errors with the column that clashed.
// Index names follow the column names. Only the part of the driver message
// naming the key is inspected: MySQL also echoes the duplicate value, which
// may itself look like a column name.
func uniqueViolation(err error) error {
	if err == nil || !database.IsDuplicateKey(err) {
		return err
	}
	key := violatedKey(err.Error())
	switch {
	case strings.Contains(key, "authorUsername"):
		return fmt.Errorf("%w: %w", ErrUsernameExists, err)
	case strings.Contains(key, "authorEmail"):
		return fmt.Errorf("%w: %w", ErrEmailExists, err)
	default:
		return fmt.Errorf("%w: %w", ErrConflict, err)
	}
}

// violatedKey cuts msg down to the constraint it names.
//
//	mysql:  Duplicate entry 'x' for key 'author.authorUsername'
//	sqlite: UNIQUE constraint failed: author.authorUsername (2067)
func violatedKey(msg string) string {
	if i := strings.LastIndex(msg, "for key "); i >= 0 {
		return msg[i+len("for key "):]
	}
	if i := strings.LastIndex(msg, "constraint failed: "); i >= 0 {
		return msg[i+len("constraint failed: "):]
	}
	return ""
}
