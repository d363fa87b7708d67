package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"shortener/internal/domain"
	"shortener/internal/usecase"
)

// LinkRepository implements usecase.LinkRepository on SQLite.
type LinkRepository struct {
	db *sql.DB
}

// NewLinkRepository creates a new SQLite-backed link repository.
func NewLinkRepository(db *sql.DB) *LinkRepository {
	return &LinkRepository{db: db}
}

// Ensure LinkRepository implements usecase.LinkRepository at compile time
var _ usecase.LinkRepository = (*LinkRepository)(nil)

// insertLink is a guarded insert: the NOT EXISTS check spans both the
// short_code and custom_alias namespaces for both candidate values, so the
// cross-namespace uniqueness invariant holds in a single atomic statement.
// Zero rows returned means the guard fired (a collision). The per-column
// UNIQUE indexes remain as backstop.
const insertLink = `
INSERT INTO links (owner_id, original_url, short_code, custom_alias, created_at)
SELECT ?, ?, ?, ?, ?
WHERE NOT EXISTS (
    SELECT 1 FROM links
    WHERE short_code = ? OR custom_alias = ?
       OR short_code = ? OR custom_alias = ?
)
RETURNING id, created_at`

// Insert persists a new link, returning domain.ErrCodeConflict when the short
// code or alias is already taken in either namespace.
func (r *LinkRepository) Insert(ctx context.Context, link *domain.Link) (*domain.Link, error) {
	alias := sql.NullString{String: link.CustomAlias, Valid: link.CustomAlias != ""}

	// With no alias the second candidate degenerates to the short code, which
	// the guard has already checked.
	second := link.ShortCode
	if alias.Valid {
		second = link.CustomAlias
	}

	createdAt := link.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	var (
		id       int64
		storedAt time.Time
	)
	err := r.db.QueryRowContext(ctx, insertLink,
		link.OwnerID, link.OriginalURL, link.ShortCode, alias, createdAt,
		link.ShortCode, link.ShortCode, second, second,
	).Scan(&id, &storedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, domain.ErrCodeConflict
		}
		return nil, fmt.Errorf("insert link: %w", err)
	}

	saved := *link
	saved.ID = id
	saved.CreatedAt = storedAt
	return &saved, nil
}

const findByCode = `
SELECT id, owner_id, original_url, short_code, custom_alias, clicks, created_at
FROM links
WHERE short_code = ? OR custom_alias = ?`

// FindByCode looks a link up across both the short-code and alias namespaces.
func (r *LinkRepository) FindByCode(ctx context.Context, code string) (*domain.Link, error) {
	link, err := scanLink(r.db.QueryRowContext(ctx, findByCode, code, code))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrLinkNotFound
		}
		return nil, fmt.Errorf("find link by code: %w", err)
	}
	return link, nil
}

// IncrementClicks adds one to the click counter as a single atomic update, so
// concurrent resolutions never lose an increment.
func (r *LinkRepository) IncrementClicks(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE links SET clicks = clicks + 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("increment clicks: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("increment clicks: %w", err)
	}
	if affected == 0 {
		return domain.ErrLinkNotFound
	}
	return nil
}

const listByOwner = `
SELECT id, owner_id, original_url, short_code, custom_alias, clicks, created_at
FROM links
WHERE owner_id = ?
ORDER BY created_at, id`

// ListByOwner returns the owner's links in creation order.
func (r *LinkRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Link, error) {
	rows, err := r.db.QueryContext(ctx, listByOwner, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list links: %w", err)
	}
	defer rows.Close()

	var links []*domain.Link
	for rows.Next() {
		link, err := scanLink(rows)
		if err != nil {
			return nil, fmt.Errorf("list links: %w", err)
		}
		links = append(links, link)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list links: %w", err)
	}
	return links, nil
}

// Delete removes the link only when it belongs to ownerID. Links created
// anonymously have no owner and cannot be deleted through this path.
func (r *LinkRepository) Delete(ctx context.Context, id, ownerID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM links WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete link: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete link: %w", err)
	}
	if affected > 0 {
		return nil
	}

	// Distinguish a missing link from one owned by someone else.
	var exists bool
	err = r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM links WHERE id = ?)`, id).Scan(&exists)
	if err != nil {
		return fmt.Errorf("delete link: %w", err)
	}
	if exists {
		return domain.ErrForbidden
	}
	return domain.ErrLinkNotFound
}

// CodeInUse reports whether code is taken as a short code or an alias. It is
// an optimization for the allocator's pre-check; Insert stays authoritative.
func (r *LinkRepository) CodeInUse(ctx context.Context, code string) (bool, error) {
	var inUse bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM links WHERE short_code = ? OR custom_alias = ?)`,
		code, code,
	).Scan(&inUse)
	if err != nil {
		return false, fmt.Errorf("code in use: %w", err)
	}
	return inUse, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLink(row rowScanner) (*domain.Link, error) {
	var (
		link  domain.Link
		owner sql.NullInt64
		alias sql.NullString
	)
	err := row.Scan(&link.ID, &owner, &link.OriginalURL, &link.ShortCode, &alias, &link.Clicks, &link.CreatedAt)
	if err != nil {
		return nil, err
	}
	if owner.Valid {
		link.OwnerID = &owner.Int64
	}
	link.CustomAlias = alias.String
	return &link, nil
}
