package usecase

import (
	"context"

	"shortener/internal/domain"
)

// LinkRepository is the durable store of links. Uniqueness of short codes and
// custom aliases across both namespaces is enforced here, at write time;
// callers may pre-check with CodeInUse but Insert remains the authority.
type LinkRepository interface {
	// Insert persists a new link. It returns domain.ErrCodeConflict when the
	// short code or custom alias collides with an existing row in either
	// namespace.
	Insert(ctx context.Context, link *domain.Link) (*domain.Link, error)

	// FindByCode returns the link whose short code or custom alias equals
	// code, or domain.ErrLinkNotFound.
	FindByCode(ctx context.Context, code string) (*domain.Link, error)

	// IncrementClicks atomically adds one to the link's click counter.
	IncrementClicks(ctx context.Context, id int64) error

	// ListByOwner returns the owner's links in creation order.
	ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Link, error)

	// Delete removes the link if it belongs to ownerID. It returns
	// domain.ErrLinkNotFound for an unknown id and domain.ErrForbidden when
	// the link exists but is owned by someone else.
	Delete(ctx context.Context, id, ownerID int64) error

	// CodeInUse reports whether code is taken in either namespace.
	CodeInUse(ctx context.Context, code string) (bool, error)
}

// UserRepository stores the identities links are owned by.
type UserRepository interface {
	// Create persists a new user. It returns domain.ErrUsernameTaken when the
	// username is already registered.
	Create(ctx context.Context, username, passwordHash string) (*domain.User, error)

	// FindByUsername returns the user with the given username, or
	// domain.ErrUserNotFound.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}

// CodeGenerator produces random short-code candidates.
type CodeGenerator interface {
	NewCode() (string, error)
}
