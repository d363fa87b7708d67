package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"shortener/internal/domain"

	"go.uber.org/zap"
)

const (
	maxURLLength   = 2048
	maxAliasLength = 50

	// maxSaveRetries bounds write-time collision retries for auto-generated
	// codes; maxAllocateAttempts bounds the generate-and-check loop. Both are
	// operationally near-impossible to hit and exist to cap worst-case latency.
	maxSaveRetries      = 5
	maxAllocateAttempts = 1000
)

var aliasPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// reservedCodes are path segments routed by the service itself; an alias equal
// to one of them would shadow the route.
var reservedCodes = map[string]bool{
	"api":     true,
	"healthz": true,
}

// LinkService implements short-code allocation, resolution and the link
// lifecycle.
type LinkService struct {
	repo   LinkRepository
	gen    CodeGenerator
	logger *zap.Logger
}

// NewLinkService creates a new link service.
func NewLinkService(repo LinkRepository, gen CodeGenerator, logger *zap.Logger) *LinkService {
	return &LinkService{
		repo:   repo,
		gen:    gen,
		logger: logger,
	}
}

// Create validates the request, allocates a collision-free short code and
// persists the link. ownerID is nil for anonymous creation; whether that is
// permitted is the caller's policy decision.
//
// A requested alias is validated against both namespaces and surfaces
// domain.ErrAliasTaken when occupied. The generated short code is always
// independent of the alias; on a write-time collision of the generated code a
// fresh candidate is tried; the storage constraint, not the pre-check, is the
// final authority.
func (s *LinkService) Create(ctx context.Context, ownerID *int64, originalURL, customAlias string) (*domain.Link, error) {
	originalURL = strings.TrimSpace(originalURL)
	if originalURL == "" {
		return nil, fmt.Errorf("%w: original_url is required", domain.ErrInvalidURL)
	}
	if len(originalURL) > maxURLLength {
		return nil, fmt.Errorf("%w: url exceeds maximum length of %d characters", domain.ErrInvalidURL, maxURLLength)
	}

	alias := strings.TrimSpace(customAlias)
	if alias != "" {
		if err := validateAlias(alias); err != nil {
			return nil, err
		}
		inUse, err := s.repo.CodeInUse(ctx, alias)
		if err != nil {
			return nil, err
		}
		if inUse {
			return nil, domain.ErrAliasTaken
		}
	}

	for attempt := 0; attempt < maxSaveRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		code, err := s.allocateCode(ctx)
		if err != nil {
			return nil, err
		}

		link, err := s.repo.Insert(ctx, &domain.Link{
			OwnerID:     ownerID,
			OriginalURL: originalURL,
			ShortCode:   code,
			CustomAlias: alias,
		})
		if err == nil {
			return link, nil
		}
		if !errors.Is(err, domain.ErrCodeConflict) {
			return nil, err
		}

		// The conflict may be on the alias rather than the generated code: a
		// concurrent create can claim it between our pre-check and the insert.
		if alias != "" {
			inUse, checkErr := s.repo.CodeInUse(ctx, alias)
			if checkErr != nil {
				return nil, checkErr
			}
			if inUse {
				return nil, domain.ErrAliasTaken
			}
		}

		s.logger.Info("short code collision, retrying with a new candidate",
			zap.String("short_code", code),
			zap.Int("attempt", attempt+1),
		)
	}

	return nil, domain.ErrCodeExhausted
}

// allocateCode generates candidates until one is free in both namespaces.
func (s *LinkService) allocateCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxAllocateAttempts; attempt++ {
		code, err := s.gen.NewCode()
		if err != nil {
			return "", fmt.Errorf("failed to generate short code: %w", err)
		}
		inUse, err := s.repo.CodeInUse(ctx, code)
		if err != nil {
			return "", err
		}
		if !inUse {
			return code, nil
		}
	}
	return "", domain.ErrCodeExhausted
}

// Resolve maps a short code or alias to its redirect target and records the
// click. A failed click increment is logged but never blocks the redirect.
func (s *LinkService) Resolve(ctx context.Context, code string) (string, error) {
	link, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return "", err
	}

	if err := s.repo.IncrementClicks(ctx, link.ID); err != nil {
		s.logger.Warn("failed to record click",
			zap.String("code", code),
			zap.Int64("link_id", link.ID),
			zap.Error(err),
		)
	}

	return NormalizeURL(link.OriginalURL), nil
}

// List returns the caller's links in creation order. Anonymous callers own
// nothing and get an empty list.
func (s *LinkService) List(ctx context.Context, ownerID *int64) ([]*domain.Link, error) {
	if ownerID == nil {
		return []*domain.Link{}, nil
	}
	return s.repo.ListByOwner(ctx, *ownerID)
}

// Delete removes the link if it belongs to the caller.
func (s *LinkService) Delete(ctx context.Context, id, ownerID int64) error {
	return s.repo.Delete(ctx, id, ownerID)
}

// NormalizeURL ensures the redirect target carries a scheme: stored URLs are
// arbitrary strings and may be bare domains. Already-prefixed URLs are left
// untouched.
func NormalizeURL(raw string) string {
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	return "https://" + raw
}

func validateAlias(alias string) error {
	if len(alias) > maxAliasLength {
		return fmt.Errorf("%w: alias exceeds maximum length of %d characters", domain.ErrInvalidAlias, maxAliasLength)
	}
	if !aliasPattern.MatchString(alias) {
		return fmt.Errorf("%w: alias may only contain letters, digits, '-' and '_'", domain.ErrInvalidAlias)
	}
	if reservedCodes[alias] {
		return fmt.Errorf("%w: alias %q is reserved", domain.ErrInvalidAlias, alias)
	}
	return nil
}
