package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"shortener/internal/domain"
	"shortener/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// sequenceGenerator returns "code1", "code2", ... on successive calls.
func sequenceGenerator() *usecase.MockCodeGenerator {
	n := 0
	return &usecase.MockCodeGenerator{
		NewCodeFunc: func() (string, error) {
			n++
			return fmt.Sprintf("code%d", n), nil
		},
	}
}

func freeNamespace(repo *usecase.MockLinkRepository) {
	repo.CodeInUseFunc = func(ctx context.Context, code string) (bool, error) {
		return false, nil
	}
}

func TestCreate_GeneratesCodeAndPersists(t *testing.T) {
	repo := &usecase.MockLinkRepository{}
	freeNamespace(repo)
	repo.InsertFunc = func(ctx context.Context, link *domain.Link) (*domain.Link, error) {
		saved := *link
		saved.ID = 1
		return &saved, nil
	}
	service := usecase.NewLinkService(repo, sequenceGenerator(), zap.NewNop())

	link, err := service.Create(context.Background(), nil, "https://example.com", "")

	require.NoError(t, err)
	assert.Equal(t, int64(1), link.ID)
	assert.Equal(t, "code1", link.ShortCode)
	assert.Empty(t, link.CustomAlias)
	assert.Equal(t, "https://example.com", link.OriginalURL)
}

func TestCreate_EmptyURL_ReturnsInvalidURL(t *testing.T) {
	service := usecase.NewLinkService(&usecase.MockLinkRepository{}, sequenceGenerator(), zap.NewNop())

	link, err := service.Create(context.Background(), nil, "   ", "")

	assert.ErrorIs(t, err, domain.ErrInvalidURL)
	assert.Nil(t, link)
}

func TestCreate_URLTooLong_ReturnsInvalidURL(t *testing.T) {
	service := usecase.NewLinkService(&usecase.MockLinkRepository{}, sequenceGenerator(), zap.NewNop())

	link, err := service.Create(context.Background(), nil, "https://example.com/"+strings.Repeat("a", 2050), "")

	assert.ErrorIs(t, err, domain.ErrInvalidURL)
	assert.Nil(t, link)
}

func TestCreate_WithAlias_TrimsAndPersists(t *testing.T) {
	repo := &usecase.MockLinkRepository{}
	freeNamespace(repo)
	var inserted *domain.Link
	repo.InsertFunc = func(ctx context.Context, link *domain.Link) (*domain.Link, error) {
		inserted = link
		saved := *link
		saved.ID = 7
		return &saved, nil
	}
	service := usecase.NewLinkService(repo, sequenceGenerator(), zap.NewNop())

	owner := int64(42)
	link, err := service.Create(context.Background(), &owner, "https://example.com", "  my-docs  ")

	require.NoError(t, err)
	assert.Equal(t, "my-docs", link.CustomAlias)
	assert.Equal(t, "my-docs", inserted.CustomAlias)
	assert.NotEqual(t, link.CustomAlias, link.ShortCode, "short code is generated independently of the alias")
	require.NotNil(t, inserted.OwnerID)
	assert.Equal(t, owner, *inserted.OwnerID)
}

func TestCreate_InvalidAlias(t *testing.T) {
	service := usecase.NewLinkService(&usecase.MockLinkRepository{}, sequenceGenerator(), zap.NewNop())

	tests := []struct {
		name  string
		alias string
	}{
		{"illegal characters", "has spaces!"},
		{"too long", strings.Repeat("a", 51)},
		{"reserved route", "api"},
		{"slash", "a/b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			link, err := service.Create(context.Background(), nil, "https://example.com", tt.alias)
			assert.ErrorIs(t, err, domain.ErrInvalidAlias)
			assert.Nil(t, link)
		})
	}
}

func TestCreate_AliasTaken_PreCheck(t *testing.T) {
	repo := &usecase.MockLinkRepository{
		CodeInUseFunc: func(ctx context.Context, code string) (bool, error) {
			return code == "taken", nil
		},
	}
	service := usecase.NewLinkService(repo, sequenceGenerator(), zap.NewNop())

	link, err := service.Create(context.Background(), nil, "https://example.com", "taken")

	assert.ErrorIs(t, err, domain.ErrAliasTaken)
	assert.Nil(t, link)
}

func TestCreate_AliasTaken_AtWriteTime(t *testing.T) {
	// The alias is free at pre-check but a concurrent create wins the race:
	// the insert conflicts and the re-check finds the alias occupied.
	aliasClaimed := false
	repo := &usecase.MockLinkRepository{
		CodeInUseFunc: func(ctx context.Context, code string) (bool, error) {
			return code == "raced" && aliasClaimed, nil
		},
		InsertFunc: func(ctx context.Context, link *domain.Link) (*domain.Link, error) {
			aliasClaimed = true
			return nil, domain.ErrCodeConflict
		},
	}
	service := usecase.NewLinkService(repo, sequenceGenerator(), zap.NewNop())

	link, err := service.Create(context.Background(), nil, "https://example.com", "raced")

	assert.ErrorIs(t, err, domain.ErrAliasTaken)
	assert.Nil(t, link)
}

func TestCreate_CodeCollision_RetriesWithNewCandidate(t *testing.T) {
	repo := &usecase.MockLinkRepository{}
	freeNamespace(repo)
	attempts := 0
	repo.InsertFunc = func(ctx context.Context, link *domain.Link) (*domain.Link, error) {
		attempts++
		if attempts == 1 {
			return nil, domain.ErrCodeConflict
		}
		saved := *link
		saved.ID = 1
		return &saved, nil
	}
	service := usecase.NewLinkService(repo, sequenceGenerator(), zap.NewNop())

	link, err := service.Create(context.Background(), nil, "https://example.com", "")

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.Equal(t, "code2", link.ShortCode, "retry must use a fresh candidate")
}

func TestCreate_PersistentConflict_ReturnsExhausted(t *testing.T) {
	repo := &usecase.MockLinkRepository{}
	freeNamespace(repo)
	repo.InsertFunc = func(ctx context.Context, link *domain.Link) (*domain.Link, error) {
		return nil, domain.ErrCodeConflict
	}
	service := usecase.NewLinkService(repo, sequenceGenerator(), zap.NewNop())

	link, err := service.Create(context.Background(), nil, "https://example.com", "")

	assert.ErrorIs(t, err, domain.ErrCodeExhausted)
	assert.Nil(t, link)
}

func TestCreate_NamespaceFull_ReturnsExhausted(t *testing.T) {
	repo := &usecase.MockLinkRepository{
		CodeInUseFunc: func(ctx context.Context, code string) (bool, error) {
			return true, nil
		},
	}
	service := usecase.NewLinkService(repo, sequenceGenerator(), zap.NewNop())

	link, err := service.Create(context.Background(), nil, "https://example.com", "")

	assert.ErrorIs(t, err, domain.ErrCodeExhausted)
	assert.Nil(t, link)
}

func TestCreate_RepositoryError_Propagates(t *testing.T) {
	repo := &usecase.MockLinkRepository{}
	freeNamespace(repo)
	repoErr := errors.New("database connection failed")
	repo.InsertFunc = func(ctx context.Context, link *domain.Link) (*domain.Link, error) {
		return nil, repoErr
	}
	service := usecase.NewLinkService(repo, sequenceGenerator(), zap.NewNop())

	link, err := service.Create(context.Background(), nil, "https://example.com", "")

	assert.ErrorIs(t, err, repoErr)
	assert.Nil(t, link)
}

func TestResolve_IncrementsAndNormalizes(t *testing.T) {
	increments := 0
	repo := &usecase.MockLinkRepository{
		FindByCodeFunc: func(ctx context.Context, code string) (*domain.Link, error) {
			return &domain.Link{ID: 3, ShortCode: code, OriginalURL: "example.com"}, nil
		},
		IncrementClicksFunc: func(ctx context.Context, id int64) error {
			assert.Equal(t, int64(3), id)
			increments++
			return nil
		},
	}
	service := usecase.NewLinkService(repo, sequenceGenerator(), zap.NewNop())

	target, err := service.Resolve(context.Background(), "abc123")

	require.NoError(t, err)
	assert.Equal(t, "https://example.com", target)
	assert.Equal(t, 1, increments, "each resolution counts exactly one click")
}

func TestResolve_UnknownCode_ReturnsNotFound(t *testing.T) {
	repo := &usecase.MockLinkRepository{
		FindByCodeFunc: func(ctx context.Context, code string) (*domain.Link, error) {
			return nil, domain.ErrLinkNotFound
		},
	}
	service := usecase.NewLinkService(repo, sequenceGenerator(), zap.NewNop())

	target, err := service.Resolve(context.Background(), "doesnotexist")

	assert.ErrorIs(t, err, domain.ErrLinkNotFound)
	assert.Empty(t, target)
}

func TestResolve_IncrementFailure_StillRedirects(t *testing.T) {
	repo := &usecase.MockLinkRepository{
		FindByCodeFunc: func(ctx context.Context, code string) (*domain.Link, error) {
			return &domain.Link{ID: 3, ShortCode: code, OriginalURL: "https://example.com"}, nil
		},
		IncrementClicksFunc: func(ctx context.Context, id int64) error {
			return errors.New("disk full")
		},
	}
	service := usecase.NewLinkService(repo, sequenceGenerator(), zap.NewNop())

	target, err := service.Resolve(context.Background(), "abc123")

	require.NoError(t, err)
	assert.Equal(t, "https://example.com", target)
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"example.com", "https://example.com"},
		{"https://example.com", "https://example.com"},
		{"http://example.com", "http://example.com"},
		{"www.example.com/path?q=1", "https://www.example.com/path?q=1"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, usecase.NormalizeURL(tt.in))
	}
}

func TestList_Anonymous_ReturnsEmpty(t *testing.T) {
	service := usecase.NewLinkService(&usecase.MockLinkRepository{}, sequenceGenerator(), zap.NewNop())

	links, err := service.List(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, links)
}

func TestList_Owner_ReturnsOwnedLinks(t *testing.T) {
	owner := int64(42)
	repo := &usecase.MockLinkRepository{
		ListByOwnerFunc: func(ctx context.Context, ownerID int64) ([]*domain.Link, error) {
			assert.Equal(t, owner, ownerID)
			return []*domain.Link{{ID: 1, OwnerID: &owner, ShortCode: "aa1111"}}, nil
		},
	}
	service := usecase.NewLinkService(repo, sequenceGenerator(), zap.NewNop())

	links, err := service.List(context.Background(), &owner)

	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, "aa1111", links[0].ShortCode)
}

func TestDelete_PassesThrough(t *testing.T) {
	repo := &usecase.MockLinkRepository{
		DeleteFunc: func(ctx context.Context, id, ownerID int64) error {
			assert.Equal(t, int64(5), id)
			assert.Equal(t, int64(42), ownerID)
			return domain.ErrForbidden
		},
	}
	service := usecase.NewLinkService(repo, sequenceGenerator(), zap.NewNop())

	err := service.Delete(context.Background(), 5, 42)

	assert.ErrorIs(t, err, domain.ErrForbidden)
}
