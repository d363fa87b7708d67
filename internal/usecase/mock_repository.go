package usecase

import (
	"context"

	"shortener/internal/domain"
)

// MockLinkRepository is a test mock for the LinkRepository interface.
type MockLinkRepository struct {
	InsertFunc          func(ctx context.Context, link *domain.Link) (*domain.Link, error)
	FindByCodeFunc      func(ctx context.Context, code string) (*domain.Link, error)
	IncrementClicksFunc func(ctx context.Context, id int64) error
	ListByOwnerFunc     func(ctx context.Context, ownerID int64) ([]*domain.Link, error)
	DeleteFunc          func(ctx context.Context, id, ownerID int64) error
	CodeInUseFunc       func(ctx context.Context, code string) (bool, error)
}

// Ensure MockLinkRepository implements LinkRepository interface
var _ LinkRepository = (*MockLinkRepository)(nil)

func (m *MockLinkRepository) Insert(ctx context.Context, link *domain.Link) (*domain.Link, error) {
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, link)
	}
	panic("MockLinkRepository.InsertFunc not set")
}

func (m *MockLinkRepository) FindByCode(ctx context.Context, code string) (*domain.Link, error) {
	if m.FindByCodeFunc != nil {
		return m.FindByCodeFunc(ctx, code)
	}
	panic("MockLinkRepository.FindByCodeFunc not set")
}

func (m *MockLinkRepository) IncrementClicks(ctx context.Context, id int64) error {
	if m.IncrementClicksFunc != nil {
		return m.IncrementClicksFunc(ctx, id)
	}
	panic("MockLinkRepository.IncrementClicksFunc not set")
}

func (m *MockLinkRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Link, error) {
	if m.ListByOwnerFunc != nil {
		return m.ListByOwnerFunc(ctx, ownerID)
	}
	panic("MockLinkRepository.ListByOwnerFunc not set")
}

func (m *MockLinkRepository) Delete(ctx context.Context, id, ownerID int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id, ownerID)
	}
	panic("MockLinkRepository.DeleteFunc not set")
}

func (m *MockLinkRepository) CodeInUse(ctx context.Context, code string) (bool, error) {
	if m.CodeInUseFunc != nil {
		return m.CodeInUseFunc(ctx, code)
	}
	panic("MockLinkRepository.CodeInUseFunc not set")
}

// MockUserRepository is a test mock for the UserRepository interface.
type MockUserRepository struct {
	CreateFunc         func(ctx context.Context, username, passwordHash string) (*domain.User, error)
	FindByUsernameFunc func(ctx context.Context, username string) (*domain.User, error)
}

// Ensure MockUserRepository implements UserRepository interface
var _ UserRepository = (*MockUserRepository)(nil)

func (m *MockUserRepository) Create(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, username, passwordHash)
	}
	panic("MockUserRepository.CreateFunc not set")
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.FindByUsernameFunc != nil {
		return m.FindByUsernameFunc(ctx, username)
	}
	panic("MockUserRepository.FindByUsernameFunc not set")
}

// MockCodeGenerator is a test mock for the CodeGenerator interface.
type MockCodeGenerator struct {
	NewCodeFunc func() (string, error)
}

// Ensure MockCodeGenerator implements CodeGenerator interface
var _ CodeGenerator = (*MockCodeGenerator)(nil)

func (m *MockCodeGenerator) NewCode() (string, error) {
	if m.NewCodeFunc != nil {
		return m.NewCodeFunc()
	}
	panic("MockCodeGenerator.NewCodeFunc not set")
}
