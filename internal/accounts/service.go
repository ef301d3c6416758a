package accounts

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

// TokenIssuer signs a bearer token for a username.
type TokenIssuer interface {
	Issue(username string) (string, error)
}

type Service struct {
	Repo   Repo
	Tokens TokenIssuer
	cost   int
	now    func() time.Time
}

func NewService(repo Repo, tokens TokenIssuer) *Service {
	return &Service{Repo: repo, Tokens: tokens, cost: bcryptCost, now: time.Now}
}

func (s *Service) FindByEmail(ctx context.Context, email string) (Account, error) {
	return s.Repo.GetByEmail(ctx, strings.TrimSpace(email))
}

// Register creates an account. The lookup is an early exit; the repo enforces uniqueness.
func (s *Service) Register(ctx context.Context, reg Registration) (Account, error) {
	email := strings.TrimSpace(reg.Email)
	if email == "" || reg.Password == "" {
		return Account{}, errors.New("email and password are required")
	}
	if _, err := s.Repo.GetByEmail(ctx, email); err == nil {
		return Account{}, ErrDuplicateAccount
	} else if !errors.Is(err, ErrNotFound) {
		return Account{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), s.cost)
	if err != nil {
		return Account{}, err
	}
	a := Account{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     reg.FullName,
		AvatarURL:    reg.AvatarURL,
		Role:         NormalizeRole(reg.Role),
		Verified:     reg.Verified,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.Repo.Create(ctx, a); err != nil {
		return Account{}, err
	}
	return a, nil
}

// Update replaces the mutable fields. A blank password keeps the stored hash.
func (s *Service) Update(ctx context.Context, reg Registration) (Account, error) {
	existing, err := s.Repo.GetByEmail(ctx, strings.TrimSpace(reg.Email))
	if err != nil {
		return Account{}, err
	}
	existing.FullName = reg.FullName
	existing.AvatarURL = reg.AvatarURL
	existing.Role = NormalizeRole(reg.Role)
	existing.Verified = reg.Verified
	if reg.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), s.cost)
		if err != nil {
			return Account{}, err
		}
		existing.PasswordHash = string(hash)
	}
	if err := s.Repo.Update(ctx, existing); err != nil {
		return Account{}, err
	}
	return existing, nil
}

func (s *Service) ListAll(ctx context.Context) ([]Account, error) {
	return s.Repo.List(ctx)
}

// DisplayName returns the full name and whether the account exists.
func (s *Service) DisplayName(ctx context.Context, email string) (string, bool, error) {
	a, err := s.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return a.FullName, true, nil
}

// Login checks the password and issues a token. Every failure maps to ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	a, err := s.FindByEmail(ctx, email)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	token, err := s.Tokens.Issue(a.Email)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	return token, nil
}
