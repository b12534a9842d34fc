package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/viralforge/sigpac-weather/internal/domain"
	"github.com/viralforge/sigpac-weather/internal/ports"
)

func (s *Service) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	username := strings.TrimSpace(req.Username)
	rawEmail := strings.TrimSpace(req.Email)
	if err := domain.ValidateRegistration(username, rawEmail, req.Password, req.ConfirmPassword); err != nil {
		return AuthResponse{}, err
	}
	email, err := normalizeEmail(rawEmail)
	if err != nil {
		return AuthResponse{}, err
	}

	if err := s.ensureAvailable(ctx, username, email); err != nil {
		return AuthResponse{}, err
	}

	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return AuthResponse{}, fmt.Errorf("hash password: %w", err)
	}

	now := s.nowFn()
	account := domain.Account{
		AccountID:    uuid.New(),
		Username:     username,
		DisplayName:  strings.TrimSpace(req.DisplayName),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
	}
	if err := s.accounts.Insert(ctx, account); err != nil {
		return AuthResponse{}, err
	}

	token, claims, err := s.issueToken(account.AccountID, now)
	if err != nil {
		return AuthResponse{}, err
	}

	s.publishEvent(ctx, "account.registered", account.AccountID.String(), map[string]any{
		"account_id":    account.AccountID,
		"username":      account.Username,
		"registered_at": now,
	})

	return AuthResponse{
		Token:     token,
		ExpiresAt: claims.ExpiresAt,
		Account:   toAccountView(account),
	}, nil
}

// ensureAvailable rejects a registration whose username or email is taken. Storage
// repeats the check atomically, this one exists to report a clean conflict early.
func (s *Service) ensureAvailable(ctx context.Context, username, email string) error {
	if _, err := s.accounts.GetByUsername(ctx, username); err == nil {
		return fmt.Errorf("%w: username already registered", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("lookup username: %w", err)
	}
	if _, err := s.accounts.GetByEmail(ctx, email); err == nil {
		return fmt.Errorf("%w: email already registered", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("lookup email: %w", err)
	}
	return nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (AuthResponse, error) {
	identifier := strings.TrimSpace(req.Identifier)
	if identifier == "" {
		return AuthResponse{}, fmt.Errorf("%w: identifier is required", domain.ErrValidation)
	}
	if req.Password == "" {
		return AuthResponse{}, fmt.Errorf("%w: password is required", domain.ErrValidation)
	}

	account, err := s.findByIdentifier(ctx, identifier)
	if err != nil {
		return AuthResponse{}, err
	}
	if err := s.hasher.Compare(account.PasswordHash, req.Password); err != nil {
		return AuthResponse{}, domain.ErrInvalidCredentials
	}

	token, claims, err := s.issueToken(account.AccountID, s.nowFn())
	if err != nil {
		return AuthResponse{}, err
	}
	return AuthResponse{
		Token:     token,
		ExpiresAt: claims.ExpiresAt,
		Account:   toAccountView(account),
	}, nil
}

// findByIdentifier tries the username first (exact match), then the email
// (case-insensitive).
func (s *Service) findByIdentifier(ctx context.Context, identifier string) (domain.Account, error) {
	account, err := s.accounts.GetByUsername(ctx, identifier)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.Account{}, fmt.Errorf("lookup username: %w", err)
	}
	account, err = s.accounts.GetByEmail(ctx, strings.ToLower(identifier))
	if err == nil {
		return account, nil
	}
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Account{}, fmt.Errorf("%w: no account for identifier", domain.ErrNotFound)
	}
	return domain.Account{}, fmt.Errorf("lookup email: %w", err)
}

// IssueToken signs a fresh session token for the account.
func (s *Service) IssueToken(accountID uuid.UUID) (string, ports.TokenClaims, error) {
	return s.issueToken(accountID, s.nowFn())
}

func (s *Service) issueToken(accountID uuid.UUID, now time.Time) (string, ports.TokenClaims, error) {
	claims := ports.TokenClaims{
		AccountID: accountID,
		TokenID:   uuid.New(),
		IssuedAt:  now,
		ExpiresAt: now.Add(s.cfg.TokenTTL),
	}
	token, err := s.tokenSigner.Sign(claims)
	if err != nil {
		return "", ports.TokenClaims{}, fmt.Errorf("sign token: %w", err)
	}
	return token, claims, nil
}

// VerifyToken checks signature and expiry only. It never touches storage.
func (s *Service) VerifyToken(token string) (ports.TokenClaims, error) {
	claims, err := s.tokenSigner.Parse(token, s.nowFn())
	if err != nil {
		if errors.Is(err, domain.ErrInvalidToken) {
			return ports.TokenClaims{}, err
		}
		return ports.TokenClaims{}, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	return claims, nil
}

// Authenticate is VerifyToken plus the logout denylist.
func (s *Service) Authenticate(ctx context.Context, token string) (ports.TokenClaims, error) {
	claims, err := s.VerifyToken(token)
	if err != nil {
		return ports.TokenClaims{}, err
	}
	if s.revocations == nil {
		return claims, nil
	}
	revoked, err := s.revocations.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		return ports.TokenClaims{}, fmt.Errorf("check token revocation: %w", err)
	}
	if revoked {
		return ports.TokenClaims{}, domain.ErrTokenRevoked
	}
	return claims, nil
}

// Logout revokes the presented token until its natural expiry. Other tokens of the
// same account stay valid.
func (s *Service) Logout(ctx context.Context, token string) error {
	claims, err := s.Authenticate(ctx, token)
	if err != nil {
		return err
	}
	if s.revocations == nil {
		return nil
	}
	if err := s.revocations.Revoke(ctx, claims.TokenID, claims.ExpiresAt); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (s *Service) Profile(ctx context.Context, accountID uuid.UUID) (AccountView, error) {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return AccountView{}, domain.ErrUnauthorized
		}
		return AccountView{}, err
	}
	return toAccountView(account), nil
}
