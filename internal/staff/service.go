package staff

import (
	"context"
	"errors"

	"gymdesk/internal/auth"
)

var (
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrStaffNotFound      = errors.New("staff member not found")
)

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*Staff, string, string, error)
	Login(ctx context.Context, req LoginRequest) (*Staff, string, string, error)
	GetByID(ctx context.Context, staffID int) (*Staff, error)
	RefreshToken(ctx context.Context, refreshToken string) (string, *Staff, error)
}

type service struct {
	repo      Repository
	jwtSecret string
}

func NewService(repo Repository, jwtSecret string) Service {
	return &service{
		repo:      repo,
		jwtSecret: jwtSecret,
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*Staff, string, string, error) {
	exists, err := s.repo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, "", "", err
	}
	if exists {
		return nil, "", "", ErrEmailExists
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, "", "", err
	}

	st, err := s.repo.Create(ctx, req.Name, req.Email, passwordHash, req.Role)
	if err != nil {
		return nil, "", "", err
	}

	accessToken, refreshToken, err := auth.GenerateTokens(
		st.ID,
		st.Email,
		st.Role,
		s.jwtSecret,
		s.jwtSecret,
	)
	if err != nil {
		return nil, "", "", err
	}

	return st, accessToken, refreshToken, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*Staff, string, string, error) {
	st, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	if !auth.CheckPassword(st.PasswordHash, req.Password) {
		return nil, "", "", ErrInvalidCredentials
	}

	accessToken, refreshToken, err := auth.GenerateTokens(
		st.ID,
		st.Email,
		st.Role,
		s.jwtSecret,
		s.jwtSecret,
	)
	if err != nil {
		return nil, "", "", err
	}

	return st, accessToken, refreshToken, nil
}

func (s *service) GetByID(ctx context.Context, staffID int) (*Staff, error) {
	st, err := s.repo.FindByID(ctx, staffID)
	if err != nil {
		return nil, ErrStaffNotFound
	}
	return st, nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, *Staff, error) {
	_, claims, err := auth.RefreshAccessToken(refreshToken, s.jwtSecret, s.jwtSecret)
	if err != nil {
		return "", nil, err
	}

	st, err := s.repo.FindByID(ctx, claims.StaffID)
	if err != nil {
		return "", nil, ErrStaffNotFound
	}

	newAccessToken, err := auth.GenerateAccessToken(st.ID, st.Email, st.Role, s.jwtSecret)
	if err != nil {
		return "", nil, err
	}

	return newAccessToken, st, nil
}
