package user

import (
	"context"
	"database/sql"
	"errors"

	"gymdesk/internal/auth"
)

var (
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

type Service interface {
	Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error)
	Me(ctx context.Context, userID int) (*MeResponse, error)
}

type service struct {
	repo      Repository
	jwtSecret string
}

func NewService(repo Repository, jwtSecret string) Service {
	return &service{repo: repo, jwtSecret: jwtSecret}
}

func (s *service) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	exists, err := s.repo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	u, gymID, err := s.repo.CreateOwner(ctx, req.Email, passwordHash, req.GymName)
	if err != nil {
		return nil, err
	}

	return s.respond(u, gymID)
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	u, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(u.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	gymID, err := s.repo.GymIDForUser(ctx, u.ID)
	if err != nil {
		return nil, err
	}

	return s.respond(u, gymID)
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	_, claims, err := auth.RefreshAccessToken(refreshToken, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	u, err := s.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return s.respond(u, claims.GymID)
}

func (s *service) Me(ctx context.Context, userID int) (*MeResponse, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	gymID, err := s.repo.GymIDForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &MeResponse{User: *u, GymID: gymID}, nil
}

func (s *service) respond(u *User, gymID int) (*AuthResponse, error) {
	accessToken, refreshToken, err := auth.GenerateTokens(u.ID, gymID, u.Email, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         *u,
		GymID:        gymID,
	}, nil
}
