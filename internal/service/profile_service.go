package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"soulsig/internal/domain"
	"soulsig/internal/repository"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrProfileExists   = errors.New("profile already exists")
	ErrInvalidUserID   = errors.New("user id is required")
)

// ProfileService administra los perfiles de firma: el ancla de todo lo demás.
type ProfileService struct {
	profiles repository.ProfileRepository
	logger   *zap.Logger
}

func NewProfileService(profiles repository.ProfileRepository, logger *zap.Logger) *ProfileService {
	return &ProfileService{
		profiles: profiles,
		logger:   logger,
	}
}

// Create da de alta el perfil de un usuario. Un usuario tiene a lo sumo uno.
func (s *ProfileService) Create(ctx context.Context, userID, displayName string) (domain.Profile, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return domain.Profile{}, ErrInvalidUserID
	}

	if _, err := s.profiles.GetByUserID(ctx, userID); err == nil {
		return domain.Profile{}, ErrProfileExists
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return domain.Profile{}, fmt.Errorf("check existing profile: %w", err)
	}

	now := time.Now().UTC()
	profile := domain.Profile{
		ID:          uuid.NewString(),
		UserID:      userID,
		DisplayName: strings.TrimSpace(displayName),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		return domain.Profile{}, fmt.Errorf("create profile: %w", err)
	}

	s.logger.Info("profile created", zap.String("profile_id", profile.ID), zap.String("user_id", userID))
	return profile, nil
}

// Get busca el perfil de un usuario.
func (s *ProfileService) Get(ctx context.Context, userID string) (domain.Profile, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return domain.Profile{}, ErrInvalidUserID
	}
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Profile{}, ErrProfileNotFound
	}
	if err != nil {
		return domain.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	return profile, nil
}
