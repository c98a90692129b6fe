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
	"soulsig/internal/extract"
	"soulsig/internal/repository"
	"soulsig/internal/secrets"
)

var (
	ErrConnectionNotFound = errors.New("platform connection not found")
	ErrInvalidToken       = errors.New("platform token is required")
)

// ConnectionService guarda credenciales selladas de plataformas externas.
// El token llega ya emitido por el flujo OAuth del colaborador; acá solo se
// sella, se persiste y se abre bajo demanda para una sincronización.
type ConnectionService struct {
	connections repository.ConnectionRepository
	sealer      *secrets.Sealer
	logger      *zap.Logger
}

func NewConnectionService(connections repository.ConnectionRepository, sealer *secrets.Sealer, logger *zap.Logger) *ConnectionService {
	return &ConnectionService{
		connections: connections,
		sealer:      sealer,
		logger:      logger,
	}
}

// Connect sella el token y registra (o reemplaza) la conexión del usuario
// con la plataforma.
func (s *ConnectionService) Connect(ctx context.Context, userID, platform, token, scopes string) (domain.PlatformConnection, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return domain.PlatformConnection{}, ErrInvalidUserID
	}
	platform = strings.ToLower(strings.TrimSpace(platform))
	if extract.Features(platform) == nil {
		return domain.PlatformConnection{}, fmt.Errorf("%w: %s", ErrUnknownPlatform, platform)
	}
	if strings.TrimSpace(token) == "" {
		return domain.PlatformConnection{}, ErrInvalidToken
	}

	sealed, err := s.sealer.Seal(token)
	if err != nil {
		return domain.PlatformConnection{}, fmt.Errorf("seal token: %w", err)
	}

	conn := domain.PlatformConnection{
		ID:          uuid.NewString(),
		UserID:      userID,
		Platform:    platform,
		SealedToken: sealed,
		Scopes:      strings.TrimSpace(scopes),
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.connections.Upsert(ctx, conn); err != nil {
		return domain.PlatformConnection{}, fmt.Errorf("upsert connection: %w", err)
	}

	s.logger.Info("platform connected", zap.String("user_id", userID), zap.String("platform", platform))
	return conn, nil
}

// List devuelve las conexiones del usuario. Los tokens viajan sellados y el
// JSON los omite.
func (s *ConnectionService) List(ctx context.Context, userID string) ([]domain.PlatformConnection, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidUserID
	}
	conns, err := s.connections.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list connections: %w", err)
	}
	return conns, nil
}

// Disconnect elimina la conexión del usuario con la plataforma.
func (s *ConnectionService) Disconnect(ctx context.Context, userID, platform string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return ErrInvalidUserID
	}
	platform = strings.ToLower(strings.TrimSpace(platform))
	err := s.connections.Delete(ctx, userID, platform)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrConnectionNotFound
	}
	if err != nil {
		return fmt.Errorf("delete connection: %w", err)
	}
	s.logger.Info("platform disconnected", zap.String("user_id", userID), zap.String("platform", platform))
	return nil
}

// Token abre el token sellado de una conexión para correr una sincronización.
func (s *ConnectionService) Token(ctx context.Context, userID, platform string) (string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", ErrInvalidUserID
	}
	platform = strings.ToLower(strings.TrimSpace(platform))
	conns, err := s.connections.ListByUser(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("list connections: %w", err)
	}
	for _, conn := range conns {
		if conn.Platform != platform {
			continue
		}
		token, err := s.sealer.Open(conn.SealedToken)
		if err != nil {
			return "", fmt.Errorf("open sealed token: %w", err)
		}
		return token, nil
	}
	return "", ErrConnectionNotFound
}
