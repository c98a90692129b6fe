package domain

import "time"

// PlatformConnection es la credencial de una plataforma conectada. El token
// OAuth llega ya emitido por el colaborador externo y se guarda sellado.
type PlatformConnection struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Platform    string     `json:"platform"`
	SealedToken string     `json:"-"`
	Scopes      string     `json:"scopes,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	LastSyncAt  *time.Time `json:"last_sync_at,omitempty"`
}
