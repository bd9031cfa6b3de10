package session

import (
	"context"
)

// Session is the part of the web session this service reads and renews.
// The session bootstrap owns creation; this service only rewrites ERPToken.
type Session struct {
	Key             string `json:"-"`
	IsAuthenticated bool   `json:"is_authenticated"`
	ERPToken        string `json:"session_id"`
	AgreementID     string `json:"agreement_id,omitempty"`
}

// Store loads and saves sessions by key
type Store interface {
	Get(ctx context.Context, key string) (*Session, error)
	Save(ctx context.Context, s *Session) error
}
