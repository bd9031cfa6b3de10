package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/jafarshop/myorders/internal/metrics"
	"github.com/jafarshop/myorders/internal/session"
)

// SessionRegistrar obtains a fresh external session token from the ERP
type SessionRegistrar interface {
	SessionRegister(ctx context.Context, clientIP, currentToken string) (string, error)
}

// SessionRenewalPolicy renews a stale ERP session after an empty order list
type SessionRenewalPolicy struct {
	registrar SessionRegistrar
	store     session.Store
	metrics   *metrics.Registry
	logger    *zap.Logger
}

// NewSessionRenewalPolicy creates a new renewal policy
func NewSessionRenewalPolicy(registrar SessionRegistrar, store session.Store, reg *metrics.Registry, logger *zap.Logger) *SessionRenewalPolicy {
	return &SessionRenewalPolicy{
		registrar: registrar,
		store:     store,
		metrics:   reg,
		logger:    logger,
	}
}

// Renew registers a new ERP session for the caller and stores it. It reports
// whether the caller should repeat the query once with the new token.
func (p *SessionRenewalPolicy) Renew(ctx context.Context, sess *session.Session, clientIP string) bool {
	token, err := p.registrar.SessionRegister(ctx, clientIP, sess.ERPToken)
	if err != nil {
		p.logger.Error("ERP session renewal failed", zap.String("client_ip", clientIP), zap.Error(err))
		p.metrics.Renewal(false)
		return false
	}

	p.logger.Warn("Empty order list, renewed ERP session", zap.String("session", sess.Key))
	p.metrics.Renewal(true)

	sess.ERPToken = token
	if err := p.store.Save(ctx, sess); err != nil {
		// the retry still uses the new token, only later requests miss it
		p.logger.Error("Failed to persist renewed ERP session", zap.String("session", sess.Key), zap.Error(err))
	}
	return true
}
