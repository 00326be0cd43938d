package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/yigit/registrar/internal/db"
	"github.com/yigit/registrar/internal/pkg/apperrors"
	"github.com/yigit/registrar/internal/pkg/logger"
)

// TokenRepository tracks revoked access tokens by their jti
type TokenRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(conn db.DBTX) *TokenRepository {
	return &TokenRepository{db: conn, sb: psql}
}

// Revoke records jti as revoked until expiresAt. Revoking twice is a no-op.
func (r *TokenRepository) Revoke(ctx context.Context, jti uuid.UUID, expiresAt time.Time) error {
	sql, args, err := r.sb.Insert("revoked_tokens").
		Columns("jti", "expires_at", "revoked_at").
		Values(jti, expiresAt, time.Now().UTC()).
		Suffix("ON CONFLICT (jti) DO NOTHING").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building revoke token SQL")
		return fmt.Errorf("failed to build revoke token query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Str("jti", jti.String()).Msg("Error executing revoke token query")
		return apperrors.NewStoreError("revoke token", err)
	}
	return nil
}

// IsRevoked reports whether jti has been revoked
func (r *TokenRepository) IsRevoked(ctx context.Context, jti uuid.UUID) (bool, error) {
	sql, args, err := r.sb.Select("1").
		Prefix("SELECT EXISTS (").
		From("revoked_tokens").
		Where(squirrel.Eq{"jti": jti}).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build token lookup query: %w", err)
	}

	var revoked bool
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&revoked); err != nil {
		logger.Error().Err(err).Str("jti", jti.String()).Msg("Error checking token revocation")
		return false, apperrors.NewStoreError("check token", err)
	}
	return revoked, nil
}

// PurgeExpired deletes revocations whose token has expired anyway
func (r *TokenRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	sql, args, err := r.sb.Delete("revoked_tokens").
		Where(squirrel.Lt{"expires_at": now}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build purge tokens query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error purging expired revocations")
		return 0, apperrors.NewStoreError("purge tokens", err)
	}
	return tag.RowsAffected(), nil
}
