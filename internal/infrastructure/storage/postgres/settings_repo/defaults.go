// Package settings_repo provides PostgreSQL access to global settings.
package settings_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"textile/internal/domain/reports"
	"textile/internal/infrastructure/storage/postgres"
)

const globalDefaultsTable = "global_defaults"

// DefaultsRepo reads global default values.
type DefaultsRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

// NewDefaultsRepo creates a new defaults repository.
func NewDefaultsRepo(txm *postgres.TxManager) *DefaultsRepo {
	return &DefaultsRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *DefaultsRepo) defaultQuery(key string) squirrel.SelectBuilder {
	return r.builder.Select("COALESCE(value, '')").
		From(globalDefaultsTable).
		Where(squirrel.Eq{"key": key}).
		Limit(1)
}

// GetGlobalDefault returns the value stored for key, or "" when unset.
func (r *DefaultsRepo) GetGlobalDefault(ctx context.Context, key string) (string, error) {
	sql, args, err := r.defaultQuery(key).ToSql()
	if err != nil {
		return "", fmt.Errorf("build query: %w", err)
	}

	var value string
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &value, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return "", nil
		}
		return "", fmt.Errorf("get global default %s: %w", key, err)
	}

	return value, nil
}

var _ reports.DefaultsReader = (*DefaultsRepo)(nil)
