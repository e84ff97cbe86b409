package typedb

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/zeusync/replicanet/internal/core/replica/component"
)

const componentKindsQuery = `SELECT component_type FROM ComponentsRegistry WHERE id = ? ORDER BY rowid`

// SQLite reads component lists from the game's client database, where
// ComponentsRegistry holds one (id, component_type, component_id) row per
// component of a template.
type SQLite struct {
	sqlDB *sql.DB
}

// OpenSQLite opens the client database at path read-only.
func OpenSQLite(path string) (*SQLite, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("type database path is required")
	}
	dsn := "file:" + filepath.Clean(path) + "?mode=ro&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	return &SQLite{sqlDB: sqlDB}, nil
}

// NewSQLite wraps an already opened handle.
func NewSQLite(sqlDB *sql.DB) *SQLite {
	return &SQLite{sqlDB: sqlDB}
}

func (s *SQLite) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *SQLite) ComponentKinds(ctx context.Context, templateID int32) ([]component.Kind, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("type database is not configured")
	}

	rows, err := s.sqlDB.QueryContext(ctx, componentKindsQuery, templateID)
	if err != nil {
		return nil, fmt.Errorf("query components of template %d: %w", templateID, err)
	}
	defer rows.Close()

	var kinds []component.Kind
	for rows.Next() {
		var kind int64
		if err := rows.Scan(&kind); err != nil {
			return nil, fmt.Errorf("scan component of template %d: %w", templateID, err)
		}
		if kind < 0 || kind > math.MaxUint32 {
			return nil, fmt.Errorf("%w: %d in template %d", ErrInvalidKind, kind, templateID)
		}
		kinds = append(kinds, component.Kind(kind))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate components of template %d: %w", templateID, err)
	}
	if len(kinds) == 0 {
		return nil, fmt.Errorf("%w: %d", ErrTemplateNotFound, templateID)
	}
	return kinds, nil
}
