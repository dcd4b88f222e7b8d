package session

import (
	"fmt"

	"github.com/straye-as/sales-intelligence/internal/config"
	"github.com/straye-as/sales-intelligence/internal/database"
	"go.uber.org/zap"
)

// Open builds a Store for the configured backend. The returned close func
// releases backend resources and is always non-nil.
func Open(cfg *config.SessionConfig, logger *zap.Logger) (*Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Backend {
	case "memory":
		return NewStore(NewMemoryBackend(), cfg.Key, logger), noop, nil
	case "file", "":
		return NewStore(NewFileBackend(cfg.Path), cfg.Key, logger), noop, nil
	case "sqlite":
		db, err := database.NewSQLite(cfg.Path)
		if err != nil {
			return nil, noop, err
		}
		backend, err := NewSQLiteBackend(db)
		if err != nil {
			_ = database.Close(db)
			return nil, noop, err
		}
		return NewStore(backend, cfg.Key, logger), func() error { return database.Close(db) }, nil
	default:
		return nil, noop, fmt.Errorf("unknown session backend %q", cfg.Backend)
	}
}
