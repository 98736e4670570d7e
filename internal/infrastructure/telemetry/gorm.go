package telemetry

import (
	"fmt"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"gorm.io/gorm"
)

// GormTracingConfig controls span creation for SQL statements.
type GormTracingConfig struct {
	Enabled    bool
	DBSystem   string // postgresql, sqlite
	LogFullSQL bool   // keep bound variables in db.statement
}

// InstrumentGorm registers the otelgorm plugin so every statement issued
// through db becomes a child span of the caller's context.
func InstrumentGorm(db *gorm.DB, cfg GormTracingConfig) error {
	if !cfg.Enabled {
		return nil
	}
	opts := []otelgorm.Option{otelgorm.WithDBName(cfg.DBSystem)}
	if !cfg.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return fmt.Errorf("register otelgorm: %w", err)
	}
	return nil
}
