package telemetry

import (
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const slowQueryStartKey = "telemetry:query_start"

// DBTracingConfig holds configuration for database tracing
type DBTracingConfig struct {
	Enabled         bool
	DBName          string
	WithVariables   bool // include bound values in db.statement, dev only
	SlowQueryThresh time.Duration
}

// RegisterDBTracing installs the otelgorm plugin and flags slow statements on
// their spans
func RegisterDBTracing(db *gorm.DB, cfg DBTracingConfig, logger *zap.Logger) error {
	if !cfg.Enabled {
		return nil
	}
	opts := []otelgorm.Option{otelgorm.WithDBName(cfg.DBName)}
	if !cfg.WithVariables {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	if cfg.SlowQueryThresh > 0 {
		if err := registerSlowQueryCallbacks(db, cfg.SlowQueryThresh); err != nil {
			return err
		}
	}

	logger.Info("Database tracing enabled",
		zap.String("db_name", cfg.DBName),
		zap.Duration("slow_query_threshold", cfg.SlowQueryThresh),
	)
	return nil
}

func registerSlowQueryCallbacks(db *gorm.DB, threshold time.Duration) error {
	before := func(tx *gorm.DB) {
		tx.InstanceSet(slowQueryStartKey, time.Now())
	}
	after := func(tx *gorm.DB) {
		v, ok := tx.InstanceGet(slowQueryStartKey)
		if !ok {
			return
		}
		elapsed := time.Since(v.(time.Time))
		if elapsed < threshold {
			return
		}
		span := trace.SpanFromContext(tx.Statement.Context)
		span.SetAttributes(
			attribute.Bool("db.slow_query", true),
			attribute.Int64("db.duration_ms", elapsed.Milliseconds()),
		)
	}

	cb := db.Callback()
	if err := cb.Query().Before("gorm:query").Register("telemetry:before_query", before); err != nil {
		return err
	}
	if err := cb.Query().After("gorm:query").Register("telemetry:after_query", after); err != nil {
		return err
	}
	if err := cb.Create().Before("gorm:create").Register("telemetry:before_create", before); err != nil {
		return err
	}
	if err := cb.Create().After("gorm:create").Register("telemetry:after_create", after); err != nil {
		return err
	}
	if err := cb.Update().Before("gorm:update").Register("telemetry:before_update", before); err != nil {
		return err
	}
	if err := cb.Update().After("gorm:update").Register("telemetry:after_update", after); err != nil {
		return err
	}
	if err := cb.Delete().Before("gorm:delete").Register("telemetry:before_delete", before); err != nil {
		return err
	}
	return cb.Delete().After("gorm:delete").Register("telemetry:after_delete", after)
}
