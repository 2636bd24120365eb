package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// compositeIndex describes an index spanning several columns, which the
// struct tags on the models do not express.
type compositeIndex struct {
	table   string
	name    string
	columns string
}

var compositeIndexes = []compositeIndex{
	// Task board listing: owner + status, newest first
	{"tasks", "idx_tasks_user_status_created", "user_id, status, created_at"},
	// Project lookup by name, newest first
	{"projects", "idx_projects_name_created", "name, created_at"},
}

// AddIndexes adds the composite indexes used by the hot query paths.
func AddIndexes(db *gorm.DB, log *zap.Logger) error {
	migrator := db.Migrator()

	for _, idx := range compositeIndexes {
		if migrator.HasIndex(idx.table, idx.name) {
			log.Debug("index already exists, skipping", zap.String("index", idx.name))
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Info("created index",
			zap.String("index", idx.name),
			zap.String("table", idx.table),
			zap.String("columns", idx.columns),
		)
	}

	return nil
}
