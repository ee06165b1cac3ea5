package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/EduPort-F-2025/portfolio-service/internal/models"
	"github.com/EduPort-F-2025/portfolio-service/internal/repositories"
)

// StateSnapshot is the single-row table holding the serialized system
// state. The storage contract stays whole-value: one key, one JSON
// blob, overwritten in full on every save.
type StateSnapshot struct {
	Key       string         `gorm:"primaryKey;size:255"`
	State     datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time
}

func (StateSnapshot) TableName() string {
	return "state_snapshots"
}

// SnapshotPostgreSQL implements SnapshotStore on a relational backend
// for deployments that already run Postgres and no Redis.
type SnapshotPostgreSQL struct {
	db  *gorm.DB
	key string
}

func NewSnapshotPostgreSQL(db *gorm.DB, key string) (repositories.SnapshotStore, error) {
	if err := db.AutoMigrate(&StateSnapshot{}); err != nil {
		return nil, fmt.Errorf("failed to migrate snapshot table: %w", err)
	}
	return &SnapshotPostgreSQL{db: db, key: key}, nil
}

func (s *SnapshotPostgreSQL) Load(ctx context.Context) (*models.SystemState, bool, error) {
	var row StateSnapshot
	err := s.db.WithContext(ctx).First(&row, "key = ?", s.key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to load snapshot: %w", err)
	}

	var state models.SystemState
	if err := json.Unmarshal(row.State, &state); err != nil {
		return nil, false, repositories.ErrSnapshotCorrupt
	}
	return &state, true, nil
}

func (s *SnapshotPostgreSQL) Save(ctx context.Context, state *models.SystemState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to serialize snapshot: %w", err)
	}

	row := StateSnapshot{Key: s.key, State: datatypes.JSON(data)}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"state", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

func (s *SnapshotPostgreSQL) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *SnapshotPostgreSQL) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
