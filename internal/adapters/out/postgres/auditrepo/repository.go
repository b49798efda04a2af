// Package auditrepo stores administrative audit entries with their details as jsonb.
package auditrepo

import (
	"context"
	"time"

	"footprint/internal/core/domain/model/audit"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AuditEntryDTO struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	ActorID   string         `gorm:"size:128;not null;index"`
	Action    string         `gorm:"size:64;not null;index"`
	Details   datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt time.Time      `gorm:"not null;autoCreateTime:false;index"`
}

func (AuditEntryDTO) TableName() string {
	return "audit_log"
}

// GormAuditLogRepository implements AuditLogRepository using GORM.
type GormAuditLogRepository struct {
	db *gorm.DB
}

func NewGormAuditLogRepository(db *gorm.DB) *GormAuditLogRepository {
	return &GormAuditLogRepository{db: db}
}

func (r *GormAuditLogRepository) Append(ctx context.Context, entry audit.Entry) error {
	dto := AuditEntryDTO{
		ID:        entry.ID().Bytes(),
		ActorID:   entry.ActorID(),
		Action:    string(entry.Action()),
		Details:   datatypes.JSON(entry.Details()),
		CreatedAt: entry.CreatedAt(),
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}
