package repository

import (
	"context"

	"backoffice/internal/domain/model"
)

// 監査ログの保存・一覧取得の約束。
type AuditLogRepository interface {
	Create(ctx context.Context, log model.AuditLog) error

	//対象ごとの履歴（新しい順）
	ListByResource(ctx context.Context, resourceType model.AuditResourceType, resourceID string) ([]model.AuditLog, error)

	DeleteByResource(ctx context.Context, resourceType model.AuditResourceType, resourceID string) error
	DeleteByResourceType(ctx context.Context, resourceType model.AuditResourceType) error
}
