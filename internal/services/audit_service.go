package services

import (
	"encoding/json"

	"gorm.io/gorm"

	"captable/internal/logger"
	"captable/internal/models"
)

// auditService records mutating actions. Logging is best-effort: a failed
// audit write must never fail the request that triggered it.
type auditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db}
}

// Log records an audit entry for the given action.
func (s *auditService) Log(userID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]interface{}) {
	var changesJSON string
	if changes != nil {
		b, err := json.Marshal(changes)
		if err != nil {
			logger.Get().Warnw("failed to marshal audit changes", "action", action, "error", err)
		} else {
			changesJSON = string(b)
		}
	}

	entry := &models.AuditLog{
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    ipAddress,
		Changes:      changesJSON,
	}
	if err := s.db.Create(entry).Error; err != nil {
		logger.Get().Warnw("failed to write audit log", "action", action, "error", err)
	}
}
