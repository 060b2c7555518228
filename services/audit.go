package services

import (
	"encoding/json"

	"github.com/Dominicushuy/bets-backend/models"
	"github.com/Dominicushuy/bets-backend/utils/logger"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// appendSystemLog records an audit entry for an admin-triggered transition.
// Best-effort: failures are logged and swallowed so a missing audit row never
// undoes the transition it describes.
func appendSystemLog(db *gorm.DB, actionType, description string, actorID uint, metadata map[string]interface{}) {
	entry := models.SystemLog{
		ActionType:  actionType,
		Description: description,
		ActorID:     &actorID,
	}

	if metadata != nil {
		if b, err := json.Marshal(metadata); err == nil {
			entry.Metadata = datatypes.JSON(b)
		}
	}

	if err := db.Create(&entry).Error; err != nil {
		logger.Errorf("[Audit] failed to append %s log: %v", actionType, err)
	}
}
