package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"aicodegen-backend/internal/database"
	"aicodegen-backend/internal/models"
	"aicodegen-backend/internal/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// HistoryFilter scopes a history listing. UserID is mandatory.
type HistoryFilter struct {
	UserID string
	Search string
	Page   int
	Limit  int
}

// likeEscaper makes LIKE wildcards in user input match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (f HistoryFilter) apply(db *gorm.DB) *gorm.DB {
	db = db.Where("user_id = ?", f.UserID)
	if search := strings.TrimSpace(f.Search); search != "" {
		db = db.Where(`LOWER(prompt) LIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(strings.ToLower(search))+"%")
	}
	return db
}

func CreatePromptHistory(ctx context.Context, record *models.PromptHistory) error {
	return database.DB.WithContext(ctx).Create(record).Error
}

// FindPromptHistory returns one page of the owner's records, newest first, and the owner's total.
func FindPromptHistory(ctx context.Context, filter HistoryFilter) ([]models.PromptHistory, int64, error) {
	var records []models.PromptHistory
	var total int64

	db := database.DB.WithContext(ctx).Model(&models.PromptHistory{})

	if err := filter.apply(db).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := filter.apply(database.DB.WithContext(ctx)).
		Select("id", "user_id", "prompt", "generated_code", "programming_language", "created_at", "updated_at").
		Order("created_at desc").
		Order("id").
		Offset(utils.Offset(filter.Page, filter.Limit)).
		Limit(filter.Limit).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func FindPromptHistoryByID(ctx context.Context, id, userID string) (*models.PromptHistory, error) {
	var record models.PromptHistory
	err := database.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPromptNotFound
		}
		return nil, err
	}
	return &record, nil
}

// UpdateGeneratedCode overwrites the generation fields of an owned record in place.
// Concurrent writers are last-write-wins.
func UpdateGeneratedCode(ctx context.Context, record *models.PromptHistory, code, language string, metadata datatypes.JSON) error {
	now := time.Now()
	result := database.DB.WithContext(ctx).
		Model(&models.PromptHistory{}).
		Where("id = ? AND user_id = ?", record.ID, record.UserID).
		Updates(map[string]interface{}{
			"generated_code":       code,
			"programming_language": language,
			"metadata":             metadata,
			"updated_at":           now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPromptNotFound
	}

	record.GeneratedCode = code
	record.ProgrammingLanguage = language
	record.Metadata = metadata
	record.UpdatedAt = now
	return nil
}

func DeletePromptHistory(ctx context.Context, id, userID string) error {
	result := database.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.PromptHistory{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPromptNotFound
	}
	return nil
}
