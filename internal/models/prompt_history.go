package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const DefaultLanguage = "javascript"

// PromptHistory is one generation owned by a single user.
type PromptHistory struct {
	ID                  string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID              string         `gorm:"type:varchar(36);not null;index:idx_prompt_histories_user_created,priority:1" json:"userId"`
	Prompt              string         `gorm:"type:text;not null" json:"prompt"`
	GeneratedCode       string         `gorm:"type:text;not null" json:"generatedCode"`
	ProgrammingLanguage string         `gorm:"size:64;not null;default:'javascript'" json:"programmingLanguage"`
	Metadata            datatypes.JSON `json:"metadata,omitempty" swaggertype:"object"`
	CreatedAt           time.Time      `gorm:"index:idx_prompt_histories_user_created,priority:2,sort:desc" json:"createdAt"`
	UpdatedAt           time.Time      `json:"updatedAt"`
}

func (p *PromptHistory) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.ProgrammingLanguage == "" {
		p.ProgrammingLanguage = DefaultLanguage
	}
	return nil
}

// GenerationMetadata describes the provider call that produced GeneratedCode.
type GenerationMetadata struct {
	Provider    string  `json:"provider"`
	Model       string  `json:"model"`
	Temperature float32 `json:"temperature"`
}
