package ai

import (
	"aicodegen-backend/internal/models"
	"aicodegen-backend/internal/utils"
)

type GenerateRequest struct {
	Prompt   string `json:"prompt" binding:"required"`
	Language string `json:"language" binding:"omitempty,max=64"`
}

type RegenerateRequest struct {
	Language string `json:"language" binding:"omitempty,max=64"`
}

type ImproveRequest struct {
	Code            string `json:"code" binding:"required"`
	Language        string `json:"language" binding:"omitempty,max=64"`
	ImprovementType string `json:"improvementType" binding:"omitempty,oneof=general performance security readability testing"`
}

type ExplainRequest struct {
	Code     string `json:"code" binding:"required"`
	Language string `json:"language" binding:"omitempty,max=64"`
}

type GenerateResponse struct {
	GeneratedCode string `json:"generatedCode"`
	Language      string `json:"language"`
	HistoryID     string `json:"historyId"`
	CodeLength    int    `json:"codeLength"`
	LinesOfCode   int    `json:"linesOfCode"`
}

type ImproveResponse struct {
	OriginalCode    string `json:"originalCode"`
	ImprovedCode    string `json:"improvedCode"`
	Language        string `json:"language"`
	ImprovementType string `json:"improvementType"`
	CodeLength      int    `json:"codeLength"`
	LinesOfCode     int    `json:"linesOfCode"`
}

type ExplainResponse struct {
	Code        string `json:"code"`
	Language    string `json:"language"`
	Explanation string `json:"explanation"`
	CodeLength  int    `json:"codeLength"`
	LinesOfCode int    `json:"linesOfCode"`
}

type HistoryResponse struct {
	History    []models.PromptHistory `json:"history"`
	Pagination utils.Pagination       `json:"pagination"`
}
