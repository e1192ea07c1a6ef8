package ai

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"aicodegen-backend/internal/middleware"
	"aicodegen-backend/internal/models"
	"aicodegen-backend/internal/services"
	"aicodegen-backend/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	svc *services.CodeService
}

func NewHandler(svc *services.CodeService) *Handler {
	return &Handler{svc: svc}
}

// GenerateCode godoc
// @Summary Generate code
// @Description Generate code for a natural-language prompt and store it in the caller's history
// @Tags ai
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body GenerateRequest true "Generate Request"
// @Success 200 {object} utils.Response{data=GenerateResponse}
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 429 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /ai/generate [post]
func (h *Handler) GenerateCode(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	var req GenerateRequest
	if err := utils.BindAndValidate(c, &req); err != nil {
		c.Error(err)
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		c.Error(utils.NewBadRequestError("Prompt is required"))
		return
	}

	result, err := h.svc.Generate(c.Request.Context(), identity.ID, req.Prompt, req.Language)
	if err != nil {
		c.Error(incompleteOr(err,
			"Generated code appears to be incomplete. Please try again with a more specific prompt.",
			"Failed to generate code. Please try again with a different prompt."))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Code generated successfully", newGenerateResponse(result)))
}

// RegenerateCode godoc
// @Summary Regenerate code
// @Description Rerun a stored prompt, optionally in another language, and overwrite the record
// @Tags ai
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Prompt ID"
// @Param request body RegenerateRequest false "Regenerate Request"
// @Success 200 {object} utils.Response{data=GenerateResponse}
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Failure 429 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /ai/regenerate/{id} [put]
func (h *Handler) RegenerateCode(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	id, ok := promptID(c)
	if !ok {
		return
	}

	// The body is optional.
	var req RegenerateRequest
	if c.Request.Body != nil && c.Request.ContentLength != 0 {
		if err := utils.BindAndValidate(c, &req); err != nil && !errors.Is(err, io.EOF) {
			c.Error(err)
			return
		}
	}

	result, err := h.svc.Regenerate(c.Request.Context(), identity.ID, id, req.Language)
	if err != nil {
		if errors.Is(err, services.ErrPromptNotFound) {
			c.Error(utils.NewNotFoundError("Prompt not found"))
			return
		}
		c.Error(incompleteOr(err,
			"Regenerated code appears to be incomplete. Please try again.",
			"Failed to regenerate code. Please try again."))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Code regenerated successfully", newGenerateResponse(result)))
}

// ImproveCode godoc
// @Summary Improve code
// @Description Rewrite a piece of code for one improvement goal. Nothing is stored.
// @Tags ai
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body ImproveRequest true "Improve Request"
// @Success 200 {object} utils.Response{data=ImproveResponse}
// @Failure 400 {object} utils.Response
// @Failure 429 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /ai/improve [post]
func (h *Handler) ImproveCode(c *gin.Context) {
	if _, ok := requireIdentity(c); !ok {
		return
	}

	var req ImproveRequest
	if err := utils.BindAndValidate(c, &req); err != nil {
		c.Error(err)
		return
	}
	if strings.TrimSpace(req.Code) == "" {
		c.Error(utils.NewBadRequestError("Code is required"))
		return
	}
	language := defaultLanguage(req.Language)
	improvementType := services.ImprovementType(req.ImprovementType)
	if improvementType == "" {
		improvementType = services.ImprovementGeneral
	}

	result, err := h.svc.Improve(c.Request.Context(), req.Code, language, improvementType)
	if err != nil {
		c.Error(providerError(err, "Failed to improve code. Please try again."))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Code improved successfully", ImproveResponse{
		OriginalCode:    req.Code,
		ImprovedCode:    result.ImprovedCode,
		Language:        language,
		ImprovementType: string(improvementType),
		CodeLength:      result.CodeLength,
		LinesOfCode:     result.LinesOfCode,
	}))
}

// ExplainCode godoc
// @Summary Explain code
// @Description Produce a beginner-friendly explanation of a piece of code. Nothing is stored.
// @Tags ai
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body ExplainRequest true "Explain Request"
// @Success 200 {object} utils.Response{data=ExplainResponse}
// @Failure 400 {object} utils.Response
// @Failure 429 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /ai/explain [post]
func (h *Handler) ExplainCode(c *gin.Context) {
	if _, ok := requireIdentity(c); !ok {
		return
	}

	var req ExplainRequest
	if err := utils.BindAndValidate(c, &req); err != nil {
		c.Error(err)
		return
	}
	if strings.TrimSpace(req.Code) == "" {
		c.Error(utils.NewBadRequestError("Code is required"))
		return
	}
	language := defaultLanguage(req.Language)

	result, err := h.svc.Explain(c.Request.Context(), req.Code, language)
	if err != nil {
		c.Error(providerError(err, "Failed to explain code. Please try again."))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Code explained successfully", ExplainResponse{
		Code:        req.Code,
		Language:    language,
		Explanation: result.Explanation,
		CodeLength:  result.CodeLength,
		LinesOfCode: result.LinesOfCode,
	}))
}

// GetPromptHistory godoc
// @Summary List prompt history
// @Description Page through the caller's generations, newest first
// @Tags ai
// @Produce json
// @Security Bearer
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size (max 100)" default(10)
// @Param search query string false "Substring of the prompt"
// @Success 200 {object} utils.Response{data=HistoryResponse}
// @Failure 401 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /ai/history [get]
func (h *Handler) GetPromptHistory(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	page, limit := utils.PageParams(c)
	records, total, err := services.FindPromptHistory(c.Request.Context(), services.HistoryFilter{
		UserID: identity.ID,
		Search: c.Query("search"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		c.Error(utils.NewInternalServerError("Failed to retrieve prompt history").Wrap(err))
		return
	}
	if records == nil {
		records = []models.PromptHistory{}
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Prompt history retrieved successfully", HistoryResponse{
		History:    records,
		Pagination: utils.NewPagination(page, limit, total),
	}))
}

// GetPromptByID godoc
// @Summary Get a prompt
// @Description Fetch one of the caller's history records
// @Tags ai
// @Produce json
// @Security Bearer
// @Param id path string true "Prompt ID"
// @Success 200 {object} utils.Response{data=models.PromptHistory}
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /ai/history/{id} [get]
func (h *Handler) GetPromptByID(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	id, ok := promptID(c)
	if !ok {
		return
	}

	record, err := services.FindPromptHistoryByID(c.Request.Context(), id, identity.ID)
	if err != nil {
		c.Error(notFoundOr(err, "Failed to retrieve prompt"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Prompt retrieved successfully", record))
}

// DeletePrompt godoc
// @Summary Delete a prompt
// @Description Permanently delete one of the caller's history records
// @Tags ai
// @Produce json
// @Security Bearer
// @Param id path string true "Prompt ID"
// @Success 200 {object} utils.Response
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /ai/history/{id} [delete]
func (h *Handler) DeletePrompt(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	id, ok := promptID(c)
	if !ok {
		return
	}

	if err := services.DeletePromptHistory(c.Request.Context(), id, identity.ID); err != nil {
		c.Error(notFoundOr(err, "Failed to delete prompt"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Prompt deleted successfully", nil))
}

// GetOptions godoc
// @Summary Generation options
// @Description List the active provider and model, the default language and the accepted improvement types
// @Tags ai
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.Response{data=services.GenerationOptions}
// @Failure 401 {object} utils.Response
// @Router /ai/options [get]
func (h *Handler) GetOptions(c *gin.Context) {
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Options retrieved successfully", h.svc.Options()))
}

func requireIdentity(c *gin.Context) (models.Identity, bool) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.Error(utils.NewUnauthorizedError("User not authenticated"))
	}
	return identity, ok
}

func promptID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.Error(utils.NewBadRequestError("Invalid prompt ID"))
		return "", false
	}
	return id, true
}

func notFoundOr(err error, fallback string) *utils.APIError {
	if errors.Is(err, services.ErrPromptNotFound) {
		return utils.NewNotFoundError("Prompt not found")
	}
	return utils.NewInternalServerError(fallback).Wrap(err)
}

func defaultLanguage(language string) string {
	if language == "" {
		return models.DefaultLanguage
	}
	return language
}

func newGenerateResponse(result *services.GenerationResult) GenerateResponse {
	return GenerateResponse{
		GeneratedCode: result.Record.GeneratedCode,
		Language:      result.Record.ProgrammingLanguage,
		HistoryID:     result.Record.ID,
		CodeLength:    result.CodeLength,
		LinesOfCode:   result.LinesOfCode,
	}
}
