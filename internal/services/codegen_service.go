package services

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"aicodegen-backend/internal/models"
	"aicodegen-backend/internal/provider"

	"gorm.io/datatypes"
)

// MinGeneratedCodeLength is the shortest cleaned output accepted as a complete generation.
const MinGeneratedCodeLength = 20

var (
	generateOptions   = provider.Options{Temperature: 0.7, MaxOutputTokens: 2048}
	regenerateOptions = provider.Options{Temperature: 0.8, MaxOutputTokens: 2048}
	improveOptions    = provider.Options{Temperature: 0.6, MaxOutputTokens: 2048}
	explainOptions    = provider.Options{Temperature: 0.3, MaxOutputTokens: 1024}
)

type ImprovementType string

const (
	ImprovementGeneral     ImprovementType = "general"
	ImprovementPerformance ImprovementType = "performance"
	ImprovementSecurity    ImprovementType = "security"
	ImprovementReadability ImprovementType = "readability"
	ImprovementTesting     ImprovementType = "testing"
)

var improvementInstructions = map[ImprovementType]string{
	ImprovementGeneral:     "Improve this code by adding comments, better variable names, error handling, and following best practices",
	ImprovementPerformance: "Optimize this code for better performance while maintaining readability",
	ImprovementSecurity:    "Review and improve this code for security vulnerabilities and best practices",
	ImprovementReadability: "Improve code readability with better comments, structure, and naming conventions",
	ImprovementTesting:     "Add unit tests for this code and improve testability",
}

// ImprovementTypes lists the accepted improvement goals in display order.
var ImprovementTypes = []ImprovementType{
	ImprovementGeneral,
	ImprovementPerformance,
	ImprovementSecurity,
	ImprovementReadability,
	ImprovementTesting,
}

// ImprovementInstruction returns the instruction for t and whether t is known.
func ImprovementInstruction(t ImprovementType) (string, bool) {
	s, ok := improvementInstructions[t]
	return s, ok
}

// Matches an opening or closing markdown fence, its optional info string and the line break after it.
var fencePattern = regexp.MustCompile("```[\\w+#.\\-]*[ \\t]*\\r?\\n?")

// CleanGeneratedCode strips markdown fences, surrounding blank lines and whitespace.
func CleanGeneratedCode(text string) string {
	text = fencePattern.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}

// CodeMetrics are the size figures reported next to a piece of code.
type CodeMetrics struct {
	CodeLength  int `json:"codeLength"`
	LinesOfCode int `json:"linesOfCode"`
}

func MeasureCode(code string) CodeMetrics {
	return CodeMetrics{
		CodeLength:  utf8.RuneCountInString(code),
		LinesOfCode: strings.Count(code, "\n") + 1,
	}
}

func BuildGeneratePrompt(prompt, language string) string {
	return fmt.Sprintf(`Generate simple, clean %s code for: %s

Requirements:
- Keep it SIMPLE and concise
- Only include essential functionality
- Add brief comments only where necessary
- No over-engineering or excessive error handling
- Focus on the core request
- Return ONLY the code, no explanations

Example style:
function reverseString(str) {
    return str.split("").reverse().join("");
}

Generate similar simple code for the request.`, language, prompt)
}

func BuildImprovePrompt(instruction, code, language string) string {
	return fmt.Sprintf(`%s

Original %s code:
%s

Requirements:
- Return ONLY the improved code, no explanations
- Maintain the original functionality
- Add helpful comments
- Follow %s best practices
- Make the code production-ready`, instruction, language, code, language)
}

func BuildExplainPrompt(code, language string) string {
	return fmt.Sprintf(`Explain this %s code in simple terms:

%s

Provide:
1. What the code does (main purpose)
2. How it works (step by step)
3. Key concepts used
4. Any potential issues or improvements

Keep the explanation clear and beginner-friendly.`, language, code)
}

// GenerationResult is the outcome of a generate or regenerate call.
type GenerationResult struct {
	Record *models.PromptHistory
	CodeMetrics
}

// ImprovementResult is the outcome of an improve call.
type ImprovementResult struct {
	ImprovedCode string
	CodeMetrics
}

// ExplanationResult is the outcome of an explain call; metrics describe the input code.
type ExplanationResult struct {
	Explanation string
	CodeMetrics
}

// CodeService runs the provider calls behind the AI endpoints. Each call is a single attempt.
type CodeService struct {
	provider provider.Provider
}

func NewCodeService(p provider.Provider) *CodeService {
	return &CodeService{provider: p}
}

// GenerationOptions describes what the AI endpoints accept and which model serves them.
type GenerationOptions struct {
	Provider         string            `json:"provider"`
	Model            string            `json:"model"`
	DefaultLanguage  string            `json:"defaultLanguage"`
	ImprovementTypes []ImprovementType `json:"improvementTypes"`
}

func (s *CodeService) Options() GenerationOptions {
	return GenerationOptions{
		Provider:         s.provider.Name(),
		Model:            s.provider.Model(),
		DefaultLanguage:  models.DefaultLanguage,
		ImprovementTypes: ImprovementTypes,
	}
}

// Generate asks the provider for code and stores the result as a new history record.
func (s *CodeService) Generate(ctx context.Context, userID, prompt, language string) (*GenerationResult, error) {
	prompt = strings.TrimSpace(prompt)
	if language == "" {
		language = models.DefaultLanguage
	}

	code, err := s.generateCode(ctx, BuildGeneratePrompt(prompt, language), generateOptions)
	if err != nil {
		return nil, err
	}

	record := &models.PromptHistory{
		UserID:              userID,
		Prompt:              prompt,
		GeneratedCode:       code,
		ProgrammingLanguage: language,
		Metadata:            s.metadata(generateOptions),
	}
	if err := CreatePromptHistory(ctx, record); err != nil {
		return nil, err
	}

	return &GenerationResult{Record: record, CodeMetrics: MeasureCode(code)}, nil
}

// Regenerate reruns the stored prompt of an owned record and overwrites it in place.
// An empty language keeps the record's current language.
func (s *CodeService) Regenerate(ctx context.Context, userID, id, language string) (*GenerationResult, error) {
	record, err := FindPromptHistoryByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if language == "" {
		language = record.ProgrammingLanguage
	}

	code, err := s.generateCode(ctx, BuildGeneratePrompt(record.Prompt, language), regenerateOptions)
	if err != nil {
		return nil, err
	}

	if err := UpdateGeneratedCode(ctx, record, code, language, s.metadata(regenerateOptions)); err != nil {
		return nil, err
	}

	return &GenerationResult{Record: record, CodeMetrics: MeasureCode(code)}, nil
}

func (s *CodeService) Improve(ctx context.Context, code, language string, improvementType ImprovementType) (*ImprovementResult, error) {
	instruction, ok := ImprovementInstruction(improvementType)
	if !ok {
		instruction = improvementInstructions[ImprovementGeneral]
	}

	text, err := s.provider.Complete(ctx, BuildImprovePrompt(instruction, code, language), improveOptions)
	if err != nil {
		return nil, err
	}

	improved := CleanGeneratedCode(text)
	return &ImprovementResult{ImprovedCode: improved, CodeMetrics: MeasureCode(improved)}, nil
}

func (s *CodeService) Explain(ctx context.Context, code, language string) (*ExplanationResult, error) {
	text, err := s.provider.Complete(ctx, BuildExplainPrompt(code, language), explainOptions)
	if err != nil {
		return nil, err
	}

	return &ExplanationResult{Explanation: strings.TrimSpace(text), CodeMetrics: MeasureCode(code)}, nil
}

func (s *CodeService) generateCode(ctx context.Context, prompt string, opts provider.Options) (string, error) {
	text, err := s.provider.Complete(ctx, prompt, opts)
	if err != nil {
		return "", err
	}

	code := CleanGeneratedCode(text)
	if utf8.RuneCountInString(code) < MinGeneratedCodeLength {
		return "", ErrIncompleteGeneration
	}
	return code, nil
}

func (s *CodeService) metadata(opts provider.Options) datatypes.JSON {
	data, err := json.Marshal(models.GenerationMetadata{
		Provider:    s.provider.Name(),
		Model:       s.provider.Model(),
		Temperature: opts.Temperature,
	})
	if err != nil {
		return nil
	}
	return datatypes.JSON(data)
}
