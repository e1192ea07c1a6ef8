package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"aicodegen-backend/internal/database"
	"aicodegen-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedHistory(t *testing.T, userID string, n int) []models.PromptHistory {
	t.Helper()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var out []models.PromptHistory
	for i := 0; i < n; i++ {
		record := models.PromptHistory{
			UserID:        userID,
			Prompt:        fmt.Sprintf("prompt %d", i),
			GeneratedCode: fmt.Sprintf("console.log(%d); // generated", i),
			CreatedAt:     base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, database.DB.Create(&record).Error)
		out = append(out, record)
	}
	return out
}

func TestFindPromptHistoryPagesNewestFirst(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	seedHistory(t, "owner", 12)
	seedHistory(t, "someone-else", 3)

	records, total, err := FindPromptHistory(ctx, HistoryFilter{UserID: "owner", Page: 1, Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(12), total)
	require.Len(t, records, 5)
	assert.Equal(t, "prompt 11", records[0].Prompt)
	assert.Equal(t, "prompt 7", records[4].Prompt)
	assert.Equal(t, models.DefaultLanguage, records[0].ProgrammingLanguage)

	records, _, err = FindPromptHistory(ctx, HistoryFilter{UserID: "owner", Page: 3, Limit: 5})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "prompt 0", records[1].Prompt)

	for _, r := range records {
		assert.Equal(t, "owner", r.UserID)
	}
}

func TestFindPromptHistorySearch(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	seedHistory(t, "owner", 12)

	records, total, err := FindPromptHistory(ctx, HistoryFilter{UserID: "owner", Search: "PROMPT 1", Page: 1, Limit: 10})
	require.NoError(t, err)
	// prompt 1, 10, 11
	assert.Equal(t, int64(3), total)
	assert.Len(t, records, 3)
}

func TestFindPromptHistorySearchMatchesWildcardsLiterally(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	for _, prompt := range []string{"reach 100% coverage", "parse snake_case keys", `escape C:\tmp paths`, "plain prompt"} {
		require.NoError(t, database.DB.Create(&models.PromptHistory{UserID: "owner", Prompt: prompt, GeneratedCode: "x"}).Error)
	}

	tests := []struct {
		search string
		want   string
	}{
		{"%", "reach 100% coverage"},
		{"_", "parse snake_case keys"},
		{`\`, `escape C:\tmp paths`},
		{"e_c", "parse snake_case keys"},
	}

	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			records, total, err := FindPromptHistory(ctx, HistoryFilter{UserID: "owner", Search: tt.search, Page: 1, Limit: 10})
			require.NoError(t, err)
			assert.Equal(t, int64(1), total)
			require.Len(t, records, 1)
			assert.Equal(t, tt.want, records[0].Prompt)
		})
	}
}

func TestPromptHistoryOwnerScoping(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	record := seedHistory(t, "owner", 1)[0]

	_, err := FindPromptHistoryByID(ctx, record.ID, "intruder")
	assert.ErrorIs(t, err, ErrPromptNotFound)

	err = UpdateGeneratedCode(ctx, &models.PromptHistory{ID: record.ID, UserID: "intruder"}, "x", "go", nil)
	assert.ErrorIs(t, err, ErrPromptNotFound)

	assert.ErrorIs(t, DeletePromptHistory(ctx, record.ID, "intruder"), ErrPromptNotFound)

	found, err := FindPromptHistoryByID(ctx, record.ID, "owner")
	require.NoError(t, err)
	assert.Equal(t, record.GeneratedCode, found.GeneratedCode)

	require.NoError(t, DeletePromptHistory(ctx, record.ID, "owner"))
	_, err = FindPromptHistoryByID(ctx, record.ID, "owner")
	assert.ErrorIs(t, err, ErrPromptNotFound)
}
