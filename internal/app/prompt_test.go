package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"hr-assistant/internal/session"
)

func TestGreetingBoundaries(t *testing.T) {
	day := func(hour int) time.Time {
		return time.Date(2024, 3, 15, hour, 0, 0, 0, time.Local)
	}

	assert.Equal(t, "좋은 아침입니다", greeting(day(0)))
	assert.Equal(t, "좋은 아침입니다", greeting(day(11)))
	assert.Equal(t, "안녕하세요", greeting(day(12)))
	assert.Equal(t, "안녕하세요", greeting(day(17)))
	assert.Equal(t, "좋은 저녁입니다", greeting(day(18)))
	assert.Equal(t, "좋은 저녁입니다", greeting(day(23)))
}

func TestBuildSystemPrompt(t *testing.T) {
	now := time.Date(2024, 3, 15, 9, 30, 0, 0, time.Local)

	prompt := buildSystemPrompt(now, "연차 현황: ...", "연차 데이터베이스", false)
	assert.Contains(t, prompt, "좋은 아침입니다")
	assert.Contains(t, prompt, "인사 도우미")
	assert.Contains(t, prompt, "관련 데이터 (연차 데이터베이스):")
	assert.Contains(t, prompt, "연차 현황: ...")
	assert.Contains(t, prompt, "현재 시각: 2024-03-15 09:30")
	assert.NotContains(t, prompt, "제공된 데이터만을 근거로")

	strict := buildSystemPrompt(now, "데이터", "직원 데이터베이스", true)
	assert.Contains(t, strict, "제공된 데이터만을 근거로")

	bare := buildSystemPrompt(now, "", "", false)
	assert.NotContains(t, bare, "관련 데이터")
}

func TestBuildPromptMessages(t *testing.T) {
	window := []session.Turn{
		{Role: "user", Content: "안녕"},
		{Role: "assistant", Content: "안녕하세요"},
		{Content: "역할 없는 턴"},
	}

	messages := buildPromptMessages("system prompt", window, "질문입니다")

	assert.Len(t, messages, 5)
	assert.Equal(t, "system", messages[0].Role)
	assert.Equal(t, "system prompt", messages[0].Content)
	assert.Equal(t, "user", messages[3].Role, "missing role defaults to user")
	assert.Equal(t, "질문입니다", messages[4].Content)

	// Blank input appends no user turn.
	messages = buildPromptMessages("system prompt", nil, "   ")
	assert.Len(t, messages, 1)
}
