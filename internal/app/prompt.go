package app

import (
	"fmt"
	"strings"
	"time"

	"hr-assistant/internal/ai"
	"hr-assistant/internal/session"
)

// greeting picks the honorific opener for the system prompt by hour of day.
func greeting(now time.Time) string {
	switch h := now.Hour(); {
	case h < 12:
		return "좋은 아침입니다"
	case h < 18:
		return "안녕하세요"
	default:
		return "좋은 저녁입니다"
	}
}

// buildSystemPrompt assembles the assistant role block. retrieved is the
// formatted retrieval text and may be empty; source names the dataset the
// text came from.
func buildSystemPrompt(now time.Time, retrieved, source string, strict bool) string {
	var b strings.Builder

	b.WriteString(greeting(now))
	b.WriteString("! 당신은 회사의 인사 관련 질문에 답변하는 전문 인사 도우미입니다.\n\n")
	b.WriteString("역할:\n")
	b.WriteString("- 직원 정보, 연차 현황, 사내 규정, 근로기준법 관련 질문에 정확하게 답변합니다.\n")
	b.WriteString("- 제공된 데이터를 근거로 답변하며, 데이터에 없는 내용은 추측하지 않습니다.\n")
	b.WriteString("- 항상 정중하고 간결한 한국어로 답변합니다.\n")

	if retrieved != "" {
		b.WriteString("\n관련 데이터 (")
		b.WriteString(source)
		b.WriteString("):\n")
		b.WriteString(retrieved)
		b.WriteString("\n")
	}

	if strict {
		b.WriteString("\n위에 제공된 데이터만을 근거로 답변하세요. 데이터에 없는 정보를 요청받으면 해당 정보가 없다고 안내하세요.\n")
	}

	b.WriteString(fmt.Sprintf("\n현재 시각: %s\n", now.Format("2006-01-02 15:04")))
	return b.String()
}

// buildPromptMessages folds the session window and the current user input
// behind the system prompt.
func buildPromptMessages(systemPrompt string, window []session.Turn, userInput string) []ai.ChatMessage {
	messages := make([]ai.ChatMessage, 0, len(window)+2)
	messages = append(messages, ai.ChatMessage{Role: "system", Content: systemPrompt})
	for _, turn := range window {
		role := turn.Role
		if role == "" {
			role = "user"
		}
		messages = append(messages, ai.ChatMessage{Role: role, Content: turn.Content})
	}
	if strings.TrimSpace(userInput) != "" {
		messages = append(messages, ai.ChatMessage{Role: "user", Content: strings.TrimSpace(userInput)})
	}
	return messages
}
