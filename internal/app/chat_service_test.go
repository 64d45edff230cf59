package app

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hr-assistant/internal/ai"
	"hr-assistant/internal/corpus"
	"hr-assistant/internal/model"
	"hr-assistant/internal/retrieval"
	"hr-assistant/internal/session"
	"hr-assistant/internal/store"
)

type fakeCompleter struct {
	answer string
	err    error
	calls  int
}

func (f *fakeCompleter) Complete(_ context.Context, _ ai.ChatConfig, _ []ai.ChatMessage) (string, error) {
	f.calls++
	return f.answer, f.err
}

func newTestChatService(t *testing.T, completer Completer, apiKey string) (*ChatService, *session.Store) {
	t.Helper()
	employees := []model.Employee{
		{ID: "1", Name: "김철수", Position: "과장", Department: "개발팀", EmployeeNumber: "EMP001", Status: model.StatusActive},
	}
	empStore := store.NewEmployeeStoreFromRecords(employees)
	leaveStore, err := store.NewLeaveStore(filepath.Join(t.TempDir(), "leave.json"), employees, 25)
	require.NoError(t, err)
	dispatcher := retrieval.NewDispatcher(empStore, leaveStore, corpus.New("", "", employees, nil))

	sessions := session.NewStore()
	svc := NewChatService(
		sessions, dispatcher, completer, nil, nil, nil,
		ai.ChatConfig{APIKey: apiKey, Model: "gpt-4o-mini"},
		6, true, nil,
	)
	return svc, sessions
}

func TestSendMessageEmptyInput(t *testing.T) {
	completer := &fakeCompleter{answer: "답변"}
	svc, sessions := newTestChatService(t, completer, "key")

	_, err := svc.SendMessage(context.Background(), SendMessageInput{Message: "   "})

	assert.ErrorIs(t, err, ErrMessageEmpty)
	assert.Zero(t, completer.calls, "no completion on rejected input")
	assert.Empty(t, sessions.List(), "no session created on rejected input")
}

func TestSendMessageMergesAnswerAndData(t *testing.T) {
	completer := &fakeCompleter{answer: "김철수님은 개발팀 과장입니다."}
	svc, _ := newTestChatService(t, completer, "key")

	result, err := svc.SendMessage(context.Background(), SendMessageInput{Message: "김철수 직원 정보 알려줘"})
	require.NoError(t, err)

	assert.Equal(t, 1, completer.calls)
	assert.Contains(t, result.Response, "김철수님은 개발팀 과장입니다.")
	assert.Contains(t, result.Response, "직원 정보:", "retrieved data block is appended")
	assert.Equal(t, "직원 데이터베이스", result.DataSource)
	assert.NotEmpty(t, result.SessionID)
}

func TestSendMessageNoAPIKeyReturnsData(t *testing.T) {
	completer := &fakeCompleter{answer: "unused"}
	svc, _ := newTestChatService(t, completer, "")

	result, err := svc.SendMessage(context.Background(), SendMessageInput{Message: "김철수 직원 정보 알려줘"})
	require.NoError(t, err)

	assert.Zero(t, completer.calls, "no completion without an api key")
	assert.Contains(t, result.Response, "직원 정보:")
}

func TestSendMessageNoAPIKeyNoData(t *testing.T) {
	svc, _ := newTestChatService(t, &fakeCompleter{}, "")

	result, err := svc.SendMessage(context.Background(), SendMessageInput{Message: "박영수 직원 정보 알려줘"})
	require.NoError(t, err)

	assert.Contains(t, result.Response, "관리자에게 문의해주세요")
}

func TestSendMessageCompleterErrorFallsBackToData(t *testing.T) {
	completer := &fakeCompleter{err: errors.New("upstream down")}
	svc, _ := newTestChatService(t, completer, "key")

	result, err := svc.SendMessage(context.Background(), SendMessageInput{Message: "김철수 직원 정보 알려줘"})
	require.NoError(t, err, "collaborator failure degrades, not errors")

	assert.Contains(t, result.Response, "직원 정보:")
}

func TestSendMessageCompleterErrorApology(t *testing.T) {
	completer := &fakeCompleter{err: errors.New("upstream down")}
	svc, _ := newTestChatService(t, completer, "key")

	result, err := svc.SendMessage(context.Background(), SendMessageInput{Message: "박영수 직원 정보 알려줘"})
	require.NoError(t, err)

	assert.Equal(t, llmErrorFallback, result.Response)
}

func TestSendMessageAppendsTurns(t *testing.T) {
	completer := &fakeCompleter{answer: "답변입니다."}
	svc, sessions := newTestChatService(t, completer, "key")

	result, err := svc.SendMessage(context.Background(), SendMessageInput{Message: "날씨 어때"})
	require.NoError(t, err)

	window := sessions.Window(result.SessionID, 10)
	require.Len(t, window, 2)
	assert.Equal(t, "user", window[0].Role)
	assert.Equal(t, "날씨 어때", window[0].Content)
	assert.Equal(t, "assistant", window[1].Role)
}

func TestSendMessageReusesSession(t *testing.T) {
	completer := &fakeCompleter{answer: "답변"}
	svc, sessions := newTestChatService(t, completer, "key")

	first, err := svc.SendMessage(context.Background(), SendMessageInput{Message: "첫 질문"})
	require.NoError(t, err)
	second, err := svc.SendMessage(context.Background(), SendMessageInput{
		SessionID: first.SessionID, Message: "두번째 질문",
	})
	require.NoError(t, err)

	assert.Equal(t, first.SessionID, second.SessionID)
	assert.Len(t, sessions.Window(first.SessionID, 10), 4)
}

func TestHistoryFallsBackToSessionTurns(t *testing.T) {
	completer := &fakeCompleter{answer: "답변"}
	svc, _ := newTestChatService(t, completer, "key")

	result, err := svc.SendMessage(context.Background(), SendMessageInput{Message: "질문"})
	require.NoError(t, err)

	history, err := svc.History(context.Background(), result.SessionID, 10)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, result.SessionID, history[0].SessionID)

	_, err = svc.History(context.Background(), "unknown", 10)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestClearHistory(t *testing.T) {
	completer := &fakeCompleter{answer: "답변"}
	svc, sessions := newTestChatService(t, completer, "key")

	result, err := svc.SendMessage(context.Background(), SendMessageInput{Message: "질문"})
	require.NoError(t, err)

	require.NoError(t, svc.ClearHistory(context.Background(), result.SessionID))
	assert.Empty(t, sessions.Window(result.SessionID, 10))

	assert.ErrorIs(t, svc.ClearHistory(context.Background(), "unknown"), ErrSessionNotFound)
}
