package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"hr-assistant/internal/ai"
	"hr-assistant/internal/intent"
	"hr-assistant/internal/model"
	"hr-assistant/internal/retrieval"
	"hr-assistant/internal/session"
)

var (
	ErrMessageEmpty    = errors.New("message content is empty")
	ErrSessionNotFound = errors.New("session not found")
)

const (
	emptyAnswerFallback = "응답을 생성할 수 없습니다."
	llmErrorFallback    = "죄송합니다. 응답 생성 중 오류가 발생했습니다. 잠시 후 다시 시도해주세요."
)

// Completer produces a chat completion. Satisfied by ai.OpenAICompatibleClient.
type Completer interface {
	Complete(ctx context.Context, cfg ai.ChatConfig, messages []ai.ChatMessage) (string, error)
}

// ArchivePublisher enqueues a message for asynchronous persistence. Optional;
// a nil publisher disables archiving.
type ArchivePublisher interface {
	Publish(ctx context.Context, msg model.ChatMessage) error
}

// HistoryCache caches archived history per session. Optional.
type HistoryCache interface {
	GetHistory(ctx context.Context, sessionID string) ([]model.ChatMessage, bool, error)
	SetHistory(ctx context.Context, sessionID string, messages []model.ChatMessage) error
	DeleteHistory(ctx context.Context, sessionID string) error
	MarkDirty(ctx context.Context, sessionID string) error
	IsDirty(ctx context.Context, sessionID string) (bool, error)
}

// ArchivedHistoryReader loads persisted history. Optional; backed by
// repository.MessageRepository when MySQL is configured.
type ArchivedHistoryReader interface {
	ListBySessionID(sessionID string, limit int) ([]model.ChatMessage, error)
}

type ChatService struct {
	sessions      *session.Store
	dispatcher    *retrieval.Dispatcher
	completer     Completer
	publisher     ArchivePublisher
	historyCache  HistoryCache
	archiveReader ArchivedHistoryReader
	llm           ai.ChatConfig
	maxContext    int
	strictContext bool
	logger        *zap.Logger
}

type SendMessageInput struct {
	SessionID string
	Message   string
}

type SendMessageResult struct {
	Response   string
	SessionID  string
	DataSource string
}

func NewChatService(
	sessions *session.Store,
	dispatcher *retrieval.Dispatcher,
	completer Completer,
	publisher ArchivePublisher,
	historyCache HistoryCache,
	archiveReader ArchivedHistoryReader,
	llm ai.ChatConfig,
	maxContext int,
	strictContext bool,
	logger *zap.Logger,
) *ChatService {
	if maxContext <= 0 {
		maxContext = 6
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChatService{
		sessions:      sessions,
		dispatcher:    dispatcher,
		completer:     completer,
		publisher:     publisher,
		historyCache:  historyCache,
		archiveReader: archiveReader,
		llm:           llm,
		maxContext:    maxContext,
		strictContext: strictContext,
		logger:        logger,
	}
}

// StartSession opens a fresh conversation and returns its id.
func (s *ChatService) StartSession() string {
	return s.sessions.Start().ID
}

// SendMessage runs the full pipeline: classify, retrieve, compose, complete.
// Collaborator failures degrade to the retrieval text; the caller always gets
// an answer once input validation passes.
func (s *ChatService) SendMessage(ctx context.Context, input SendMessageInput) (*SendMessageResult, error) {
	content := strings.TrimSpace(input.Message)
	if content == "" {
		return nil, ErrMessageEmpty
	}

	sess := s.sessions.GetOrCreate(input.SessionID)

	res := intent.Classify(content)
	retrieved := s.dispatcher.Retrieve(res, content)

	window := s.sessions.Window(sess.ID, s.maxContext)
	answer := s.generateAnswer(ctx, content, retrieved, window)

	s.sessions.Append(sess.ID, "user", content)
	s.sessions.Append(sess.ID, "assistant", answer)
	s.sessions.RememberEntities(sess.ID, res.Names, res.Departments)
	s.archive(ctx, sess.ID, content, answer)

	return &SendMessageResult{
		Response:   answer,
		SessionID:  sess.ID,
		DataSource: retrieved.DataSource,
	}, nil
}

func (s *ChatService) generateAnswer(
	ctx context.Context,
	content string,
	retrieved retrieval.Result,
	window []session.Turn,
) string {
	if s.llm.APIKey == "" {
		if retrieved.Text != "" {
			return retrieved.Text
		}
		return fmt.Sprintf("%q에 대한 처리를 위해 API 키가 필요합니다. 관리자에게 문의해주세요.", content)
	}

	systemPrompt := buildSystemPrompt(time.Now(), retrieved.Text, retrieved.DataSource, s.strictContext)
	messages := buildPromptMessages(systemPrompt, window, content)

	answer, err := s.completer.Complete(ctx, s.llm, messages)
	if err != nil {
		s.logger.Warn("chat completion failed", zap.Error(err))
		if retrieved.Text != "" {
			return retrieved.Text
		}
		return llmErrorFallback
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		answer = emptyAnswerFallback
	}
	if retrieved.Text != "" {
		return answer + "\n\n" + retrieved.Text
	}
	return answer
}

// archive publishes both turns to the persistence queue, best effort.
func (s *ChatService) archive(ctx context.Context, sessionID, userContent, assistantContent string) {
	if s.publisher == nil {
		return
	}
	if s.historyCache != nil {
		_ = s.historyCache.MarkDirty(ctx, sessionID)
		_ = s.historyCache.DeleteHistory(ctx, sessionID)
	}
	now := time.Now()
	pair := []model.ChatMessage{
		{SessionID: sessionID, Role: "user", Content: userContent, CreatedAt: now},
		{SessionID: sessionID, Role: "assistant", Content: assistantContent, CreatedAt: now},
	}
	for _, msg := range pair {
		if err := s.publisher.Publish(ctx, msg); err != nil {
			s.logger.Warn("archive publish failed",
				zap.String("session_id", sessionID), zap.Error(err))
			return
		}
	}
}

// History returns a session's messages, preferring the archived store when
// one is configured and falling back to the in-memory session turns.
func (s *ChatService) History(ctx context.Context, sessionID string, limit int) ([]model.ChatMessage, error) {
	if sessionID == "" {
		return nil, ErrSessionNotFound
	}

	if s.archiveReader != nil {
		if s.historyCache != nil {
			dirty, err := s.historyCache.IsDirty(ctx, sessionID)
			if err == nil && !dirty {
				if cached, hit, cacheErr := s.historyCache.GetHistory(ctx, sessionID); cacheErr == nil && hit {
					return trimMessages(cached, limit), nil
				}
			}
		}
		messages, err := s.archiveReader.ListBySessionID(sessionID, limit)
		if err == nil {
			if s.historyCache != nil {
				if dirty, dirtyErr := s.historyCache.IsDirty(ctx, sessionID); dirtyErr == nil && !dirty {
					_ = s.historyCache.SetHistory(ctx, sessionID, messages)
				}
			}
			return messages, nil
		}
		s.logger.Warn("archived history read failed",
			zap.String("session_id", sessionID), zap.Error(err))
	}

	if !s.sessions.Exists(sessionID) {
		return nil, ErrSessionNotFound
	}
	turns := s.sessions.Window(sessionID, limit)
	messages := make([]model.ChatMessage, 0, len(turns))
	for _, turn := range turns {
		messages = append(messages, model.ChatMessage{
			SessionID: sessionID,
			Role:      turn.Role,
			Content:   turn.Content,
			CreatedAt: turn.CreatedAt,
		})
	}
	return messages, nil
}

// ClearHistory empties a session's in-memory turns and invalidates the cache.
func (s *ChatService) ClearHistory(ctx context.Context, sessionID string) error {
	if sessionID == "" || !s.sessions.Clear(sessionID) {
		return ErrSessionNotFound
	}
	if s.historyCache != nil {
		_ = s.historyCache.DeleteHistory(ctx, sessionID)
	}
	return nil
}

// ListSessions exposes session metadata for the admin surface.
func (s *ChatService) ListSessions() []session.Meta {
	return s.sessions.List()
}

func trimMessages(messages []model.ChatMessage, limit int) []model.ChatMessage {
	if limit <= 0 || limit >= len(messages) {
		return messages
	}
	return messages[len(messages)-limit:]
}
