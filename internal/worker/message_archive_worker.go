package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"hr-assistant/internal/model"
	"hr-assistant/internal/repository"
)

// MessageArchiveWorker drains the archive queue and persists chat messages
// to MySQL. Messages that fail to decode or persist are dead-lettered with
// a single Nack, no requeue.
type MessageArchiveWorker struct {
	conn      *amqp.Connection
	repo      *repository.MessageRepository
	queueName string
	logger    *zap.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewMessageArchiveWorker(conn *amqp.Connection, repo *repository.MessageRepository, queueName string, logger *zap.Logger) *MessageArchiveWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MessageArchiveWorker{
		conn:      conn,
		repo:      repo,
		queueName: queueName,
		logger:    logger,
	}
}

func (w *MessageArchiveWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	ch, err := w.conn.Channel()
	if err != nil {
		cancel()
		return fmt.Errorf("open worker channel failed: %w", err)
	}

	_, err = ch.QueueDeclare(
		w.queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("declare worker queue failed: %w", err)
	}

	deliveries, err := ch.Consume(
		w.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("consume queue failed: %w", err)
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()

		for {
			select {
			case <-workerCtx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}

				var msg model.ChatMessage
				if err := json.Unmarshal(d.Body, &msg); err != nil {
					w.logger.Warn("archive worker decode failed", zap.Error(err))
					_ = d.Nack(false, false)
					continue
				}

				if err := w.repo.Create(&msg); err != nil {
					w.logger.Warn("archive worker persist failed",
						zap.String("session_id", msg.SessionID), zap.Error(err))
					_ = d.Nack(false, false)
					continue
				}

				_ = d.Ack(false)
			}
		}
	}()

	return nil
}

func (w *MessageArchiveWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
