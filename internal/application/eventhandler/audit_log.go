// Package eventhandler содержит обработчики доменных событий.
// Обработчики реагируют на изменения справочника и выполняют побочные
// эффекты, не влияя на сами мутации.
package eventhandler

import (
	"errors"
	"maps"
	"slices"

	"github.com/alem-hub/student-directory/internal/domain/shared"
	"github.com/alem-hub/student-directory/pkg/logger"
)

// ═══════════════════════════════════════════════════════════════════════════
// AUDIT LOG HANDLER
// Пишет каждое событие справочника в структурированный лог.
// ═══════════════════════════════════════════════════════════════════════════

// AuditLogHandler записывает события в журнал аудита.
type AuditLogHandler struct {
	logger *logger.Logger
	level  logger.Level
}

// AuditLogConfig содержит конфигурацию обработчика.
type AuditLogConfig struct {
	// Level - уровень, на котором пишутся события.
	Level logger.Level
}

// DefaultAuditLogConfig возвращает конфигурацию по умолчанию.
func DefaultAuditLogConfig() AuditLogConfig {
	return AuditLogConfig{Level: logger.LevelInfo}
}

// NewAuditLogHandler создаёт новый обработчик журнала аудита.
func NewAuditLogHandler(log *logger.Logger, config AuditLogConfig) *AuditLogHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &AuditLogHandler{
		logger: log.With(logger.Component("audit")),
		level:  config.Level,
	}
}

// Register подписывает обработчик на все события.
func (h *AuditLogHandler) Register(bus shared.EventSubscriber) error {
	if bus == nil {
		return errors.New("audit: event subscriber is required")
	}
	return bus.SubscribeAll(h.Handle)
}

// Handle записывает событие. Поля payload пишутся в порядке ключей.
func (h *AuditLogHandler) Handle(event shared.Event) error {
	if event == nil {
		return errors.New("audit: nil event")
	}

	payload := event.Payload()
	fields := make([]logger.Field, 0, len(payload)+3)
	fields = append(fields,
		logger.EventType(string(event.EventType())),
		logger.String("aggregate_id", event.AggregateID()),
		logger.String("occurred_at", event.OccurredAt().Format("2006-01-02T15:04:05.000Z07:00")),
	)
	for _, key := range slices.Sorted(maps.Keys(payload)) {
		fields = append(fields, logger.Any("payload."+key, payload[key]))
	}

	switch h.level {
	case logger.LevelDebug:
		h.logger.Debug("directory event", fields...)
	case logger.LevelWarn:
		h.logger.Warn("directory event", fields...)
	case logger.LevelError:
		h.logger.Error("directory event", fields...)
	default:
		h.logger.Info("directory event", fields...)
	}
	return nil
}
