package student

import (
	"github.com/alem-hub/student-directory/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// DOMAIN EVENTS
// События справочника, на которые реагируют другие части системы
// (журнал аудита, метрики и т.д.).
// ══════════════════════════════════════════════════════════════════════════════

// StudentAddedEvent - студент добавлен в справочник.
type StudentAddedEvent struct {
	shared.BaseEvent
	Student Student `json:"student"`
}

// Payload возвращает данные события.
func (e StudentAddedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"id":         int64(e.Student.ID),
		"name":       e.Student.Name,
		"class_year": e.Student.ClassYear.String(),
		"department": e.Student.Department.String(),
	}
}

// NewStudentAddedEvent создаёт событие добавления студента.
func NewStudentAddedEvent(s Student, correlationID string) StudentAddedEvent {
	return StudentAddedEvent{
		BaseEvent: shared.NewBaseEvent(shared.EventStudentAdded, s.ID.String()).WithCorrelationID(correlationID),
		Student:   s,
	}
}

// StudentUpdatedEvent - данные студента изменены.
type StudentUpdatedEvent struct {
	shared.BaseEvent
	Before        Student  `json:"before"`
	After         Student  `json:"after"`
	ChangedFields []string `json:"changed_fields"`
	Resorted      bool     `json:"resorted"`
}

// Payload возвращает данные события.
func (e StudentUpdatedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"id":             int64(e.After.ID),
		"changed_fields": e.ChangedFields,
		"old_department": e.Before.Department.String(),
		"new_department": e.After.Department.String(),
		"resorted":       e.Resorted,
	}
}

// DepartmentChanged возвращает true, если студент перешёл на другой факультет.
func (e StudentUpdatedEvent) DepartmentChanged() bool {
	return e.Before.Department != e.After.Department
}

// NewStudentUpdatedEvent создаёт событие обновления студента.
func NewStudentUpdatedEvent(before, after Student, params UpdateParams, correlationID string) StudentUpdatedEvent {
	return StudentUpdatedEvent{
		BaseEvent:     shared.NewBaseEvent(shared.EventStudentUpdated, after.ID.String()).WithCorrelationID(correlationID),
		Before:        before,
		After:         after,
		ChangedFields: params.Fields(),
		Resorted:      params.AffectsOrder(),
	}
}

// StudentRemovedEvent - студент удалён из справочника.
type StudentRemovedEvent struct {
	shared.BaseEvent
	Student Student `json:"student"`
}

// Payload возвращает данные события.
func (e StudentRemovedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"id":         int64(e.Student.ID),
		"department": e.Student.Department.String(),
	}
}

// NewStudentRemovedEvent создаёт событие удаления студента.
func NewStudentRemovedEvent(s Student, correlationID string) StudentRemovedEvent {
	return StudentRemovedEvent{
		BaseEvent: shared.NewBaseEvent(shared.EventStudentRemoved, s.ID.String()).WithCorrelationID(correlationID),
		Student:   s,
	}
}
