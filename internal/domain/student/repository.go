package student

import (
	"iter"
)

// ══════════════════════════════════════════════════════════════════════════════
// DIRECTORY INTERFACE
// Контракт справочника студентов. Реализация находится в
// infrastructure/persistence/memory.
// ══════════════════════════════════════════════════════════════════════════════

// Directory хранит студентов и держит три представления согласованными:
// индекс по ID, список в порядке добавления и отсортированные списки факультетов.
// Каждая мутация применяется ко всем трём представлениям или ни к одному.
type Directory interface {
	// ─────────────────────────────────────────────────────────────────────────
	// Mutations
	// ─────────────────────────────────────────────────────────────────────────

	// Add валидирует параметры и добавляет студента.
	// Возвращает ошибку валидации или ErrDuplicateID; в этом случае ничего не меняется.
	Add(params NewStudentParams) (Student, error)

	// Update применяет только переданные поля.
	// Возвращает ErrStudentNotFound или ошибку валидации; в этом случае ничего не меняется.
	Update(id ID, params UpdateParams) (Student, error)

	// Delete удаляет студента из всех представлений.
	// Возвращает false, если студента нет.
	Delete(id ID) bool

	// ─────────────────────────────────────────────────────────────────────────
	// Queries
	// ─────────────────────────────────────────────────────────────────────────

	// Get возвращает студента по ID за O(1).
	Get(id ID) (Student, bool)

	// ListAll возвращает всех студентов в порядке добавления.
	ListAll() iter.Seq[Student]

	// ListByDepartment возвращает студентов факультета по курсу (убывание), затем по ID.
	// Возвращает false для неизвестного факультета.
	ListByDepartment(dept Department) (iter.Seq[Student], bool)

	// Len возвращает количество студентов.
	Len() int

	// Counts возвращает количество студентов по факультетам.
	Counts() map[Department]int
}
