// Package student содержит доменную модель студента и контракт справочника.
//
// Пакет определяет:
//
//   - Сущность Student и её валидацию (NewStudent, Validate)
//   - Value Objects: ID, ClassYear, Department
//   - Частичные обновления: Optional, UpdateParams
//   - Доменные события: StudentAdded, StudentUpdated, StudentRemoved
//   - Интерфейс Directory (реализация в infrastructure/persistence/memory)
//   - Порт импорта: RawRow, RowSource, RowReader, ParseRow
//
// # Валидация
//
// Правила описаны тегами go-playground/validator на полях Student.
// Каждое нарушение отображается в доменную ошибку, которую можно
// проверить через errors.Is:
//
//	_, err := NewStudent(NewStudentParams{ID: 7, Name: "Grace", GPA: 4.1, ...})
//	if errors.Is(err, ErrInvalidGPA) {
//	    // средний балл вне [0, 4.0]
//	}
//
// # Частичное обновление
//
// Поле, которое не передано, не меняется. Значение 0.0 для GPA - это
// обычное значение, а не "пропуск":
//
//	params := UpdateParams{GPA: Some(0.0), ClassYear: Some(ClassYearSenior)}
//	updated, err := dir.Update(1002, params)
//
// # Порядок в списке факультета
//
// Старшие курсы идут первыми; при равном курсе меньший ID идёт раньше.
// Этот порядок виден пользователю и является частью контракта.
package student
