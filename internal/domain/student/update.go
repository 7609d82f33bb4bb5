package student

// ══════════════════════════════════════════════════════════════════════════════
// PARTIAL UPDATES
// ══════════════════════════════════════════════════════════════════════════════

// Optional хранит значение поля и признак того, что поле передано.
// Нулевое значение Optional означает "не менять".
type Optional[T any] struct {
	value T
	set   bool
}

// Some возвращает заданное значение.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// Get возвращает значение и признак наличия.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

// IsSet возвращает true, если значение передано.
func (o Optional[T]) IsSet() bool {
	return o.set
}

// OrElse возвращает значение или def, если значение не передано.
func (o Optional[T]) OrElse(def T) T {
	if o.set {
		return o.value
	}
	return def
}

// UpdateParams содержит поля для частичного обновления студента.
// ID не обновляется никогда.
type UpdateParams struct {
	Name       Optional[string]
	GPA        Optional[float64]
	ClassYear  Optional[ClassYear]
	Major      Optional[string]
	Department Optional[Department]
}

// IsEmpty возвращает true, если не передано ни одного поля.
func (p UpdateParams) IsEmpty() bool {
	return len(p.Fields()) == 0
}

// AffectsOrder возвращает true, если передан курс или факультет.
// Такое обновление всегда переставляет студента в списке факультета,
// даже если новое значение совпадает со старым.
func (p UpdateParams) AffectsOrder() bool {
	return p.ClassYear.IsSet() || p.Department.IsSet()
}

// Fields возвращает имена переданных полей.
func (p UpdateParams) Fields() []string {
	fields := make([]string, 0, 5)
	if p.Name.IsSet() {
		fields = append(fields, "name")
	}
	if p.GPA.IsSet() {
		fields = append(fields, "gpa")
	}
	if p.ClassYear.IsSet() {
		fields = append(fields, "class_year")
	}
	if p.Major.IsSet() {
		fields = append(fields, "major")
	}
	if p.Department.IsSet() {
		fields = append(fields, "department")
	}
	return fields
}

// ApplyTo возвращает копию s с применёнными полями. Сам s не меняется.
func (p UpdateParams) ApplyTo(s Student) Student {
	s.Name = p.Name.OrElse(s.Name)
	s.GPA = p.GPA.OrElse(s.GPA)
	s.ClassYear = p.ClassYear.OrElse(s.ClassYear)
	s.Major = p.Major.OrElse(s.Major)
	s.Department = p.Department.OrElse(s.Department)
	return s
}
