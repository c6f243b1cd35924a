package diag

import "tci/internal/source"

// Note — дополнительная подпись к диагностике, обычно указывает на
// виноватый токен ("token found here") или связанное место.
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic — одна диагностика. Значение самодостаточно: спаны
// резолвятся в строки/колонки только при рендеринге.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

// ID — ссылка на диагностику внутри её Bag. Узлы-ошибки дерева
// хранят именно ID, а не копию значения: источник истины один.
// Нулевой ID означает "диагностика не записана" (переполненный Bag).
type ID uint32

// NoID - пустая ссылка
const NoID ID = 0
