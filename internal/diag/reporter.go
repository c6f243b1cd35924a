package diag

import "tci/internal/source"

// Reporter — приёмник диагностик для кода, которому не нужны ссылки
// на записанные элементы (валидация тел, драйвер). Парсер объявлений
// работает с Bag напрямую, потому что узлам-ошибкам нужны ID.
type Reporter interface {
	Report(code Code, sev Severity, primary source.Span, msg string, notes []Note)
}

// BagReporter складывает всё в Bag.
type BagReporter struct {
	Bag *Bag
}

func (r BagReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	r.Bag.Add(Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
	})
}
