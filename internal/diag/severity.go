package diag

// Severity — уровень серьёзности диагностики.
type Severity uint8

const (
	// SevInfo - просто информация
	SevInfo Severity = iota
	// SevWarning - предупреждение, код подозрительный, но исполняемый
	SevWarning
	// SevError - ошибка, дальше этот фрагмент не интерпретируется
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "info"
	case SevWarning:
		return "warning"
	case SevError:
		return "error"
	default:
		return "unknown"
	}
}
