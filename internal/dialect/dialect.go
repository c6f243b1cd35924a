package dialect

import "fmt"

// Kind is a foreign language a source file may actually be written in.
type Kind uint8

const (
	Unknown Kind = iota
	Python
	Cpp
	Java
	JavaScript

	kindCount
)

func (k Kind) String() string {
	switch k {
	case Python:
		return "python"
	case Cpp:
		return "c++"
	case Java:
		return "java"
	case JavaScript:
		return "javascript"
	default:
		return "unknown"
	}
}

func (k Kind) GoString() string {
	return fmt.Sprintf("Kind(%s)", k.String())
}
