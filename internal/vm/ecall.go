package vm

import (
	"errors"
	"fmt"
)

// EcallNum selects one of the seven host operations. The numbering is
// the binary contract between interpreted code and host - do not
// change values.
type EcallNum int32

const (
	EcallExit        EcallNum = 0
	EcallArgc        EcallNum = 1
	EcallArgv        EcallNum = 2
	EcallIsSafe      EcallNum = 3
	EcallHeapAlloc   EcallNum = 4
	EcallThrowError  EcallNum = 5
	EcallPrintString EcallNum = 6
)

// ErrExited is returned for any ecall made after EXIT: no further
// ecalls are observable once the program has halted.
var ErrExited = errors.New("program already exited")

var ecallNames = [...]string{
	EcallExit:        "EXIT",
	EcallArgc:        "ARGC",
	EcallArgv:        "ARGV",
	EcallIsSafe:      "IS_SAFE",
	EcallHeapAlloc:   "HEAP_ALLOC",
	EcallThrowError:  "THROW_ERROR",
	EcallPrintString: "PRINT_STRING",
}

var ecallArity = [...]int{
	EcallExit:        1, // status
	EcallArgc:        0,
	EcallArgv:        1, // index
	EcallIsSafe:      2, // addr, length
	EcallHeapAlloc:   1, // size
	EcallThrowError:  3, // kind addr, message addr, skip
	EcallPrintString: 2, // addr, length
}

func (n EcallNum) String() string {
	if n >= 0 && int(n) < len(ecallNames) {
		return ecallNames[n]
	}
	return fmt.Sprintf("ECALL(%d)", int32(n))
}

// Ecall dispatches one numbered host operation. Все аргументы — слова:
// адреса или скаляры, как в vararg-вызове из интерпретируемого кода.
// A *Fault in the error slot is a program fault; any other error is a
// host-level problem.
func (m *Machine) Ecall(num EcallNum, args ...uint32) (uint32, error) {
	if m.Exited() {
		return 0, ErrExited
	}
	if num < 0 || int(num) >= len(ecallArity) {
		return 0, fmt.Errorf("unknown ecall %d", int32(num))
	}
	if len(args) != ecallArity[num] {
		return 0, fmt.Errorf("ecall %s: want %d args, got %d", num, ecallArity[num], len(args))
	}

	switch num {
	case EcallExit:
		m.Exit(int32(args[0]))
		return 0, nil

	case EcallArgc:
		return m.Argc(), nil

	case EcallArgv:
		addr, fault := m.ArgvPtr(args[0])
		if fault != nil {
			return 0, fault
		}
		return addr, nil

	case EcallIsSafe:
		if m.IsSafe(args[0], args[1]) {
			return 1, nil
		}
		return 0, nil

	case EcallHeapAlloc:
		addr, fault := m.HeapAlloc(args[0])
		if fault != nil {
			return 0, fault
		}
		return addr, nil

	case EcallThrowError:
		kind, fault := m.LoadCString(args[0])
		if fault != nil {
			return 0, fault
		}
		msg, fault := m.LoadCString(args[1])
		if fault != nil {
			return 0, fault
		}
		return 0, m.ThrowError(string(kind), string(msg), args[2])

	case EcallPrintString:
		data, fault := m.Load(args[0], args[1])
		if fault != nil {
			return 0, fault
		}
		if _, err := m.WriteDevice(1, data); err != nil {
			return 0, err
		}
		return 0, nil
	}
	return 0, fmt.Errorf("unknown ecall %d", int32(num))
}
