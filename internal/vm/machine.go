// Package vm runs interpreted programs inside a sandbox whose entire
// effect surface is seven numbered host operations (ecalls). No OS
// syscall is ever visible to the program: memory safety is enforced by
// IS_SAFE before every dereference, and would-be segmentation faults
// come back as structured, recoverable Fault values instead of killing
// the host process.
//
// A Machine owns one program run and is not safe for concurrent use;
// concurrent compilation requests each get their own Machine.
package vm

import (
	"encoding/binary"
	"fmt"

	"fortio.org/safecast"

	"tci/internal/source"
)

// Options configures a Machine.
type Options struct {
	// MemoryLimit bounds live allocations in bytes. Zero means
	// DefaultMemoryLimit.
	MemoryLimit uint32
}

// Machine hosts one running program: its address space, its call
// frames, and the host channels it may observe.
type Machine struct {
	Mem  *Memory
	host Host

	frames    []Frame
	argvAddrs []uint32
	argvDone  bool
	exited    bool
}

// NewMachine creates a machine bound to the given host. A nil host
// gets OS-backed defaults.
func NewMachine(host Host, opts Options) *Machine {
	if host == nil {
		host = NewDefaultHost()
	}
	return &Machine{
		Mem:  newMemory(opts.MemoryLimit),
		host: host,
	}
}

// Host returns the machine's host.
func (m *Machine) Host() Host {
	return m.host
}

// PushFrame enters a call frame for backtrace reporting.
func (m *Machine) PushFrame(fn string, span source.Span) {
	m.frames = append(m.frames, Frame{Func: fn, Span: span})
}

// PopFrame leaves the topmost call frame.
func (m *Machine) PopFrame() {
	if len(m.frames) > 0 {
		m.frames = m.frames[:len(m.frames)-1]
	}
}

// Depth returns the current call-frame count.
func (m *Machine) Depth() int {
	return len(m.frames)
}

// raise attaches location and backtrace to a bare fault. skip trims
// that many innermost frames, so runtime helpers can point the report
// at the user's code instead of themselves.
func (m *Machine) raise(f *Fault, skip uint32) *Fault {
	kept := m.frames
	for skip > 0 && len(kept) > 0 {
		kept = kept[:len(kept)-1]
		skip--
	}

	f.Frames = make([]Frame, len(kept))
	for i := len(kept) - 1; i >= 0; i-- {
		f.Frames[len(kept)-1-i] = kept[i]
	}
	if len(kept) > 0 {
		f.Span = kept[len(kept)-1].Span
	}
	return f
}

// Exit halts the program. Repeated calls keep the first status.
func (m *Machine) Exit(status int32) {
	if m.Exited() {
		return
	}
	m.host.Exit(status)
	m.exited = true
}

// Exited returns true once the program has halted, whether by its own
// EXIT or because the host terminated it from outside (a timeout, say).
// The ecall dispatcher consults this before every operation, so a host
// that flips its exit flag stops the unit at the next ecall boundary.
func (m *Machine) Exited() bool {
	return m.exited || m.host.Exited()
}

// ExitStatus returns the status passed to Exit, or -1 before exit.
func (m *Machine) ExitStatus() int32 {
	return m.host.ExitStatus()
}

// Argc returns the emulated argument count.
func (m *Machine) Argc() uint32 {
	count, err := safecast.Conv[uint32](len(m.host.Argv()))
	if err != nil {
		panic(fmt.Errorf("argv length overflow: %w", err))
	}
	return count
}

// ArgvPtr returns the address of the NUL-terminated argument string at
// index i, or 0 past the last argument (argv[argc] is null).
func (m *Machine) ArgvPtr(i uint32) (uint32, *Fault) {
	if fault := m.materializeArgv(); fault != nil {
		return 0, fault
	}
	if i >= uint32(len(m.argvAddrs)) {
		return 0, nil
	}
	return m.argvAddrs[i], nil
}

// materializeArgv copies the argument strings into program memory on
// first use, so ARGV hands out addresses the program may freely read.
func (m *Machine) materializeArgv() *Fault {
	if m.argvDone {
		return nil
	}
	args := m.host.Argv()
	addrs := make([]uint32, 0, len(args))
	for _, arg := range args {
		size, err := safecast.Conv[uint32](len(arg) + 1)
		if err != nil {
			panic(fmt.Errorf("argv string overflow: %w", err))
		}
		addr, fault := m.HeapAlloc(size)
		if fault != nil {
			return fault
		}
		if fault := m.Store(addr, append([]byte(arg), 0)); fault != nil {
			return fault
		}
		addrs = append(addrs, addr)
	}
	m.argvAddrs = addrs
	m.argvDone = true
	return nil
}

// IsSafe reports whether the byte range is live program-owned memory.
func (m *Machine) IsSafe(addr, length uint32) bool {
	return m.Mem.IsSafe(addr, length)
}

// HeapAlloc returns a fresh zero-initialized region. Out of memory is
// fatal to the program, not to the host process.
func (m *Machine) HeapAlloc(size uint32) (uint32, *Fault) {
	addr, fault := m.Mem.Alloc(size)
	if fault != nil {
		return 0, m.raise(fault, 0)
	}
	return addr, nil
}

// ThrowError raises a structured fault with the current backtrace,
// minus skip innermost frames.
func (m *Machine) ThrowError(kind, msg string, skip uint32) *Fault {
	return m.raise(&Fault{
		Code:    codeForKind(kind),
		Kind:    kind,
		Message: msg,
	}, skip)
}

// Load copies length bytes out of program memory, checking first.
func (m *Machine) Load(addr, length uint32) ([]byte, *Fault) {
	data, fault := m.Mem.Load(addr, length)
	if fault != nil {
		return nil, m.raise(fault, 0)
	}
	return data, nil
}

// Store copies p into program memory, checking first.
func (m *Machine) Store(addr uint32, p []byte) *Fault {
	if fault := m.Mem.Store(addr, p); fault != nil {
		return m.raise(fault, 0)
	}
	return nil
}

// LoadCString reads a NUL-terminated string out of program memory.
func (m *Machine) LoadCString(addr uint32) ([]byte, *Fault) {
	data, fault := m.Mem.LoadCString(addr)
	if fault != nil {
		return nil, m.raise(fault, 0)
	}
	return data, nil
}

// LoadWord reads a 32-bit little-endian word from program memory.
func (m *Machine) LoadWord(addr uint32) (uint32, *Fault) {
	data, fault := m.Load(addr, 4)
	if fault != nil {
		return 0, fault
	}
	return binary.LittleEndian.Uint32(data), nil
}

// StoreWord writes a 32-bit little-endian word into program memory.
func (m *Machine) StoreWord(addr uint32, v uint32) *Fault {
	var word [4]byte
	binary.LittleEndian.PutUint32(word[:], v)
	return m.Store(addr, word[:])
}

// Free releases an allocation made by HeapAlloc.
func (m *Machine) Free(addr uint32) *Fault {
	if fault := m.Mem.Free(addr); fault != nil {
		return m.raise(fault, 0)
	}
	return nil
}

// VarSize returns the owned bytes remaining from addr to the end of
// its allocation.
func (m *Machine) VarSize(addr uint32) (uint32, *Fault) {
	size, fault := m.Mem.VarSize(addr)
	if fault != nil {
		return 0, m.raise(fault, 0)
	}
	return size, nil
}

// WriteDevice routes bytes to a host output device: 1 is the standard
// output channel (the PRINT_STRING path), 2 the error channel.
func (m *Machine) WriteDevice(fd uint32, p []byte) (int, error) {
	switch fd {
	case 1:
		return m.host.WriteOut(p)
	case 2:
		return m.host.WriteErr(p)
	default:
		return 0, fmt.Errorf("write to unknown device %d", fd)
	}
}

// ReadDevice reads from a host input device: 0 is standard input.
func (m *Machine) ReadDevice(fd uint32, p []byte) (int, error) {
	if fd != 0 {
		return 0, fmt.Errorf("read from unknown device %d", fd)
	}
	return m.host.ReadIn(p)
}
