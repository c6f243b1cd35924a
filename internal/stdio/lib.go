package stdio

import (
	"fortio.org/safecast"

	"tci/internal/vm"
)

// Well-known device descriptors.
const (
	FdStdin  uint32 = 0
	FdStdout uint32 = 1
	FdStderr uint32 = 2
)

// Lib is one program's stdio state: the three standard streams, the
// open-file table and the message perror reports. One Lib per Machine.
type Lib struct {
	m   *vm.Machine
	vol *Volume

	stdin  *Stream
	stdout *Stream
	stderr *Stream

	open   []*Stream
	nextFD uint32

	errMsg string
}

// New wires a stdio library to a machine. Standard output is
// line-buffered, standard error unbuffered, standard input fully
// buffered.
func New(m *vm.Machine) *Lib {
	l := &Lib{
		m:      m,
		vol:    NewVolume(),
		nextFD: 3,
		errMsg: "no error",
	}
	l.stdin = l.newStream(FdStdin, nil, DirRead|BufFull)
	l.stdout = l.newStream(FdStdout, nil, DirWrite|BufLine)
	l.stderr = l.newStream(FdStderr, nil, DirWrite|BufNone)
	return l
}

// Volume returns the file store behind fopen, so callers can seed
// input files and inspect written ones.
func (l *Lib) Volume() *Volume { return l.vol }

// Stdin returns the standard input stream.
func (l *Lib) Stdin() *Stream { return l.stdin }

// Stdout returns the standard output stream.
func (l *Lib) Stdout() *Stream { return l.stdout }

// Stderr returns the standard error stream.
func (l *Lib) Stderr() *Stream { return l.stderr }

func (l *Lib) newStream(fd uint32, file *volFile, flags StreamFlags) *Stream {
	s := &Stream{
		lib:   l,
		fd:    fd,
		file:  file,
		flags: flags,
	}
	l.open = append(l.open, s)
	return s
}

func (l *Lib) forgetStream(s *Stream) {
	for i, open := range l.open {
		if open == s {
			l.open = append(l.open[:i], l.open[i+1:]...)
			return
		}
	}
}

// Open opens a named file in the volume (fopen). A nil stream with a
// nil fault means the open failed the C way: the reason is kept for
// perror.
func (l *Lib) Open(nameAddr, modeAddr uint32) (*Stream, *vm.Fault) {
	name, fault := l.m.LoadCString(nameAddr)
	if fault != nil {
		return nil, fault
	}
	mode, fault := l.m.LoadCString(modeAddr)
	if fault != nil {
		return nil, fault
	}

	flags, ok := parseMode(string(mode))
	if !ok {
		l.errMsg = "invalid mode"
		return nil, nil
	}

	file, exists := l.vol.lookup(string(name))
	switch mode[0] {
	case 'r':
		if !exists {
			l.errMsg = "no such file or directory"
			return nil, nil
		}
	case 'w':
		if exists {
			file.data = nil
		} else {
			file = l.vol.create(string(name))
		}
	case 'a':
		if !exists {
			file = l.vol.create(string(name))
		}
	}

	s := l.newStream(l.nextFD, file, flags|BufFull)
	l.nextFD++
	if mode[0] == 'a' {
		s.pos = uint32(len(file.data))
	}
	return s, nil
}

// parseMode maps an fopen mode string onto direction and binary flags.
// The buffering field is left to the caller.
func parseMode(mode string) (StreamFlags, bool) {
	if mode == "" {
		return 0, false
	}
	var flags StreamFlags
	switch mode[0] {
	case 'r':
		flags = DirRead
	case 'w', 'a':
		flags = DirWrite
	default:
		return 0, false
	}
	for _, c := range mode[1:] {
		switch c {
		case '+':
			flags = (flags &^ (DirRead | DirWrite)) | DirUpdate
		case 'b':
			flags |= FlagBinary
		default:
			return 0, false
		}
	}
	return flags, true
}

// Remove deletes a named file from the volume (remove). Returns 0 on
// success, -1 when no such file exists.
func (l *Lib) Remove(nameAddr uint32) (int32, *vm.Fault) {
	name, fault := l.m.LoadCString(nameAddr)
	if fault != nil {
		return -1, fault
	}
	if !l.vol.Remove(string(name)) {
		l.errMsg = "no such file or directory"
		return -1, nil
	}
	return 0, nil
}

// Perror writes the stored error message to standard error, prefixed
// by the caller's string when it is non-empty (perror).
func (l *Lib) Perror(prefixAddr uint32) *vm.Fault {
	var line []byte
	if prefixAddr != 0 {
		prefix, fault := l.m.LoadCString(prefixAddr)
		if fault != nil {
			return fault
		}
		if len(prefix) > 0 {
			line = append(line, prefix...)
			line = append(line, ':', ' ')
		}
	}
	line = append(line, l.errMsg...)
	line = append(line, '\n')

	l.stderr.mu.Lock()
	defer l.stderr.mu.Unlock()
	return l.stderr.writeLocked(line)
}

// Printf formats into standard output (printf). Returns the byte
// count written.
func (l *Lib) Printf(formatAddr uint32, args ...uint32) (int32, *vm.Fault) {
	return l.stdout.Printf(formatAddr, args...)
}

// Sprintf formats into a caller buffer and NUL-terminates it
// (sprintf). Returns the byte count excluding the terminator.
func (l *Lib) Sprintf(dstAddr, formatAddr uint32, args ...uint32) (int32, *vm.Fault) {
	out, fault := l.formatString(formatAddr, args)
	if fault != nil {
		return EOF, fault
	}
	if fault := l.m.Store(dstAddr, append(out, 0)); fault != nil {
		return EOF, fault
	}
	n, err := safecast.Conv[int32](len(out))
	if err != nil {
		return EOF, nil
	}
	return n, nil
}

// Snprintf formats into a caller buffer of bounded size (snprintf).
// At most size-1 bytes are stored before the terminator; the return
// value is the full untruncated length.
func (l *Lib) Snprintf(dstAddr, size, formatAddr uint32, args ...uint32) (int32, *vm.Fault) {
	out, fault := l.formatString(formatAddr, args)
	if fault != nil {
		return EOF, fault
	}
	if size > 0 {
		keep := out
		if uint32(len(keep)) > size-1 {
			keep = keep[:size-1]
		}
		if fault := l.m.Store(dstAddr, append(append([]byte(nil), keep...), 0)); fault != nil {
			return EOF, fault
		}
	}
	n, err := safecast.Conv[int32](len(out))
	if err != nil {
		return EOF, nil
	}
	return n, nil
}

// FlushAll flushes every open stream, standard output included. The
// runtime calls it when the program exits.
func (l *Lib) FlushAll() *vm.Fault {
	for _, s := range l.open {
		s.mu.Lock()
		fault := s.flushLocked()
		s.mu.Unlock()
		if fault != nil {
			return fault
		}
	}
	return nil
}
