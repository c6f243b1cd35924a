package stdio

import (
	"bytes"
	"errors"
	"io"
	"sync"

	"fortio.org/safecast"

	"tci/internal/vm"
)

const (
	// BufSize is the default stream buffer capacity.
	BufSize = 1024
	// EOF is the end-of-file return value of the byte I/O calls.
	EOF int32 = -1
)

// Stream is one open stream. Its buffer lives in program memory
// (allocated through HEAP_ALLOC), so every byte the program ever
// receives passes the same safety checks as its own allocations.
//
// Запись и чтение делят один буфер: writing говорит, чем он занят
// сейчас — несброшенными байтами записи или кешем чтения.
type Stream struct {
	mu  sync.Mutex
	lib *Lib

	bufAddr uint32 // HEAP_ALLOC'd lazily
	bufPos  uint32 // write: fill level; read: next unread index
	bufLen  uint32 // read: valid bytes in the buffer
	bufCap  uint32

	pos   uint32 // committed device position
	fd    uint32
	errno int32
	flags StreamFlags

	file    *volFile // nil for device streams
	writing bool
	closed  bool
}

// Flags returns the stream's current state word.
func (s *Stream) Flags() StreamFlags {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flags
}

// AtEOF reports whether the end-of-file indicator is set (feof).
func (s *Stream) AtEOF() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flags.AtEOF()
}

// Err reports whether the error indicator is set (ferror).
func (s *Stream) Err() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errno != 0
}

// ClearErr resets the error and end-of-file indicators (clearerr).
func (s *Stream) ClearErr() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errno = 0
	s.flags.clearEOF()
}

// Putc writes one byte (fputc). Returns the byte written, or EOF on a
// stream in an error state.
func (s *Stream) Putc(c int32) (int32, *vm.Fault) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := byte(c)
	if fault := s.writeLocked([]byte{b}); fault != nil {
		return EOF, fault
	}
	if s.errno != 0 {
		return EOF, nil
	}
	return int32(b), nil
}

// PutString writes a NUL-terminated string from program memory (fputs).
// Returns the byte count written.
func (s *Stream) PutString(addr uint32) (int32, *vm.Fault) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, fault := s.lib.m.LoadCString(addr)
	if fault != nil {
		return EOF, fault
	}
	if fault := s.writeLocked(data); fault != nil {
		return EOF, fault
	}
	if s.errno != 0 {
		return EOF, nil
	}
	n, err := safecast.Conv[int32](len(data))
	if err != nil {
		return EOF, nil
	}
	return n, nil
}

// Write copies count elements of size bytes out of program memory
// (fwrite). Returns the element count written.
func (s *Stream) Write(addr, size, count uint32) (uint32, *vm.Fault) {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := uint64(size) * uint64(count)
	if total == 0 {
		return 0, nil
	}
	if total > 1<<32-1 {
		s.errno = 1
		return 0, nil
	}
	data, fault := s.lib.m.Load(addr, uint32(total))
	if fault != nil {
		return 0, fault
	}
	if fault := s.writeLocked(data); fault != nil {
		return 0, fault
	}
	if s.errno != 0 {
		return 0, nil
	}
	return count, nil
}

// Getc reads one byte (fgetc). Returns EOF at end of input.
func (s *Stream) Getc() (int32, *vm.Fault) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getcLocked()
}

// GetString reads at most count-1 bytes into program memory, stopping
// after a newline, and terminates them with NUL (fgets). Returns the
// destination address, or 0 when end of input arrives before any byte.
func (s *Stream) GetString(addr uint32, count int32) (uint32, *vm.Fault) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if count <= 0 {
		return 0, nil
	}

	var line []byte
	for int32(len(line)) < count-1 {
		c, fault := s.getcLocked()
		if fault != nil {
			return 0, fault
		}
		if c == EOF {
			break
		}
		line = append(line, byte(c))
		if c == '\n' {
			break
		}
	}
	if len(line) == 0 {
		return 0, nil
	}
	if fault := s.lib.m.Store(addr, append(line, 0)); fault != nil {
		return 0, fault
	}
	return addr, nil
}

// Read copies count elements of size bytes into program memory
// (fread). Returns the count of complete elements read.
func (s *Stream) Read(addr, size, count uint32) (uint32, *vm.Fault) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if size == 0 || count == 0 {
		return 0, nil
	}

	var got []byte
	total := uint64(size) * uint64(count)
	for uint64(len(got)) < total {
		c, fault := s.getcLocked()
		if fault != nil {
			return 0, fault
		}
		if c == EOF {
			break
		}
		got = append(got, byte(c))
	}
	if len(got) == 0 {
		return 0, nil
	}
	if fault := s.lib.m.Store(addr, got); fault != nil {
		return 0, fault
	}
	return uint32(len(got)) / size, nil
}

// Flush commits buffered output to the device (fflush).
func (s *Stream) Flush() (int32, *vm.Fault) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if fault := s.flushLocked(); fault != nil {
		return EOF, fault
	}
	if s.errno != 0 {
		return EOF, nil
	}
	return 0, nil
}

// Close flushes the stream and releases its buffer (fclose). A second
// close returns EOF without touching freed memory.
func (s *Stream) Close() (int32, *vm.Fault) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return EOF, nil
	}
	ret := int32(0)
	if fault := s.flushLocked(); fault != nil {
		return EOF, fault
	}
	if s.errno != 0 {
		ret = EOF
	}
	if s.bufAddr != 0 {
		if fault := s.lib.m.Free(s.bufAddr); fault != nil {
			return EOF, fault
		}
		s.bufAddr = 0
	}
	s.closed = true
	s.lib.forgetStream(s)
	return ret, nil
}

// Printf formats into the stream (fprintf). Returns the byte count.
func (s *Stream) Printf(formatAddr uint32, args ...uint32) (int32, *vm.Fault) {
	out, fault := s.lib.formatString(formatAddr, args)
	if fault != nil {
		return EOF, fault
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if fault := s.writeLocked(out); fault != nil {
		return EOF, fault
	}
	if s.errno != 0 {
		return EOF, nil
	}
	n, err := safecast.Conv[int32](len(out))
	if err != nil {
		return EOF, nil
	}
	return n, nil
}

// ensureBuffer allocates the stream buffer on first use.
func (s *Stream) ensureBuffer() *vm.Fault {
	if s.bufAddr != 0 {
		return nil
	}
	addr, fault := s.lib.m.HeapAlloc(BufSize)
	if fault != nil {
		return fault
	}
	s.bufAddr = addr
	s.bufCap = BufSize
	return nil
}

// writeLocked appends bytes through the buffer, honoring the buffering
// discipline from the flags word.
func (s *Stream) writeLocked(data []byte) *vm.Fault {
	if s.closed || !s.flags.CanWrite() {
		s.errno = 1
		return nil
	}
	if s.flags.Width() == WidthUnset {
		s.flags.setWidth(WidthNarrow)
	}
	// буфер занят кешем чтения — сбрасываем его
	if !s.writing {
		s.bufPos = 0
		s.bufLen = 0
		s.writing = true
	}
	if fault := s.ensureBuffer(); fault != nil {
		return fault
	}

	for len(data) > 0 {
		if s.bufPos == s.bufCap {
			if fault := s.flushAllLocked(); fault != nil {
				return fault
			}
			if s.errno != 0 {
				return nil
			}
		}
		n := uint32(len(data))
		if room := s.bufCap - s.bufPos; n > room {
			n = room
		}
		if fault := s.lib.m.Store(s.bufAddr+s.bufPos, data[:n]); fault != nil {
			return fault
		}
		s.bufPos += n
		data = data[n:]
	}

	switch s.flags.Buffering() {
	case BufNone:
		return s.flushAllLocked()
	case BufLine:
		return s.flushThroughNewlineLocked()
	}
	return nil
}

// flushLocked commits pending write data; a read cache is discarded.
func (s *Stream) flushLocked() *vm.Fault {
	if !s.writing {
		s.bufPos = 0
		s.bufLen = 0
		return nil
	}
	return s.flushAllLocked()
}

func (s *Stream) flushAllLocked() *vm.Fault {
	if !s.writing || s.bufPos == 0 {
		return nil
	}
	return s.commitLocked(s.bufPos)
}

// flushThroughNewlineLocked commits up to and including the newest
// line separator, keeping the partial tail buffered.
func (s *Stream) flushThroughNewlineLocked() *vm.Fault {
	if s.bufPos == 0 {
		return nil
	}
	data, fault := s.lib.m.Load(s.bufAddr, s.bufPos)
	if fault != nil {
		return fault
	}
	idx := bytes.LastIndexByte(data, '\n')
	if idx < 0 {
		return nil
	}
	return s.commitLocked(uint32(idx) + 1)
}

// commitLocked pushes the first n buffered bytes to the device and
// slides any tail down to the buffer start.
func (s *Stream) commitLocked(n uint32) *vm.Fault {
	if n == 0 {
		return nil
	}
	if fault := s.deviceWriteLocked(s.bufAddr, n); fault != nil {
		return fault
	}

	if tail := s.bufPos - n; tail > 0 {
		data, fault := s.lib.m.Load(s.bufAddr+n, tail)
		if fault != nil {
			return fault
		}
		if fault := s.lib.m.Store(s.bufAddr, data); fault != nil {
			return fault
		}
		s.bufPos = tail
	} else {
		s.bufPos = 0
	}
	return nil
}

// deviceWriteLocked is the only place output leaves the stream: the
// standard output device goes through the PRINT_STRING ecall, other
// devices through their routed equivalents.
func (s *Stream) deviceWriteLocked(addr, n uint32) *vm.Fault {
	m := s.lib.m
	switch {
	case s.file != nil:
		data, fault := m.Load(addr, n)
		if fault != nil {
			return fault
		}
		s.file.writeAt(s.pos, data)
	case s.fd == FdStdout:
		if _, err := m.Ecall(vm.EcallPrintString, addr, n); err != nil {
			var fault *vm.Fault
			if errors.As(err, &fault) {
				return fault
			}
			s.errno = 1
			return nil
		}
	default:
		data, fault := m.Load(addr, n)
		if fault != nil {
			return fault
		}
		if _, err := m.WriteDevice(s.fd, data); err != nil {
			s.errno = 1
			return nil
		}
	}
	s.pos += n
	return nil
}

// getcLocked serves one byte from the read cache, refilling as needed.
func (s *Stream) getcLocked() (int32, *vm.Fault) {
	if s.closed || !s.flags.CanRead() {
		s.errno = 1
		return EOF, nil
	}
	if s.flags.Width() == WidthUnset {
		s.flags.setWidth(WidthNarrow)
	}
	// буфер занят несброшенной записью — сначала коммит
	if s.writing {
		if fault := s.flushAllLocked(); fault != nil {
			return EOF, fault
		}
		s.writing = false
		s.bufPos = 0
		s.bufLen = 0
	}
	if s.flags.AtEOF() {
		return EOF, nil
	}

	if s.bufPos >= s.bufLen {
		if fault := s.fillLocked(); fault != nil {
			return EOF, fault
		}
		if s.bufPos >= s.bufLen {
			s.flags.setEOF()
			return EOF, nil
		}
	}

	data, fault := s.lib.m.Load(s.bufAddr+s.bufPos, 1)
	if fault != nil {
		return EOF, fault
	}
	s.bufPos++
	return int32(data[0]), nil
}

// fillLocked loads the next chunk of input into the buffer.
func (s *Stream) fillLocked() *vm.Fault {
	if fault := s.ensureBuffer(); fault != nil {
		return fault
	}
	s.bufPos = 0
	s.bufLen = 0

	if s.file != nil {
		chunk := s.file.readAt(s.pos, s.bufCap)
		if len(chunk) == 0 {
			return nil
		}
		if fault := s.lib.m.Store(s.bufAddr, chunk); fault != nil {
			return fault
		}
		s.pos += uint32(len(chunk))
		s.bufLen = uint32(len(chunk))
		return nil
	}

	host := make([]byte, s.bufCap)
	n, err := s.lib.m.ReadDevice(s.fd, host)
	if n > 0 {
		if fault := s.lib.m.Store(s.bufAddr, host[:n]); fault != nil {
			return fault
		}
		s.pos += uint32(n)
		s.bufLen = uint32(n)
	}
	// конец ввода молчалив: индикатор конца файла ставит getc
	if err != nil && !errors.Is(err, io.EOF) {
		s.errno = 1
	}
	return nil
}

func (f *volFile) writeAt(pos uint32, data []byte) {
	end := uint64(pos) + uint64(len(data))
	if end > uint64(len(f.data)) {
		grown := make([]byte, end)
		copy(grown, f.data)
		f.data = grown
	}
	copy(f.data[pos:], data)
}

func (f *volFile) readAt(pos, max uint32) []byte {
	if uint64(pos) >= uint64(len(f.data)) {
		return nil
	}
	end := uint64(pos) + uint64(max)
	if end > uint64(len(f.data)) {
		end = uint64(len(f.data))
	}
	return f.data[pos:end]
}
