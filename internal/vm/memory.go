package vm

import (
	"fmt"

	"fortio.org/safecast"
)

const (
	// nullPage — нижние 4КиБ никогда не отображаются: любое обращение
	// туда диагностируется как разыменование null.
	nullPage = 0x1000
	// heapBase — первый адрес, который может вернуть Alloc.
	heapBase = 0x1000

	regionAlign = 8

	// DefaultMemoryLimit bounds a program's live allocations.
	DefaultMemoryLimit = 16 << 20
)

// region — одна аллокация. После Free байты освобождаются, но запись
// остаётся навсегда: адреса внутри одного запуска не переиспользуются,
// иначе use-after-free был бы неотличим от обращения к новой аллокации.
type region struct {
	base    uint32
	size    uint32
	data    []byte
	alive   bool
	allocID uint64
}

func (r *region) end() uint32 {
	return r.base + r.size
}

// Memory is the program's flat 32-bit address space. Allocations are
// carved monotonically from heapBase, so regions stay sorted by base
// and lookup is a binary search.
type Memory struct {
	regions     []region
	next        uint32
	limit       uint32
	used        uint32
	nextAllocID uint64

	allocCount uint64
	freeCount  uint64
}

func newMemory(limit uint32) *Memory {
	if limit == 0 {
		limit = DefaultMemoryLimit
	}
	return &Memory{
		next:        heapBase,
		limit:       limit,
		nextAllocID: 1,
	}
}

func faultf(kind string, format string, args ...any) *Fault {
	return &Fault{
		Code:    codeForKind(kind),
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// Alloc returns a fresh zero-initialized region of at least size bytes.
// Нулевой размер тоже даёт свежий адрес — так указатели разных
// аллокаций никогда не совпадают.
func (m *Memory) Alloc(size uint32) (uint32, *Fault) {
	aligned := (uint64(size) + regionAlign - 1) &^ (regionAlign - 1)
	if aligned == 0 {
		aligned = regionAlign
	}
	if uint64(m.used)+aligned > uint64(m.limit) {
		return 0, faultf(KindOutOfMemory,
			"allocation of %d bytes exceeds the %d-byte memory budget", size, m.limit)
	}
	// строго меньше 2^32: конец последней аллокации обязан быть
	// представим в uint32, иначе end() заворачивается
	if uint64(m.next)+aligned >= 1<<32 {
		return 0, faultf(KindOutOfMemory,
			"allocation of %d bytes exhausts the address space", size)
	}

	base := m.next
	m.regions = append(m.regions, region{
		base:    base,
		size:    size,
		data:    make([]byte, size),
		alive:   true,
		allocID: m.nextAllocID,
	})
	m.next += uint32(aligned)
	m.used += uint32(aligned)
	m.nextAllocID++
	m.allocCount++
	return base, nil
}

// Free releases the allocation starting exactly at addr. The region
// record survives so later accesses classify as use-after-free.
func (m *Memory) Free(addr uint32) *Fault {
	if addr < nullPage {
		return faultf(KindNullDeref, "free of null address 0x%X", addr)
	}
	r := m.find(addr)
	if r == nil || r.base != addr {
		return faultf(KindInvalidPointer, "free of address 0x%X which is not an allocation base", addr)
	}
	if !r.alive {
		return faultf(KindDoubleFree, "double free of address 0x%X (alloc=%d)", addr, r.allocID)
	}

	r.alive = false
	r.data = nil
	aligned := (uint64(r.size) + regionAlign - 1) &^ (regionAlign - 1)
	if aligned == 0 {
		aligned = regionAlign
	}
	m.used -= uint32(aligned)
	m.freeCount++
	return nil
}

// IsSafe reports whether [addr, addr+length) is fully contained in
// memory the program currently owns. Это единственный примитив, на
// котором построена проверка разыменований: сначала IsSafe, потом
// доступ, и никогда наоборот.
func (m *Memory) IsSafe(addr, length uint32) bool {
	_, fault := m.locate(addr, length)
	return fault == nil
}

// locate classifies an access: nil fault means the range is owned.
func (m *Memory) locate(addr, length uint32) (*region, *Fault) {
	end := uint64(addr) + uint64(length)
	if end > 1<<32 {
		return nil, faultf(KindOutOfBounds,
			"range 0x%X+%d wraps the address space", addr, length)
	}
	if addr < nullPage {
		return nil, faultf(KindNullDeref, "dereference of null address 0x%X", addr)
	}

	r := m.find(addr)
	if r == nil || uint64(addr) > uint64(r.end()) {
		return nil, faultf(KindInvalidPointer,
			"address 0x%X is not inside any allocation", addr)
	}
	if !r.alive {
		return nil, faultf(KindUseAfterFree,
			"address 0x%X is inside a freed allocation (alloc=%d)", addr, r.allocID)
	}
	if end > uint64(r.end()) {
		return nil, faultf(KindOutOfBounds,
			"range 0x%X+%d runs %d bytes past the end of a %d-byte allocation",
			addr, length, end-uint64(r.end()), r.size)
	}
	if addr == r.end() && length > 0 {
		return nil, faultf(KindOutOfBounds,
			"range 0x%X+%d begins one past the end of a %d-byte allocation",
			addr, length, r.size)
	}
	return r, nil
}

// find returns the region with the greatest base not above addr.
func (m *Memory) find(addr uint32) *region {
	lo, hi := 0, len(m.regions)
	for lo < hi {
		mid := (lo + hi) / 2
		if m.regions[mid].base <= addr {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo == 0 {
		return nil
	}
	return &m.regions[lo-1]
}

// VarSize returns how many owned bytes remain from addr to the end of
// its allocation. Для базового адреса это полный размер аллокации.
func (m *Memory) VarSize(addr uint32) (uint32, *Fault) {
	r, fault := m.locate(addr, 0)
	if fault != nil {
		return 0, fault
	}
	return r.end() - addr, nil
}

// Load copies length bytes out after the safety check.
func (m *Memory) Load(addr, length uint32) ([]byte, *Fault) {
	r, fault := m.locate(addr, length)
	if fault != nil {
		return nil, fault
	}
	if length == 0 {
		return nil, nil
	}
	off := addr - r.base
	out := make([]byte, length)
	copy(out, r.data[off:off+length])
	return out, nil
}

// Store copies p into memory at addr after the safety check.
func (m *Memory) Store(addr uint32, p []byte) *Fault {
	length, err := safecast.Conv[uint32](len(p))
	if err != nil {
		panic(fmt.Errorf("store length overflow: %w", err))
	}
	r, fault := m.locate(addr, length)
	if fault != nil {
		return fault
	}
	if length == 0 {
		return nil
	}
	off := addr - r.base
	copy(r.data[off:off+length], p)
	return nil
}

// LoadCString reads bytes from addr up to a NUL terminator, which must
// lie within the same allocation.
func (m *Memory) LoadCString(addr uint32) ([]byte, *Fault) {
	r, fault := m.locate(addr, 1)
	if fault != nil {
		return nil, fault
	}
	off := addr - r.base
	for i, b := range r.data[off:] {
		if b == 0 {
			out := make([]byte, i)
			copy(out, r.data[off:off+uint32(i)])
			return out, nil
		}
	}
	return nil, faultf(KindOutOfBounds,
		"string at 0x%X is not terminated within its %d-byte allocation", addr, r.size)
}

// Used returns the program's live allocation total in bytes.
func (m *Memory) Used() uint32 {
	return m.used
}

// Limit returns the memory budget in bytes.
func (m *Memory) Limit() uint32 {
	return m.limit
}

// Stats returns lifetime allocation and free counts.
func (m *Memory) Stats() (allocs, frees uint64) {
	return m.allocCount, m.freeCount
}
