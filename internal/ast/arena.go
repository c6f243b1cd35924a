package ast

// Arena[T] — арена узлов одного типа. Узлы адресуются 1-based
// индексами, ноль зарезервирован под "нет узла". Арена только растёт;
// вся память уходит разом вместе с единицей компиляции, поэтому
// индивидуального освобождения нет.
type Arena[T any] struct {
	data []T
}

func NewArena[T any](capHint uint) *Arena[T] {
	return &Arena[T]{
		data: make([]T, 0, capHint),
	}
}

// Allocate кладёт значение и возвращает его индекс (1-based).
func (a *Arena[T]) Allocate(value T) uint32 {
	a.data = append(a.data, value)
	return uint32(len(a.data))
}

// Get возвращает указатель на узел, nil для нулевого индекса.
// Указатель живёт до следующего Allocate.
func (a *Arena[T]) Get(index uint32) *T {
	if index == 0 || index > uint32(len(a.data)) {
		return nil
	}
	return &a.data[index-1]
}

// READONLY
func (a *Arena[T]) Slice() []T {
	return a.data
}

func (a *Arena[T]) Len() uint32 {
	return uint32(len(a.data))
}
