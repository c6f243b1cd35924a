package diag

import "sort"

// Bag — накопитель диагностик с жёсткой верхней границей. Граница
// защищает от патологического входа: один битый файл не должен
// раздувать память миллионом однотипных ошибок.
type Bag struct {
	items []Diagnostic
	max   uint16
}

// NewBag создаёт накопитель максимум на max диагностик.
func NewBag(max uint16) *Bag {
	return &Bag{
		items: make([]Diagnostic, 0, 16),
		max:   max,
	}
}

// Add добавляет диагностику. Возвращает false, если граница достигнута
// и диагностика отброшена.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= int(b.max) {
		return false
	}
	b.items = append(b.items, d)
	return true
}

// Append добавляет диагностику и возвращает ссылку на неё.
// При переполнении возвращает NoID.
func (b *Bag) Append(d Diagnostic) ID {
	if !b.Add(d) {
		return NoID
	}
	return ID(len(b.items)) // 1-based
}

// Get возвращает диагностику по ссылке, nil для NoID и чужих ID.
// Указатель живёт до следующего Add/Sort/Dedup.
func (b *Bag) Get(id ID) *Diagnostic {
	if id == NoID || int(id) > len(b.items) {
		return nil
	}
	return &b.items[id-1]
}

// Cap - максимальное количество диагностик
func (b *Bag) Cap() uint16 { return b.max }

// Len - текущее количество диагностик
func (b *Bag) Len() int { return len(b.items) }

// HasErrors - есть ли хоть одна ошибка
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity == SevError {
			return true
		}
	}
	return false
}

// HasWarnings - есть ли хоть одно предупреждение
func (b *Bag) HasWarnings() bool {
	for i := range b.items {
		if b.items[i].Severity == SevWarning {
			return true
		}
	}
	return false
}

// Items возвращает накопленные диагностики в порядке добавления.
// Слайс не копируется, менять его нельзя.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Merge переносит диагностики из other с учётом границы.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	for _, d := range other.items {
		if !b.Add(d) {
			return
		}
	}
}

// Sort упорядочивает диагностики: по файлу, по позиции, затем ошибки
// раньше предупреждений. После сортировки ранее выданные ID
// недействительны, поэтому сортируют только перед рендерингом.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := &b.items[i], &b.items[j]
		if di.Primary.File != dj.Primary.File {
			return di.Primary.File < dj.Primary.File
		}
		if di.Primary.Start != dj.Primary.Start {
			return di.Primary.Start < dj.Primary.Start
		}
		if di.Primary.End != dj.Primary.End {
			return di.Primary.End < dj.Primary.End
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		return di.Code < dj.Code
	})
}

// Dedup убирает точные повторы (код, серьёзность, спан, текст),
// сохраняя порядок. Как и Sort, инвалидирует ранее выданные ID.
func (b *Bag) Dedup() {
	type key struct {
		code Code
		sev  Severity
		file uint32
		s, e uint32
		msg  string
	}
	seen := make(map[key]struct{}, len(b.items))
	out := b.items[:0]
	for _, d := range b.items {
		k := key{
			code: d.Code,
			sev:  d.Severity,
			file: uint32(d.Primary.File),
			s:    d.Primary.Start,
			e:    d.Primary.End,
			msg:  d.Message,
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, d)
	}
	b.items = out
}
