package stdio

// StreamFlags is the stream's compact state word.
//
// Раскладка битов снизу вверх:
//
//	биты 0,1 — ширина символа (не задана, узкая, широкая)
//	биты 2,3 — дисциплина буферизации (без буфера, построчно, полностью)
//	биты 4,5,6 — направление (чтение, запись, обновление)
//	бит 7 — двоичный/текстовый режим
//	бит 8 — индикатор конца файла
type StreamFlags uint16

const (
	widthShift             = 0
	widthMask  StreamFlags = 0b11 << widthShift

	// WidthUnset means no I/O has fixed the character width yet.
	WidthUnset  StreamFlags = 0 << widthShift
	WidthNarrow StreamFlags = 1 << widthShift
	WidthWide   StreamFlags = 2 << widthShift

	bufShift             = 2
	bufMask  StreamFlags = 0b11 << bufShift

	// BufNone flushes on every write.
	BufNone StreamFlags = 0 << bufShift
	// BufLine flushes on line separators.
	BufLine StreamFlags = 1 << bufShift
	// BufFull flushes only when the buffer fills or on request.
	BufFull StreamFlags = 2 << bufShift

	DirRead   StreamFlags = 1 << 4
	DirWrite  StreamFlags = 1 << 5
	DirUpdate StreamFlags = 1 << 6

	FlagBinary StreamFlags = 1 << 7
	FlagEOF    StreamFlags = 1 << 8
)

// Width returns the character-width field.
func (f StreamFlags) Width() StreamFlags {
	return f & widthMask
}

// Buffering returns the buffering-discipline field.
func (f StreamFlags) Buffering() StreamFlags {
	return f & bufMask
}

// CanRead reports whether the stream direction permits input.
func (f StreamFlags) CanRead() bool {
	return f&(DirRead|DirUpdate) != 0
}

// CanWrite reports whether the stream direction permits output.
func (f StreamFlags) CanWrite() bool {
	return f&(DirWrite|DirUpdate) != 0
}

// AtEOF reports the end-of-file indicator.
func (f StreamFlags) AtEOF() bool {
	return f&FlagEOF != 0
}

func (f *StreamFlags) setBuffering(mode StreamFlags) {
	*f = (*f &^ bufMask) | (mode & bufMask)
}

func (f *StreamFlags) setWidth(w StreamFlags) {
	*f = (*f &^ widthMask) | (w & widthMask)
}

func (f *StreamFlags) setEOF() {
	*f |= FlagEOF
}

func (f *StreamFlags) clearEOF() {
	*f &^= FlagEOF
}
