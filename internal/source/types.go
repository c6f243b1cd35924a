package source

type (
	// FileID identifies one source file within a FileSet.
	FileID uint32
	// FileFlags carries per-file metadata bits.
	FileFlags uint8
)

const (
	// FileVirtual marks content that never came from disk (tests, stdin).
	FileVirtual FileFlags = 1 << iota
	// FileHadBOM marks files whose UTF-8 BOM was stripped on load.
	FileHadBOM
	// FileNormalizedCRLF marks files whose \r\n pairs were rewritten to \n.
	FileNormalizedCRLF
)

// File is one loaded source file: raw content plus the derived line index
// and content hash.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // байтовые позиции каждого '\n'
	Hash    [32]byte // sha256 содержимого, ключ кеша токенов
	Flags   FileFlags
}

// LineCol is a 1-based human-readable position.
type LineCol struct {
	Line uint32
	Col  uint32
}
