package stdio

// Volume is the in-memory file store behind fopen: the sandbox exposes
// no OS filesystem, so named files live entirely here. Устройства
// (stdin/stdout/stderr) в том никогда не участвуют.
type Volume struct {
	files map[string]*volFile
}

type volFile struct {
	data []byte
}

// NewVolume creates an empty file store.
func NewVolume() *Volume {
	return &Volume{files: make(map[string]*volFile)}
}

// WriteFile creates or replaces a named file.
func (v *Volume) WriteFile(name string, data []byte) {
	v.files[name] = &volFile{data: append([]byte(nil), data...)}
}

// ReadFile returns a copy of a named file's content.
func (v *Volume) ReadFile(name string) ([]byte, bool) {
	f, ok := v.files[name]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), f.data...), true
}

// Remove deletes a named file, reporting whether it existed.
func (v *Volume) Remove(name string) bool {
	if _, ok := v.files[name]; !ok {
		return false
	}
	delete(v.files, name)
	return true
}

func (v *Volume) lookup(name string) (*volFile, bool) {
	f, ok := v.files[name]
	return f, ok
}

func (v *Volume) create(name string) *volFile {
	f := &volFile{}
	v.files[name] = f
	return f
}
