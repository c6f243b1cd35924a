package project

import (
	"crypto/sha256"
)

// Digest - фиксированный 256 битный хеш (совместим с source.File.Hash)
type Digest [32]byte

// Combine строит составной хеш: H( content || extra1 || extra2 ... ).
// Кеш токенов подмешивает так версию схемы к хешу содержимого.
func Combine(content Digest, extra ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, d := range extra {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// OfBytes хеширует произвольные байты в Digest.
func OfBytes(data []byte) Digest {
	return sha256.Sum256(data)
}
