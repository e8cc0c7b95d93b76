// Package mo reads and writes GNU gettext MO catalogs.
//
// The writer emits the layout msgfmt produces without a hash table:
//
//	offset 0   magic 0x950412de
//	offset 4   revision 0
//	offset 8   number of strings N
//	offset 12  offset of the originals table (28)
//	offset 16  offset of the translations table (28 + 8N)
//	offset 20  hash table size (0)
//	offset 24  hash table offset (end of string data)
//
// followed by the two tables of (length, offset) pairs, the NUL terminated
// originals and the NUL terminated translations. All words are little endian.
package mo

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
)

const (
	// Magic is the MO magic number as read in the file's own byte order.
	Magic uint32 = 0x950412de
	// HeaderSize is the size of the fixed header in bytes.
	HeaderSize = 28

	tableEntrySize = 8
)

// ErrWrite is wrapped by errors from creating or writing an MO file.
var ErrWrite = errors.New("cannot write MO file")

// SortedKeys returns the msgids of entries in byte-wise order.
func SortedKeys(entries map[string]string) []string {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Encode returns the MO representation of entries.
func Encode(entries map[string]string) []byte {
	keys := SortedKeys(entries)
	n := uint32(len(keys))

	var originals, translations []byte
	origTable := make([]byte, n*tableEntrySize)
	transTable := make([]byte, n*tableEntrySize)

	origStart := uint32(HeaderSize) + 2*n*tableEntrySize
	for i, key := range keys {
		binary.LittleEndian.PutUint32(origTable[i*tableEntrySize:], uint32(len(key)))
		binary.LittleEndian.PutUint32(origTable[i*tableEntrySize+4:], origStart+uint32(len(originals)))
		originals = append(originals, key...)
		originals = append(originals, 0)
	}

	transStart := origStart + uint32(len(originals))
	for i, key := range keys {
		value := entries[key]
		binary.LittleEndian.PutUint32(transTable[i*tableEntrySize:], uint32(len(value)))
		binary.LittleEndian.PutUint32(transTable[i*tableEntrySize+4:], transStart+uint32(len(translations)))
		translations = append(translations, value...)
		translations = append(translations, 0)
	}
	end := transStart + uint32(len(translations))

	out := make([]byte, HeaderSize, end)
	binary.LittleEndian.PutUint32(out[0:], Magic)
	binary.LittleEndian.PutUint32(out[4:], 0)
	binary.LittleEndian.PutUint32(out[8:], n)
	binary.LittleEndian.PutUint32(out[12:], HeaderSize)
	binary.LittleEndian.PutUint32(out[16:], HeaderSize+n*tableEntrySize)
	binary.LittleEndian.PutUint32(out[20:], 0)
	binary.LittleEndian.PutUint32(out[24:], end)

	out = append(out, origTable...)
	out = append(out, transTable...)
	out = append(out, originals...)
	out = append(out, translations...)
	return out
}

// Write encodes entries to w and returns the number of bytes written.
func Write(w io.Writer, entries map[string]string) (int64, error) {
	n, err := w.Write(Encode(entries))
	if err != nil {
		return int64(n), fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return int64(n), nil
}

// WriteFile encodes entries into the file at path. The content is written
// to a temporary file in the same directory first, so an existing file at
// path is only replaced by a complete one.
func WriteFile(path string, entries map[string]string) (int64, error) {
	return WriteFileWithCheck(path, entries, nil)
}

// WriteFileWithCheck is like WriteFile, but calls check with the name of the
// temporary file before it replaces path. If check fails, path is left
// untouched and the error of check is returned.
func WriteFileWithCheck(path string, entries map[string]string, check func(tmpPath string) error) (int64, error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrWrite, err)
	}
	tmpPath := f.Name()
	defer os.Remove(tmpPath)

	n, err := Write(f, entries)
	if err != nil {
		f.Close()
		return n, fmt.Errorf("%s: %w", path, err)
	}
	if err := f.Chmod(0644); err != nil {
		f.Close()
		return n, fmt.Errorf("%w: %s: %v", ErrWrite, path, err)
	}
	if err := f.Close(); err != nil {
		return n, fmt.Errorf("%w: %s: %v", ErrWrite, path, err)
	}

	if check != nil {
		if err := check(tmpPath); err != nil {
			return n, err
		}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return n, fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return n, nil
}
