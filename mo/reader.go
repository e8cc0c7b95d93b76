package mo

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
)

// ErrInvalidFile is wrapped by errors about malformed MO data.
var ErrInvalidFile = errors.New("invalid MO file")

// Message is one original/translation pair of an MO file.
type Message struct {
	ID  string
	Str string
}

// File is a decoded MO catalog.
type File struct {
	ByteOrder binary.ByteOrder
	Revision  uint32
	// Messages are in the order of the originals table.
	Messages []Message
}

// Map returns the messages keyed by original string.
func (f *File) Map() map[string]string {
	m := make(map[string]string, len(f.Messages))
	for _, msg := range f.Messages {
		m[msg.ID] = msg.Str
	}
	return m
}

// Decode parses MO data in either byte order.
func Decode(data []byte) (*File, error) {
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("%w: file too short (%d bytes)", ErrInvalidFile, len(data))
	}

	var order binary.ByteOrder
	switch {
	case binary.LittleEndian.Uint32(data) == Magic:
		order = binary.LittleEndian
	case binary.BigEndian.Uint32(data) == Magic:
		order = binary.BigEndian
	default:
		return nil, fmt.Errorf("%w: bad magic 0x%08x", ErrInvalidFile, binary.LittleEndian.Uint32(data))
	}

	f := &File{
		ByteOrder: order,
		Revision:  order.Uint32(data[4:]),
	}
	if major := f.Revision >> 16; major > 1 {
		return nil, fmt.Errorf("%w: unsupported revision %d", ErrInvalidFile, f.Revision)
	}

	n := order.Uint32(data[8:])
	origOffset := order.Uint32(data[12:])
	transOffset := order.Uint32(data[16:])

	for _, table := range []uint32{origOffset, transOffset} {
		if uint64(table)+uint64(n)*tableEntrySize > uint64(len(data)) {
			return nil, fmt.Errorf("%w: %d entries do not fit into %d bytes", ErrInvalidFile, n, len(data))
		}
	}

	f.Messages = make([]Message, 0, n)
	for i := uint32(0); i < n; i++ {
		id, err := readString(data, order, origOffset, i)
		if err != nil {
			return nil, fmt.Errorf("original %d: %w", i, err)
		}
		str, err := readString(data, order, transOffset, i)
		if err != nil {
			return nil, fmt.Errorf("translation %d: %w", i, err)
		}
		f.Messages = append(f.Messages, Message{ID: id, Str: str})
	}
	return f, nil
}

// readString returns the i-th string described by the table at offset.
func readString(data []byte, order binary.ByteOrder, table, i uint32) (string, error) {
	pos := uint64(table) + uint64(i)*tableEntrySize
	if pos+tableEntrySize > uint64(len(data)) {
		return "", fmt.Errorf("%w: table entry out of range", ErrInvalidFile)
	}
	length := uint64(order.Uint32(data[pos:]))
	offset := uint64(order.Uint32(data[pos+4:]))
	if offset+length > uint64(len(data)) {
		return "", fmt.Errorf("%w: string out of range", ErrInvalidFile)
	}
	return string(data[offset : offset+length]), nil
}

// ReadFile decodes the MO file at path.
func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}
