package parser

//go:generate mockgen -destination=reader_mock_test.go -package parser io ReaderAt

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Uint decodes an unsigned little endian integer of width 1, 2, 4 or
// 8 bytes at offset. Reads which do not fit inside buf fail with
// OutOfRangeError instead of returning partial values.
func Uint(buf []byte, offset int, width int) (uint64, error) {
	switch width {
	case 1, 2, 4, 8:
	default:
		return 0, fmt.Errorf("%w: unsupported width %d", OutOfRangeError, width)
	}

	if offset < 0 || offset+width > len(buf) {
		return 0, fmt.Errorf("%w: %d bytes at %#x in buffer of %d",
			OutOfRangeError, width, offset, len(buf))
	}

	b := buf[offset : offset+width]
	switch width {
	case 1:
		return uint64(b[0]), nil
	case 2:
		return uint64(binary.LittleEndian.Uint16(b)), nil
	case 4:
		return uint64(binary.LittleEndian.Uint32(b)), nil
	default:
		return binary.LittleEndian.Uint64(b), nil
	}
}

func ParseUint8(buf []byte, offset int) (uint8, error) {
	v, err := Uint(buf, offset, 1)
	return uint8(v), err
}

func ParseUint16(buf []byte, offset int) (uint16, error) {
	v, err := Uint(buf, offset, 2)
	return uint16(v), err
}

func ParseUint32(buf []byte, offset int) (uint32, error) {
	v, err := Uint(buf, offset, 4)
	return uint32(v), err
}

func ParseUint64(buf []byte, offset int) (uint64, error) {
	return Uint(buf, offset, 8)
}

// SwapBytes16 reverses the byte order of a 16 bit value. The decoders
// never need it since they read every field at its on-disk width.
func SwapBytes16(v uint16) uint16 {
	return v>>8 | v<<8
}

// fieldDecoder decodes a run of fields from one buffer and keeps the
// first error, so a struct can be filled without checking each field.
type fieldDecoder struct {
	buf []byte
	err error
}

func (self *fieldDecoder) u8(offset int) uint8 {
	if self.err != nil {
		return 0
	}
	v, err := ParseUint8(self.buf, offset)
	self.err = err
	return v
}

func (self *fieldDecoder) u16(offset int) uint16 {
	if self.err != nil {
		return 0
	}
	v, err := ParseUint16(self.buf, offset)
	self.err = err
	return v
}

func (self *fieldDecoder) u32(offset int) uint32 {
	if self.err != nil {
		return 0
	}
	v, err := ParseUint32(self.buf, offset)
	self.err = err
	return v
}

func (self *fieldDecoder) u64(offset int) uint64 {
	if self.err != nil {
		return 0
	}
	v, err := ParseUint64(self.buf, offset)
	self.err = err
	return v
}

// readBuffer reads exactly length bytes at offset. Anything short of a
// full buffer is ImageTooShortError, other failures are
// ImageUnreadableError.
func readBuffer(reader io.ReaderAt, offset int64, length int, what string) ([]byte, error) {
	if offset < 0 {
		return nil, tooShort(what, offset, length, 0)
	}

	STATS.Inc_Reads()

	buf := make([]byte, length)
	n, err := reader.ReadAt(buf, offset)
	if n == length {
		// io.ReaderAt may return EOF together with a full buffer.
		return buf, nil
	}

	if err == nil || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, tooShort(what, offset, length, n)
	}

	return nil, fmt.Errorf("%w: reading %s at %#x: %v",
		ImageUnreadableError, what, offset, err)
}
