package parser

import (
	"errors"
	"fmt"
	"io"
)

const (
	DefaultAttributeCount = 2

	ATTRIBUTE_HEADER_SIZE          = 8
	ATTRIBUTE_EXTENDED_HEADER_SIZE = 16
)

// The common header of an $MFT attribute.
type MftAttributeHeader struct {
	// Offset of the header from the start of the record.
	RecordOffset int64
	Type         Enumeration
	Length       uint32

	NonResident bool
	NameLength  uint8
	AttributeId uint16
}

func (self *MftAttributeHeader) TypeCode() AttributeType {
	return AttributeType(self.Type.Value)
}

// IsEnd is true for the end of attributes marker. Nothing after it
// belongs to the record.
func (self *MftAttributeHeader) IsEnd() bool {
	return self.TypeCode() == ATTR_TYPE_END
}

func (self *MftAttributeHeader) DebugString() string {
	if self.IsEnd() {
		return fmt.Sprintf("Attribute at %#x: end marker", self.RecordOffset)
	}
	return fmt.Sprintf("Attribute at %#x: %s length %d non-resident %v id %d",
		self.RecordOffset, self.Type.DebugString(), self.Length, self.NonResident,
		self.AttributeId)
}

// WalkAttributes reads up to count consecutive attribute headers of
// the record at mft_record_offset, the first one at
// first_attribute_offset and each following one at the previous
// offset plus the previous length. The walk stops early at the end
// marker, which is returned as the last header.
func WalkAttributes(reader io.ReaderAt,
	mft_record_offset, first_attribute_offset int64,
	count int) ([]*MftAttributeHeader, error) {
	result := []*MftAttributeHeader{}

	current := first_attribute_offset
	for i := 0; i < count; i++ {
		header, err := readAttributeHeader(reader, mft_record_offset, current)
		if err != nil {
			return nil, err
		}
		STATS.Inc_MftAttribute()

		result = append(result, header)
		if header.IsEnd() {
			break
		}

		if header.Length == 0 {
			return result, fmt.Errorf(
				"%w: attribute %s at %#x has zero length",
				MalformedAttributeError, header.Type.Name, current)
		}

		current += int64(header.Length)
	}

	return result, nil
}

func readAttributeHeader(reader io.ReaderAt,
	mft_record_offset, attribute_offset int64) (*MftAttributeHeader, error) {
	offset := mft_record_offset + attribute_offset
	buf, err := readBuffer(reader, offset, ATTRIBUTE_HEADER_SIZE,
		"$MFT attribute header")
	if err != nil {
		return nil, err
	}

	d := &fieldDecoder{buf: buf}
	result := &MftAttributeHeader{
		RecordOffset: attribute_offset,
		Type:         AttributeType(d.u32(0x00)).Enumeration(),
		Length:       d.u32(0x04),
	}
	if d.err != nil {
		return nil, d.err
	}

	if result.IsEnd() {
		return result, nil
	}

	// The rest of the header is informational and may legitimately
	// be cut off at the end of a truncated image.
	extended, err := readBuffer(reader, offset, ATTRIBUTE_EXTENDED_HEADER_SIZE,
		"$MFT attribute header")
	switch {
	case err == nil:
		d = &fieldDecoder{buf: extended}
		result.NonResident = d.u8(0x08) != 0
		result.NameLength = d.u8(0x09)
		result.AttributeId = d.u16(0x0E)
	case errors.Is(err, ImageTooShortError):
	default:
		return nil, err
	}

	return result, nil
}
