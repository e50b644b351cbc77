package parser

import "fmt"

const UNRECOGNISED = "NOT-RECOGNISED"

// An Enumeration is a decoded code together with its symbolic name.
type Enumeration struct {
	Value uint64
	Name  string
}

func (self Enumeration) DebugString() string {
	return fmt.Sprintf("%#x (%s)", self.Value, self.Name)
}

// MBR partition type byte.
type PartitionType uint8

const (
	PARTITION_EMPTY     PartitionType = 0x00
	PARTITION_FAT12     PartitionType = 0x01
	PARTITION_FAT16_32M PartitionType = 0x04
	PARTITION_EXTENDED  PartitionType = 0x05
	PARTITION_FAT16     PartitionType = 0x06
	PARTITION_NTFS      PartitionType = 0x07
	PARTITION_FAT32_CHS PartitionType = 0x0B
	PARTITION_FAT32_LBA PartitionType = 0x0C
	PARTITION_FAT16_LBA PartitionType = 0x0E
)

func (self PartitionType) Name() string {
	switch self {
	case PARTITION_EMPTY:
		return "UNKNOWN/EMPTY"
	case PARTITION_FAT12:
		return "12-BIT FAT"
	case PARTITION_FAT16_32M:
		return "16-BIT FAT"
	case PARTITION_EXTENDED:
		return "EXT. MS-DOS"
	case PARTITION_FAT16:
		return "FAT-16"
	case PARTITION_NTFS:
		return "NTFS"
	case PARTITION_FAT32_CHS:
		return "FAT-32(CHS)"
	case PARTITION_FAT32_LBA:
		return "FAT-32(LBA)"
	case PARTITION_FAT16_LBA:
		return "FAT-16(LBA)"
	}
	return UNRECOGNISED
}

func (self PartitionType) Enumeration() Enumeration {
	return Enumeration{Value: uint64(self), Name: self.Name()}
}

func PartitionTypeName(code uint8) string {
	return PartitionType(code).Name()
}

// $MFT attribute type code.
type AttributeType uint32

const (
	ATTR_TYPE_STANDARD_INFORMATION AttributeType = 0x10
	ATTR_TYPE_ATTRIBUTE_LIST       AttributeType = 0x20
	ATTR_TYPE_FILE_NAME            AttributeType = 0x30
	ATTR_TYPE_OBJECT_ID            AttributeType = 0x40
	ATTR_TYPE_VOLUME_NAME          AttributeType = 0x60
	ATTR_TYPE_VOLUME_INFORMATION   AttributeType = 0x70
	ATTR_TYPE_DATA                 AttributeType = 0x80
	ATTR_TYPE_INDEX_ROOT           AttributeType = 0x90
	ATTR_TYPE_INDEX_ALLOCATION     AttributeType = 0xA0
	ATTR_TYPE_BITMAP               AttributeType = 0xB0
	ATTR_TYPE_REPARSE_POINT        AttributeType = 0xC0

	// Marks the end of the attribute list in a record.
	ATTR_TYPE_END AttributeType = 0xFFFFFFFF
)

func (self AttributeType) Name() string {
	switch self {
	case ATTR_TYPE_STANDARD_INFORMATION:
		return "$STANDARD_INFORMATION"
	case ATTR_TYPE_ATTRIBUTE_LIST:
		return "$ATTRIBUTE_LIST"
	case ATTR_TYPE_FILE_NAME:
		return "$FILE_NAME"
	case ATTR_TYPE_OBJECT_ID:
		return "$OBJECT_ID"
	case ATTR_TYPE_VOLUME_NAME:
		return "$VOLUME_NAME"
	case ATTR_TYPE_VOLUME_INFORMATION:
		return "$VOLUME_INFORMATION"
	case ATTR_TYPE_DATA:
		return "$DATA"
	case ATTR_TYPE_INDEX_ROOT:
		return "$INDEX_ROOT"
	case ATTR_TYPE_INDEX_ALLOCATION:
		return "$INDEX_ALLOCATION"
	case ATTR_TYPE_BITMAP:
		return "$BITMAP"
	case ATTR_TYPE_REPARSE_POINT:
		return "$REPARSE_POINT"
	}
	return UNRECOGNISED
}

func (self AttributeType) Enumeration() Enumeration {
	return Enumeration{Value: uint64(self), Name: self.Name()}
}

func MftAttributeName(code uint32) string {
	return AttributeType(code).Name()
}
