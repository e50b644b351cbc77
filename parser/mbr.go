package parser

import (
	"errors"
	"fmt"
	"io"
)

const (
	SECTOR_SIZE = 512

	MBR_TABLE_OFFSET = 0x1BE
	MBR_TABLE_SIZE   = 64
	MBR_ENTRY_SIZE   = 16
	MBR_ENTRY_COUNT  = 4

	MBR_SIGNATURE_OFFSET = 0x1FE
	MBR_SIGNATURE        = 0xAA55
)

// A single primary partition slot of the MBR.
type PartitionEntry struct {
	Slot           int
	Status         uint8
	Type           Enumeration
	StartSectorLBA uint32
	SizeSectors    uint32
}

func (self *PartitionEntry) TypeCode() PartitionType {
	return PartitionType(self.Type.Value)
}

func (self *PartitionEntry) SizeKiB() uint64 {
	return uint64(self.SizeSectors) * SECTOR_SIZE / 1024
}

func (self *PartitionEntry) IsBlank() bool {
	return self.TypeCode() == PARTITION_EMPTY
}

func (self *PartitionEntry) DebugString() string {
	return fmt.Sprintf("Partition %d: %s start %d size %d KiB",
		self.Slot, self.Type.DebugString(), self.StartSectorLBA, self.SizeKiB())
}

type PartitionTable struct {
	Entries    [MBR_ENTRY_COUNT]PartitionEntry
	BlankCount int

	// Start sectors of the first FAT-16 (0x06) and NTFS (0x07)
	// entries. Nil when the disk has no such partition.
	FatStartSector  *uint64 `json:",omitempty"`
	NtfsStartSector *uint64 `json:",omitempty"`

	HasValidSignature bool
}

func (self *PartitionTable) DebugString() string {
	result := fmt.Sprintf("%d active, %d blank, signature %v\n",
		self.ActiveCount(), self.BlankCount, self.HasValidSignature)
	for i := range self.Entries {
		result += self.Entries[i].DebugString() + "\n"
	}
	return result
}

func (self *PartitionTable) ActiveCount() int {
	return MBR_ENTRY_COUNT - self.BlankCount
}

// FirstOfType returns the start sector of the first entry with the
// given type.
func (self *PartitionTable) FirstOfType(code PartitionType) (uint64, bool) {
	for i := range self.Entries {
		if self.Entries[i].TypeCode() == code {
			return uint64(self.Entries[i].StartSectorLBA), true
		}
	}
	return 0, false
}

func (self *PartitionTable) FatVolumeStart() (uint64, bool) {
	if self.FatStartSector == nil {
		return 0, false
	}
	return *self.FatStartSector, true
}

func (self *PartitionTable) NtfsVolumeStart() (uint64, bool) {
	if self.NtfsStartSector == nil {
		return 0, false
	}
	return *self.NtfsStartSector, true
}

func ParsePartitionTable(reader io.ReaderAt) (*PartitionTable, error) {
	buf, err := readBuffer(reader, MBR_TABLE_OFFSET, MBR_TABLE_SIZE,
		"partition table")
	if err != nil {
		return nil, err
	}

	result := &PartitionTable{}
	for i := 0; i < MBR_ENTRY_COUNT; i++ {
		entry, err := parsePartitionEntry(buf, i)
		if err != nil {
			return nil, err
		}
		STATS.Inc_PartitionEntry()

		result.Entries[i] = entry
		if entry.IsBlank() {
			result.BlankCount++
		}
	}

	if start, ok := result.FirstOfType(PARTITION_FAT16); ok {
		result.FatStartSector = &start
	}

	if start, ok := result.FirstOfType(PARTITION_NTFS); ok {
		result.NtfsStartSector = &start
	}

	// The boot signature is informational: a table without one is
	// still decoded.
	sig, err := readBuffer(reader, MBR_SIGNATURE_OFFSET, 2, "MBR signature")
	switch {
	case err == nil:
		value, _ := ParseUint16(sig, 0)
		result.HasValidSignature = value == MBR_SIGNATURE
	case errors.Is(err, ImageTooShortError):
	default:
		return nil, err
	}

	if !result.HasValidSignature {
		DebugPrint("MBR signature missing at %#x\n", MBR_SIGNATURE_OFFSET)
	}

	return result, nil
}

func parsePartitionEntry(table []byte, slot int) (PartitionEntry, error) {
	base := slot * MBR_ENTRY_SIZE
	d := &fieldDecoder{buf: table}

	entry := PartitionEntry{
		Slot:           slot,
		Status:         d.u8(base + 0x00),
		Type:           PartitionType(d.u8(base + 0x04)).Enumeration(),
		StartSectorLBA: d.u32(base + 0x08),
		SizeSectors:    d.u32(base + 0x0C),
	}
	return entry, d.err
}
