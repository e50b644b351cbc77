package parser

import (
	"fmt"
	"io"
)

const (
	MFT_RECORD_HEADER_SIZE = 32
	MFT_RECORD_MAGIC       = "FILE"
)

type MftRecordHeader struct {
	// Absolute byte offset of the record in the image.
	Offset               int64
	Magic                string
	FirstAttributeOffset uint16
}

func (self *MftRecordHeader) IsValid() bool {
	return self.Magic == MFT_RECORD_MAGIC
}

func ReadMftRecordHeader(reader io.ReaderAt, mft_sector_address uint64) (*MftRecordHeader, error) {
	offset, err := sectorOffset(mft_sector_address, "$MFT")
	if err != nil {
		return nil, err
	}

	buf, err := readBuffer(reader, offset, MFT_RECORD_HEADER_SIZE, "$MFT record header")
	if err != nil {
		return nil, err
	}

	attr_offset, err := ParseUint16(buf, 0x14)
	if err != nil {
		return nil, err
	}
	STATS.Inc_MftRecord()

	result := &MftRecordHeader{
		Offset:               offset,
		Magic:                string(buf[0:4]),
		FirstAttributeOffset: attr_offset,
	}

	if !result.IsValid() {
		DebugPrint("$MFT record at %#x has magic %q\n", offset, result.Magic)
	}

	return result, nil
}

type NtfsReport struct {
	Boot             *NtfsBootSector
	MftSectorAddress uint64
	Record           *MftRecordHeader
	Attributes       []*MftAttributeHeader
}

func (self *NtfsReport) DebugString() string {
	result := fmt.Sprintf("%s\n$MFT at sector %d\n",
		self.Boot.DebugString(), self.MftSectorAddress)
	for _, attr := range self.Attributes {
		result += attr.DebugString() + "\n"
	}
	return result
}

// GetNtfsReport decodes the boot sector of the volume, locates the
// $MFT and walks the first attribute_count attributes of its first
// record.
func GetNtfsReport(reader io.ReaderAt, volume_start_sector uint64,
	attribute_count int) (*NtfsReport, error) {
	boot, err := ParseNtfsBootSector(reader, volume_start_sector)
	if err != nil {
		return nil, err
	}

	mft_sector, err := boot.MftSectorAddress()
	if err != nil {
		return nil, err
	}

	record, err := ReadMftRecordHeader(reader, mft_sector)
	if err != nil {
		return nil, err
	}

	attributes, err := WalkAttributes(reader, record.Offset,
		int64(record.FirstAttributeOffset), attribute_count)
	if err != nil {
		return nil, err
	}

	return &NtfsReport{
		Boot:             boot,
		MftSectorAddress: mft_sector,
		Record:           record,
		Attributes:       attributes,
	}, nil
}
