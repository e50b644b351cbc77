package parser

import (
	"fmt"
	"io"
	"math/bits"
	"strings"
)

const (
	NTFS_BOOT_SIZE = 64
	NTFS_OEM_ID    = "NTFS    "
)

type NtfsBootSector struct {
	VolumeStartSector       uint64
	OemId                   string
	BytesPerSector          uint16
	SectorsPerCluster       uint8
	MftLogicalClusterNumber uint64
}

func (self *NtfsBootSector) ClusterSize() int64 {
	return int64(self.SectorsPerCluster) * int64(self.BytesPerSector)
}

// MftSectorAddress is the absolute sector of the first $MFT record.
// Clusters are counted in 512 byte sectors from the volume start.
func (self *NtfsBootSector) MftSectorAddress() (uint64, error) {
	hi, lcn_sectors := bits.Mul64(self.MftLogicalClusterNumber,
		uint64(self.SectorsPerCluster))
	sector, carry := bits.Add64(self.VolumeStartSector, lcn_sectors, 0)
	if hi != 0 || carry != 0 {
		return 0, fmt.Errorf("%w: $MFT cluster %d overflows the sector address",
			InvalidBootSectorError, self.MftLogicalClusterNumber)
	}
	return sector, nil
}

func (self *NtfsBootSector) IsValid() bool {
	return self.OemId == NTFS_OEM_ID
}

func (self *NtfsBootSector) DebugString() string {
	return fmt.Sprintf("NTFS volume at %d (%q): %d bytes/sector, %d sectors/cluster, $MFT LCN %d",
		self.VolumeStartSector, strings.TrimSpace(self.OemId),
		self.BytesPerSector, self.SectorsPerCluster,
		self.MftLogicalClusterNumber)
}

func ParseNtfsBootSector(reader io.ReaderAt, volume_start_sector uint64) (*NtfsBootSector, error) {
	offset, err := sectorOffset(volume_start_sector, "NTFS boot")
	if err != nil {
		return nil, err
	}

	buf, err := readBuffer(reader, offset, NTFS_BOOT_SIZE, "NTFS boot sector")
	if err != nil {
		return nil, err
	}

	d := &fieldDecoder{buf: buf}
	result := &NtfsBootSector{
		VolumeStartSector:       volume_start_sector,
		OemId:                   string(buf[0x03:0x0B]),
		BytesPerSector:          d.u16(0x0B),
		SectorsPerCluster:       d.u8(0x0D),
		MftLogicalClusterNumber: d.u64(0x30),
	}
	if d.err != nil {
		return nil, d.err
	}
	STATS.Inc_NtfsBootSector()

	if !result.IsValid() {
		DebugPrint("NTFS boot sector at %d has OEM id %q\n",
			volume_start_sector, result.OemId)
	}

	return result, nil
}
