package parser

import (
	"fmt"
	"io"
	"math"
)

const (
	FAT_BPB_SIZE       = 64
	FAT_DIR_ENTRY_SIZE = 32
)

// The BIOS Parameter Block fields needed to lay out a FAT-12/16
// volume.
type FatBootSector struct {
	BytesPerSector      uint16
	SectorsPerCluster   uint8
	ReservedSectorCount uint16
	FatCopyCount        uint8
	MaxRootDirEntries   uint16
	SectorsPerFat       uint16
}

// Sector addresses are absolute (relative to the start of the image).
type FatVolumeLayout struct {
	VolumeStartSector   uint64
	Boot                FatBootSector
	FatAreaSizeSectors  uint64
	RootDirSizeSectors  uint64
	DataAreaStartSector uint64
	Cluster2Sector      uint64
}

func (self *FatVolumeLayout) SectorsPerCluster() uint64 {
	return uint64(self.Boot.SectorsPerCluster)
}

func (self *FatVolumeLayout) DebugString() string {
	return fmt.Sprintf(
		"FAT volume at %d: %d sectors/cluster, FAT area %d, root dir %d, data area %d, cluster #2 %d",
		self.VolumeStartSector, self.Boot.SectorsPerCluster,
		self.FatAreaSizeSectors, self.RootDirSizeSectors,
		self.DataAreaStartSector, self.Cluster2Sector)
}

type FatReport struct {
	Layout *FatVolumeLayout

	// False when the root directory holds no deleted entry.
	DeletedFileFound bool
	DeletedFile      *DeletedFileRecord `json:",omitempty"`
}

func (self *FatReport) DebugString() string {
	result := self.Layout.DebugString() + "\n"
	if self.DeletedFile == nil {
		return result + "No deleted file\n"
	}
	return result + self.DeletedFile.DebugString() + "\n"
}

// sectorOffset converts a 512 byte sector address to a byte offset.
func sectorOffset(sector uint64, what string) (int64, error) {
	if sector > math.MaxInt64/SECTOR_SIZE {
		return 0, fmt.Errorf("%w: %s sector %d is beyond any image",
			ImageTooShortError, what, sector)
	}
	return int64(sector) * SECTOR_SIZE, nil
}

func ParseFatBootSector(reader io.ReaderAt, volume_start_sector uint64) (*FatBootSector, error) {
	offset, err := sectorOffset(volume_start_sector, "FAT boot")
	if err != nil {
		return nil, err
	}

	buf, err := readBuffer(reader, offset, FAT_BPB_SIZE, "FAT boot sector")
	if err != nil {
		return nil, err
	}

	d := &fieldDecoder{buf: buf}
	result := &FatBootSector{
		BytesPerSector:      d.u16(0x0B),
		SectorsPerCluster:   d.u8(0x0D),
		ReservedSectorCount: d.u16(0x0E),
		FatCopyCount:        d.u8(0x10),
		MaxRootDirEntries:   d.u16(0x11),
		SectorsPerFat:       d.u16(0x16),
	}
	if d.err != nil {
		return nil, d.err
	}
	STATS.Inc_FatBootSector()

	if result.BytesPerSector == 0 {
		return nil, fmt.Errorf("%w: FAT bytes per sector is 0", InvalidBootSectorError)
	}

	if result.SectorsPerCluster == 0 {
		return nil, fmt.Errorf("%w: FAT sectors per cluster is 0", InvalidBootSectorError)
	}

	if result.BytesPerSector != SECTOR_SIZE {
		DebugPrint("FAT volume declares %d bytes per sector, addressing still uses %d\n",
			result.BytesPerSector, SECTOR_SIZE)
	}

	return result, nil
}

// NewFatVolumeLayout derives the layout of a volume from its boot
// sector.
func NewFatVolumeLayout(boot *FatBootSector, volume_start_sector uint64) *FatVolumeLayout {
	fat_area := uint64(boot.SectorsPerFat) * uint64(boot.FatCopyCount)

	root_dir_bytes := uint64(boot.MaxRootDirEntries) * FAT_DIR_ENTRY_SIZE
	bytes_per_sector := uint64(boot.BytesPerSector)
	root_dir := (root_dir_bytes + bytes_per_sector - 1) / bytes_per_sector

	data_area := volume_start_sector + uint64(boot.ReservedSectorCount) + fat_area

	return &FatVolumeLayout{
		VolumeStartSector:   volume_start_sector,
		Boot:                *boot,
		FatAreaSizeSectors:  fat_area,
		RootDirSizeSectors:  root_dir,
		DataAreaStartSector: data_area,
		Cluster2Sector:      data_area + root_dir,
	}
}

func ComputeFatLayout(reader io.ReaderAt, volume_start_sector uint64) (*FatVolumeLayout, error) {
	boot, err := ParseFatBootSector(reader, volume_start_sector)
	if err != nil {
		return nil, err
	}

	return NewFatVolumeLayout(boot, volume_start_sector), nil
}

// GetFatReport lays out the volume and scans its root directory,
// which starts at the data area and ends at cluster #2.
func GetFatReport(reader io.ReaderAt, volume_start_sector uint64) (*FatReport, error) {
	layout, err := ComputeFatLayout(reader, volume_start_sector)
	if err != nil {
		return nil, err
	}

	deleted, err := FindFirstDeletedEntry(reader,
		layout.DataAreaStartSector, layout.Cluster2Sector,
		layout.SectorsPerCluster())
	if err != nil {
		return nil, err
	}

	return &FatReport{
		Layout:           layout,
		DeletedFileFound: deleted != nil,
		DeletedFile:      deleted,
	}, nil
}
