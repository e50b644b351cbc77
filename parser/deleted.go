package parser

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

const (
	FAT_DELETED_MARKER   = 0xE5
	FAT_LONG_NAME_MARKER = 0x0F

	FIRST_DATA_OFFSET = 0x04
	FIRST_DATA_LENGTH = 16
)

// A root directory entry whose first name byte carries the deletion
// marker.
type DeletedFileRecord struct {
	EntryOffset      int64
	NameBytes        [11]byte `json:"-"`
	Name             string
	Attribute        uint8
	FirstClusterLow  uint16
	FirstClusterHigh uint16
	FileSizeBytes    uint32

	// Clusters 0 and 1 are not data clusters: such an entry has no
	// recoverable content.
	HasAllocatedCluster bool
	FirstDataSector     uint64 `json:",omitempty"`
	FirstDataBytes      []byte `json:",omitempty"`

	// Set when the first cluster lies outside the image. A stale
	// cluster number is common in deleted entries.
	FirstDataError string `json:",omitempty"`

	// The slot before this one is a long file name entry.
	HasLongNameEntry bool
}

func (self *DeletedFileRecord) FileSizeKiB() float64 {
	return float64(self.FileSizeBytes) / 1024
}

func (self *DeletedFileRecord) DebugString() string {
	return fmt.Sprintf("Deleted %q at %#x: size %d cluster %d sector %d data %q",
		self.Name, self.EntryOffset, self.FileSizeBytes,
		self.FirstClusterLow, self.FirstDataSector, self.FirstDataBytes)
}

// ShortName renders an 8.3 name through the OEM code page, showing
// the deletion marker as '?'.
func ShortName(name [11]byte) string {
	raw := name
	if raw[0] == FAT_DELETED_MARKER {
		raw[0] = '?'
	}

	decoder := charmap.CodePage437.NewDecoder()
	base, err := decoder.Bytes(raw[:8])
	if err != nil {
		base = raw[:8]
	}

	ext, err := decoder.Bytes(raw[8:])
	if err != nil {
		ext = raw[8:]
	}

	result := strings.TrimRight(string(base), " \x00")
	extension := strings.TrimRight(string(ext), " \x00")
	if extension != "" {
		result += "." + extension
	}
	return result
}

// FindFirstDeletedEntry walks the 32 byte entries of a root directory
// from root_dir_start_sector up to cluster2_sector and decodes the
// first deleted one. A nil record with a nil error means no entry in
// the directory is deleted.
func FindFirstDeletedEntry(
	reader io.ReaderAt,
	root_dir_start_sector, cluster2_sector, sectors_per_cluster uint64) (
	*DeletedFileRecord, error) {

	start, err := sectorOffset(root_dir_start_sector, "root directory")
	if err != nil {
		return nil, err
	}

	end, err := sectorOffset(cluster2_sector, "cluster #2")
	if err != nil {
		return nil, err
	}

	previous_attribute := uint8(0)
	for offset := start; offset+FAT_DIR_ENTRY_SIZE <= end; offset += FAT_DIR_ENTRY_SIZE {
		entry, err := readBuffer(reader, offset, FAT_DIR_ENTRY_SIZE,
			"root directory entry")
		if err != nil {
			return nil, err
		}
		STATS.Inc_DirectoryEntry()

		if entry[0] != FAT_DELETED_MARKER {
			previous_attribute = entry[0x0B]
			continue
		}

		DebugPrint("Deleted entry found at %#x\n", offset)

		record, err := parseDeletedEntry(entry, offset)
		if err != nil {
			return nil, err
		}
		record.HasLongNameEntry = offset > start &&
			previous_attribute == FAT_LONG_NAME_MARKER

		err = readFirstData(reader, record, cluster2_sector, sectors_per_cluster)
		if err != nil {
			return nil, err
		}

		return record, nil
	}

	return nil, nil
}

func parseDeletedEntry(entry []byte, offset int64) (*DeletedFileRecord, error) {
	d := &fieldDecoder{buf: entry}
	record := &DeletedFileRecord{
		EntryOffset:      offset,
		Attribute:        d.u8(0x0B),
		FirstClusterHigh: d.u16(0x14),
		FirstClusterLow:  d.u16(0x1A),
		FileSizeBytes:    d.u32(0x1C),
	}
	if d.err != nil {
		return nil, d.err
	}

	copy(record.NameBytes[:], entry[:11])
	record.Name = ShortName(record.NameBytes)

	return record, nil
}

func readFirstData(reader io.ReaderAt, record *DeletedFileRecord,
	cluster2_sector, sectors_per_cluster uint64) error {
	if record.FirstClusterLow < 2 {
		DebugPrint("Deleted entry %q has no allocated cluster (%d)\n",
			record.Name, record.FirstClusterLow)
		return nil
	}

	record.HasAllocatedCluster = true
	record.FirstDataSector = cluster2_sector +
		uint64(record.FirstClusterLow-2)*sectors_per_cluster

	offset, err := sectorOffset(record.FirstDataSector, "deleted file data")
	var data []byte
	if err == nil {
		data, err = readBuffer(reader, offset+FIRST_DATA_OFFSET,
			FIRST_DATA_LENGTH, "deleted file data")
	}
	if errors.Is(err, ImageTooShortError) {
		DebugPrint("Deleted entry %q: %v\n", record.Name, err)
		record.FirstDataError = err.Error()
		return nil
	}
	if err != nil {
		return err
	}

	record.FirstDataBytes = data
	return nil
}
