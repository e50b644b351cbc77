// Implement some easy APIs.
package parser

import (
	"fmt"
	"io"

	"github.com/spf13/afero"
)

// An Inspector runs the reports over one image path. Each report is
// a discrete call which opens the image, reads what it needs and
// closes it again, so nothing is retained between calls.
type Inspector struct {
	Fs   afero.Fs
	Path string

	// Bytes preceding the first sector of the disk in the image.
	Offset int64

	// When set, every read is captured into this directory.
	RecordDir string

	// Number of $MFT attributes to walk.
	AttributeCount int
}

func NewInspector(path string) *Inspector {
	return &Inspector{
		Fs:             afero.NewOsFs(),
		Path:           path,
		AttributeCount: DefaultAttributeCount,
	}
}

func (self *Inspector) withImage(cb func(image *Image, reader io.ReaderAt) error) error {
	image, err := OpenImage(self.Fs, self.Path)
	if err != nil {
		return err
	}
	defer image.Close()

	var reader io.ReaderAt = image
	if self.Offset != 0 {
		reader = &OffsetReader{Offset: self.Offset, Reader: reader}
	}

	if self.RecordDir != "" {
		recorder, err := NewRecorder(self.Fs, self.RecordDir, reader)
		if err != nil {
			return err
		}
		reader = recorder
	}

	return cb(image, reader)
}

// Check only confirms the image can be opened.
func (self *Inspector) Check() error {
	return self.withImage(func(image *Image, reader io.ReaderAt) error {
		DebugPrint("Opened %v: %d bytes (%v)\n", image.Path, image.Size(),
			image.Compression())
		return nil
	})
}

func (self *Inspector) Partitions() (result *PartitionTable, err error) {
	err = self.withImage(func(image *Image, reader io.ReaderAt) error {
		result, err = ParsePartitionTable(reader)
		return err
	})
	return result, err
}

func (self *Inspector) Fat() (result *FatReport, err error) {
	err = self.withImage(func(image *Image, reader io.ReaderAt) error {
		result, err = fatReport(reader)
		return err
	})
	return result, err
}

func (self *Inspector) Ntfs() (result *NtfsReport, err error) {
	err = self.withImage(func(image *Image, reader io.ReaderAt) error {
		result, err = self.ntfsReport(reader)
		return err
	})
	return result, err
}

// All produces every report from a single open of the image. A
// report which can not be produced records its error and the others
// are still attempted.
func (self *Inspector) All() (*DiskReport, error) {
	result := &DiskReport{Image: self.Path}

	err := self.withImage(func(image *Image, reader io.ReaderAt) error {
		result.Compression = image.Compression()
		result.Size = image.Size()

		table, err := ParsePartitionTable(reader)
		result.Partitions = table
		result.PartitionsError = errorString(err)

		fat, err := fatReport(reader)
		result.Fat = fat
		result.FatError = errorString(err)

		ntfs, err := self.ntfsReport(reader)
		result.Ntfs = ntfs
		result.NtfsError = errorString(err)

		return nil
	})
	if err != nil {
		return nil, err
	}

	Debug(result)
	return result, nil
}

func fatReport(reader io.ReaderAt) (*FatReport, error) {
	table, err := ParsePartitionTable(reader)
	if err != nil {
		return nil, err
	}

	start, ok := table.FatVolumeStart()
	if !ok {
		return nil, fmt.Errorf("%w: no %s partition",
			NoMatchingPartitionError, PARTITION_FAT16.Name())
	}

	return GetFatReport(reader, start)
}

func (self *Inspector) ntfsReport(reader io.ReaderAt) (*NtfsReport, error) {
	table, err := ParsePartitionTable(reader)
	if err != nil {
		return nil, err
	}

	start, ok := table.NtfsVolumeStart()
	if !ok {
		return nil, fmt.Errorf("%w: no %s partition",
			NoMatchingPartitionError, PARTITION_NTFS.Name())
	}

	count := self.AttributeCount
	if count <= 0 {
		count = DefaultAttributeCount
	}

	return GetNtfsReport(reader, start, count)
}
