package parser

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/sebdah/goldie"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestInspector(t *testing.T, data []byte) *Inspector {
	fs := afero.NewMemMapFs()
	writeImage(t, fs, "/images/disk.dd", data)

	return &Inspector{
		Fs:             fs,
		Path:           "/images/disk.dd",
		AttributeCount: DefaultAttributeCount,
	}
}

func TestInspectorReports(t *testing.T) {
	inspector := newTestInspector(t, newTestDisk().Bytes())
	assert := assert.New(t)

	assert.NoError(inspector.Check())

	table, err := inspector.Partitions()
	require.NoError(t, err)
	assert.Equal(2, table.ActiveCount())

	fat, err := inspector.Fat()
	require.NoError(t, err)
	assert.Equal(uint64(testFatCluster2), fat.Layout.Cluster2Sector)
	assert.True(fat.DeletedFileFound)

	ntfs, err := inspector.Ntfs()
	require.NoError(t, err)
	assert.Equal(uint64(testMftSector), ntfs.MftSectorAddress)
	assert.Len(ntfs.Attributes, 2)
}

func TestInspectorMissingPartitions(t *testing.T) {
	b := newImageBuilder(4 * SECTOR_SIZE)
	b.partition(0, 0, uint8(PARTITION_FAT32_LBA), 1, 2)
	b.signature()
	inspector := newTestInspector(t, b.Bytes())

	// Neither report falls back to sector 0.
	_, err := inspector.Fat()
	assert.True(t, errors.Is(err, NoMatchingPartitionError))

	_, err = inspector.Ntfs()
	assert.True(t, errors.Is(err, NoMatchingPartitionError))

	report, err := inspector.All()
	require.NoError(t, err)
	assert.NotNil(t, report.Partitions)
	assert.Nil(t, report.Fat)
	assert.Contains(t, report.FatError, "NoMatchingPartitionError")
	assert.Contains(t, report.NtfsError, "NoMatchingPartitionError")
}

func TestInspectorPartialReports(t *testing.T) {
	// The NTFS volume is cut off, the FAT volume is intact.
	data := newTestDisk().Bytes()[:testNtfsStart*SECTOR_SIZE+16]
	inspector := newTestInspector(t, data)

	report, err := inspector.All()
	require.NoError(t, err)
	assert.NotNil(t, report.Fat)
	assert.Empty(t, report.FatError)
	assert.Nil(t, report.Ntfs)
	assert.Contains(t, report.NtfsError, "ImageTooShortError")

	_, err = inspector.Ntfs()
	assert.True(t, errors.Is(err, ImageTooShortError))
}

func TestInspectorImageNotFound(t *testing.T) {
	inspector := &Inspector{Fs: afero.NewMemMapFs(), Path: "/nothing.dd"}

	_, err := inspector.Partitions()
	assert.True(t, errors.Is(err, ImageNotFoundError))

	_, err = inspector.All()
	assert.True(t, errors.Is(err, ImageNotFoundError))
}

func TestInspectorOffsetAndRecord(t *testing.T) {
	prefix := make([]byte, 4096)
	inspector := newTestInspector(t, append(prefix, newTestDisk().Bytes()...))
	inspector.Offset = 4096
	inspector.RecordDir = "/record"
	inspector.AttributeCount = 5

	ntfs, err := inspector.Ntfs()
	require.NoError(t, err)

	// The walk stops at the end marker after two attributes.
	require.Len(t, ntfs.Attributes, 3)
	assert.True(t, ntfs.Attributes[2].IsEnd())

	files, err := afero.ReadDir(inspector.Fs, "/record")
	require.NoError(t, err)
	assert.NotEmpty(t, files)
}

func TestDiskReport(t *testing.T) {
	inspector := newTestInspector(t, newTestDisk().Bytes())

	report, err := inspector.All()
	require.NoError(t, err)

	// Reports are stable across runs.
	again, err := inspector.All()
	require.NoError(t, err)
	assert.Equal(t, report, again)

	result_json, _ := json.MarshalIndent(report, "", " ")
	goldie.Assert(t, "TestDiskReport", result_json)
}
