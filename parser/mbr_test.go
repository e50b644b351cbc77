package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePartitionTable(t *testing.T) {
	table, err := ParsePartitionTable(newTestDisk().Reader())
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal(2, table.BlankCount)
	assert.Equal(2, table.ActiveCount())
	assert.True(table.HasValidSignature)

	expected := []struct {
		code  PartitionType
		start uint32
		size  uint32
	}{
		{PARTITION_FAT16, 1, 150},
		{PARTITION_NTFS, 200, 1000},
		{PARTITION_EMPTY, 0, 0},
		{PARTITION_EMPTY, 0, 0},
	}

	for i, e := range expected {
		entry := table.Entries[i]
		assert.Equal(i, entry.Slot)
		assert.Equal(e.code, entry.TypeCode())
		assert.Equal(e.start, entry.StartSectorLBA)
		assert.Equal(e.size, entry.SizeSectors)
	}

	assert.Equal(uint8(0x80), table.Entries[0].Status)
	assert.Equal(uint64(75), table.Entries[0].SizeKiB())
	assert.Equal(uint64(500), table.Entries[1].SizeKiB())

	start, ok := table.FatVolumeStart()
	assert.True(ok)
	assert.Equal(uint64(1), start)

	start, ok = table.NtfsVolumeStart()
	assert.True(ok)
	assert.Equal(uint64(200), start)
}

func TestPartitionTableFirstMatchWins(t *testing.T) {
	b := newImageBuilder(1024)
	b.partition(0, 0, 0x0C, 63, 100)
	b.partition(1, 0, 0x07, 2048, 100)
	b.partition(2, 0, 0x07, 4096, 100)
	b.partition(3, 0, 0x99, 8192, 100)

	table, err := ParsePartitionTable(b.Reader())
	require.NoError(t, err)

	assert.Equal(t, 0, table.BlankCount)
	assert.False(t, table.HasValidSignature)
	assert.Equal(t, UNRECOGNISED, table.Entries[3].Type.Name)

	start, ok := table.NtfsVolumeStart()
	assert.True(t, ok)
	assert.Equal(t, uint64(2048), start)

	// No FAT-16 partition: absent, not sector 0.
	_, ok = table.FatVolumeStart()
	assert.False(t, ok)
	assert.Nil(t, table.FatStartSector)
}

func TestPartitionTableWithoutSignatureBytes(t *testing.T) {
	// Exactly long enough for the table but not the signature.
	b := newImageBuilder(MBR_TABLE_OFFSET + MBR_TABLE_SIZE)
	b.partition(0, 0, 0x06, 1, 10)

	table, err := ParsePartitionTable(b.Reader())
	require.NoError(t, err)
	assert.Equal(t, 3, table.BlankCount)
	assert.False(t, table.HasValidSignature)
}

func TestPartitionTableImageTooShort(t *testing.T) {
	b := newImageBuilder(MBR_TABLE_OFFSET + MBR_TABLE_SIZE - 1)

	_, err := ParsePartitionTable(b.Reader())
	assert.True(t, errors.Is(err, ImageTooShortError))
}

func TestPartitionTableIdempotent(t *testing.T) {
	reader := newTestDisk().Reader()

	first, err := ParsePartitionTable(reader)
	require.NoError(t, err)

	second, err := ParsePartitionTable(reader)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
