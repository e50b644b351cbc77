package parser

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureDebug(t *testing.T) *bytes.Buffer {
	out := &bytes.Buffer{}
	SetDebug(true)
	SetDebugWriter(out)
	t.Cleanup(func() {
		SetDebug(false)
		SetDebugWriter(os.Stderr)
	})
	return out
}

func TestDebugDumpsDiskReport(t *testing.T) {
	out := captureDebug(t)

	inspector := newTestInspector(t, newTestDisk().Bytes())
	_, err := inspector.All()
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Deleted entry found at 0x2860")
	assert.Contains(t, out.String(), "(*parser.DiskReport)")
	assert.Contains(t, out.String(), `Name: (string) (len=11) "?ELETED.TXT"`)
}

func TestDebugDisabled(t *testing.T) {
	out := captureDebug(t)
	SetDebug(false)

	Debug(newTestDisk())
	DebugPrint("hidden\n")
	assert.Empty(t, out.String())
}

func TestDebugStringReports(t *testing.T) {
	table, err := ParsePartitionTable(newTestDisk().Reader())
	require.NoError(t, err)

	lines := strings.Split(DebugString(table, "  "), "\n")
	assert.Equal(t, "  2 active, 2 blank, signature true", lines[0])
	assert.Equal(t, "  Partition 1: 0x7 (NTFS) start 200 size 500 KiB", lines[2])

	fat, err := GetFatReport(newTestDisk().Reader(), testFatStart)
	require.NoError(t, err)

	result := DebugString(fat, "")
	assert.Contains(t, result, "cluster #2 52")
	assert.Contains(t, result, `Deleted "?ELETED.TXT" at 0x2860`)

	ntfs, err := GetNtfsReport(newTestDisk().Reader(), testNtfsStart, 2)
	require.NoError(t, err)
	assert.Contains(t, DebugString(ntfs, ""),
		"Attribute at 0x38: 0x10 ($STANDARD_INFORMATION) length 96")

	// Values without a DebugString() method render as nothing.
	assert.Equal(t, "", DebugString(42, "  "))
}
