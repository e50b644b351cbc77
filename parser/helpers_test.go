package parser

import (
	"bytes"
	"encoding/binary"
)

// Geometry of the synthetic disk built by newTestDisk().
const (
	testDiskSectors = 240

	testFatStart        = 1
	testFatDataArea     = 20
	testFatCluster2     = 52
	testFatRootDirBytes = testFatDataArea * SECTOR_SIZE

	testNtfsStart     = 200
	testMftSector     = 232
	testMftOffset     = testMftSector * SECTOR_SIZE
	testFirstAttrOffs = 0x38
)

type imageBuilder struct {
	buf []byte
}

func newImageBuilder(size int) *imageBuilder {
	return &imageBuilder{buf: make([]byte, size)}
}

func (self *imageBuilder) put(offset int, data []byte) *imageBuilder {
	copy(self.buf[offset:], data)
	return self
}

func (self *imageBuilder) putU8(offset int, v uint8) *imageBuilder {
	self.buf[offset] = v
	return self
}

func (self *imageBuilder) putU16(offset int, v uint16) *imageBuilder {
	binary.LittleEndian.PutUint16(self.buf[offset:], v)
	return self
}

func (self *imageBuilder) putU32(offset int, v uint32) *imageBuilder {
	binary.LittleEndian.PutUint32(self.buf[offset:], v)
	return self
}

func (self *imageBuilder) putU64(offset int, v uint64) *imageBuilder {
	binary.LittleEndian.PutUint64(self.buf[offset:], v)
	return self
}

func (self *imageBuilder) partition(slot int, status, code uint8, start, size uint32) *imageBuilder {
	base := MBR_TABLE_OFFSET + slot*MBR_ENTRY_SIZE
	self.putU8(base, status)
	self.putU8(base+0x04, code)
	self.putU32(base+0x08, start)
	self.putU32(base+0x0C, size)
	return self
}

func (self *imageBuilder) signature() *imageBuilder {
	return self.putU16(MBR_SIGNATURE_OFFSET, MBR_SIGNATURE)
}

func (self *imageBuilder) fatBoot(sector int, bytes_per_sector uint16,
	sectors_per_cluster uint8, reserved uint16, fats uint8,
	root_entries uint16, sectors_per_fat uint16) *imageBuilder {
	base := sector * SECTOR_SIZE
	self.put(base, []byte{0xEB, 0x3C, 0x90})
	self.put(base+3, []byte("MSDOS5.0"))
	self.putU16(base+0x0B, bytes_per_sector)
	self.putU8(base+0x0D, sectors_per_cluster)
	self.putU16(base+0x0E, reserved)
	self.putU8(base+0x10, fats)
	self.putU16(base+0x11, root_entries)
	self.putU16(base+0x16, sectors_per_fat)
	return self
}

func (self *imageBuilder) dirEntry(offset int, name string, attr uint8,
	cluster uint16, size uint32) *imageBuilder {
	self.put(offset, []byte(name)[:11])
	self.putU8(offset+0x0B, attr)
	self.putU16(offset+0x1A, cluster)
	self.putU32(offset+0x1C, size)
	return self
}

func (self *imageBuilder) ntfsBoot(sector int, bytes_per_sector uint16,
	sectors_per_cluster uint8, mft_lcn uint64) *imageBuilder {
	base := sector * SECTOR_SIZE
	self.put(base, []byte{0xEB, 0x52, 0x90})
	self.put(base+3, []byte(NTFS_OEM_ID))
	self.putU16(base+0x0B, bytes_per_sector)
	self.putU8(base+0x0D, sectors_per_cluster)
	self.putU64(base+0x30, mft_lcn)
	return self
}

func (self *imageBuilder) attribute(offset int, code uint32, length uint32,
	id uint16) *imageBuilder {
	self.putU32(offset, code)
	self.putU32(offset+4, length)
	self.putU16(offset+0x0E, id)
	return self
}

func (self *imageBuilder) Bytes() []byte {
	return self.buf
}

func (self *imageBuilder) Reader() *bytes.Reader {
	return bytes.NewReader(self.buf)
}

// newTestDisk builds a disk with a FAT-16 volume at sector 1 holding
// a deleted file, and an NTFS volume at sector 200 whose first $MFT
// record has two attributes.
func newTestDisk() *imageBuilder {
	b := newImageBuilder(testDiskSectors * SECTOR_SIZE)
	b.partition(0, 0x80, uint8(PARTITION_FAT16), testFatStart, 150)
	b.partition(1, 0x00, uint8(PARTITION_NTFS), testNtfsStart, 1000)
	b.signature()

	// 4 sectors/cluster, 1 reserved, 2 FATs of 9 sectors, 512 root
	// entries: data area at 1+1+18 = 20, cluster #2 at 20+32 = 52.
	b.fatBoot(testFatStart, 512, 4, 1, 2, 512, 9)

	root := testFatRootDirBytes
	b.dirEntry(root+0*32, "README  TXT", 0x20, 2, 100)
	b.dirEntry(root+1*32, "NOTES   TXT", 0x20, 4, 200)
	b.putU8(root+2*32, 0x41).putU8(root+2*32+0x0B, FAT_LONG_NAME_MARKER)
	b.dirEntry(root+3*32, "\xe5ELETED TXT", 0x20, 3, 1536)
	b.dirEntry(root+4*32, "\xe5ATER   TXT", 0x20, 7, 10)

	// Cluster 3 starts at sector 52 + (3-2)*4 = 56.
	b.put(56*SECTOR_SIZE+FIRST_DATA_OFFSET, []byte("Hello, deleted!!"))

	// 8 sectors/cluster, $MFT at LCN 4: sector 200 + 32 = 232.
	b.ntfsBoot(testNtfsStart, 512, 8, 4)
	b.put(testMftOffset, []byte(MFT_RECORD_MAGIC))
	b.putU16(testMftOffset+0x14, testFirstAttrOffs)
	b.attribute(testMftOffset+testFirstAttrOffs, 0x10, 0x60, 0)
	b.attribute(testMftOffset+testFirstAttrOffs+0x60, 0x30, 0x68, 3)
	b.putU32(testMftOffset+testFirstAttrOffs+0x60+0x68, uint32(ATTR_TYPE_END))

	return b
}
