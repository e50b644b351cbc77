package parser

import "io"

// OffsetReader shifts all reads by Offset. This is used for images
// which carry a header before the first sector of the disk.
type OffsetReader struct {
	Offset int64
	Reader io.ReaderAt
}

func (self *OffsetReader) ReadAt(buf []byte, offset int64) (int, error) {
	if offset+self.Offset < 0 {
		return 0, io.EOF
	}
	return self.Reader.ReadAt(buf, offset+self.Offset)
}
