package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dsnet/compress/bzip2"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"github.com/spf13/afero"
)

const (
	COMPRESSION_RAW    = "raw"
	COMPRESSION_GZIP   = "gzip"
	COMPRESSION_ZLIB   = "zlib"
	COMPRESSION_ZSTD   = "zstd"
	COMPRESSION_BZIP2  = "bzip2"
	COMPRESSION_SNAPPY = "snappy"
)

var (
	gzipMagic   = []byte{0x1f, 0x8b}
	zstdMagic   = []byte{0x28, 0xb5, 0x2f, 0xfd}
	bzip2Magic  = []byte("BZh")
	snappyMagic = []byte("\xff\x06\x00\x00sNaPpY")
	s2Magic     = []byte("\xff\x06\x00\x00S2sTwO")

	// Compressed images are inflated into memory up to this size.
	MaxInflatedSize int64 = 8 << 30
)

// An Image is a read only view of a disk image. Compressed images are
// inflated into memory when opened so they can be read at random
// offsets like raw ones.
type Image struct {
	Path string

	reader      io.ReaderAt
	size        int64
	compression string
	closer      io.Closer
}

func (self *Image) ReadAt(buf []byte, offset int64) (int, error) {
	return self.reader.ReadAt(buf, offset)
}

func (self *Image) Size() int64 {
	return self.size
}

func (self *Image) Compression() string {
	return self.compression
}

func (self *Image) Close() error {
	if self.closer == nil {
		return nil
	}
	err := self.closer.Close()
	self.closer = nil
	return err
}

func OpenImage(fs afero.Fs, path string) (*Image, error) {
	fd, err := fs.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %v", ImageNotFoundError, err)
		}
		return nil, fmt.Errorf("%w: %v", ImageUnreadableError, err)
	}

	stat, err := fd.Stat()
	if err != nil {
		fd.Close()
		return nil, fmt.Errorf("%w: %v", ImageUnreadableError, err)
	}

	if stat.IsDir() {
		fd.Close()
		return nil, fmt.Errorf("%w: %v is a directory", ImageUnreadableError, path)
	}

	STATS.Inc_ImagesOpened()

	header := make([]byte, 16)
	n, err := fd.ReadAt(header, 0)
	if err != nil && !errors.Is(err, io.EOF) {
		fd.Close()
		return nil, fmt.Errorf("%w: %v", ImageUnreadableError, err)
	}

	compression := detectCompression(header[:n])
	if compression == COMPRESSION_RAW {
		return &Image{
			Path:        path,
			reader:      fd,
			size:        stat.Size(),
			compression: compression,
			closer:      fd,
		}, nil
	}

	// The compressed file is no longer needed once inflated.
	defer fd.Close()

	DebugPrint("Inflating %v image %v\n", compression, path)
	data, err := inflate(compression, io.NewSectionReader(fd, 0, stat.Size()))
	if err != nil {
		return nil, fmt.Errorf("%w: %v image %v: %v",
			ImageUnreadableError, compression, path, err)
	}

	return &Image{
		Path:        path,
		reader:      bytes.NewReader(data),
		size:        int64(len(data)),
		compression: compression,
	}, nil
}

func detectCompression(header []byte) string {
	switch {
	case bytes.HasPrefix(header, gzipMagic):
		return COMPRESSION_GZIP
	case bytes.HasPrefix(header, zstdMagic):
		return COMPRESSION_ZSTD
	case bytes.HasPrefix(header, snappyMagic), bytes.HasPrefix(header, s2Magic):
		return COMPRESSION_SNAPPY
	case len(header) >= 4 && bytes.HasPrefix(header, bzip2Magic) &&
		header[3] >= '1' && header[3] <= '9':
		return COMPRESSION_BZIP2

	// Only the 32k window zlib header is recognised, other valid
	// headers are too likely to be the start of boot code.
	case len(header) >= 2 && header[0] == 0x78 &&
		(uint16(header[0])<<8|uint16(header[1]))%31 == 0:
		return COMPRESSION_ZLIB
	}
	return COMPRESSION_RAW
}

func inflate(compression string, reader io.Reader) ([]byte, error) {
	switch compression {
	case COMPRESSION_GZIP:
		r, err := gzip.NewReader(reader)
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return readAllLimited(r)

	case COMPRESSION_ZLIB:
		r, err := zlib.NewReader(reader)
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return readAllLimited(r)

	case COMPRESSION_ZSTD:
		r, err := zstd.NewReader(reader)
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return readAllLimited(r)

	case COMPRESSION_BZIP2:
		r, err := bzip2.NewReader(reader, &bzip2.ReaderConfig{})
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return readAllLimited(r)

	case COMPRESSION_SNAPPY:
		// The s2 reader also decodes snappy framed streams.
		return readAllLimited(s2.NewReader(reader))
	}

	return nil, fmt.Errorf("unsupported compression %v", compression)
}

func readAllLimited(reader io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(reader, MaxInflatedSize+1))
	if err != nil {
		return nil, err
	}

	if int64(len(data)) > MaxInflatedSize {
		return nil, fmt.Errorf("inflated image exceeds %d bytes", MaxInflatedSize)
	}
	return data, nil
}
