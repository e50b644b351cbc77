package parser

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// A Recorder captures every read into a directory so the exact
// sectors used by an analysis can be replayed later without the
// source image. Reads already present in the directory are served
// from there.
type Recorder struct {
	fs   afero.Fs
	path string

	// Delegate reader
	reader io.ReaderAt
}

func (self *Recorder) ReadAt(buf []byte, offset int64) (int, error) {
	full_path := filepath.Join(self.path,
		fmt.Sprintf("%#08x-%d.bin", offset, len(buf)))

	fd, err := self.fs.Open(full_path)
	if err != nil {
		// Not recorded yet - pass the read to the delegate and
		// record it for next time.
		n, err := self.reader.ReadAt(buf, offset)
		if err == nil || err == io.EOF {
			self.record(full_path, buf[:n])
		}
		return n, err
	}
	defer fd.Close()

	n, err := io.ReadFull(fd, buf)
	if err == io.ErrUnexpectedEOF {
		err = io.EOF
	}
	return n, err
}

func (self *Recorder) record(full_path string, data []byte) {
	fd, err := self.fs.OpenFile(full_path,
		os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0660)
	if err != nil {
		DebugPrint("Recorder: %v\n", err)
		return
	}
	defer fd.Close()

	_, err = fd.Write(data)
	if err != nil {
		DebugPrint("Recorder: %v\n", err)
	}
}

func NewRecorder(fs afero.Fs, path string, reader io.ReaderAt) (*Recorder, error) {
	err := fs.MkdirAll(path, 0700)
	if err != nil {
		return nil, err
	}
	return &Recorder{fs: fs, path: path, reader: reader}, nil
}
