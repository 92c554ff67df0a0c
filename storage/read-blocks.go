package storage

import (
	"io"

	"github.com/pkg/errors"

	"github.com/anacrolix/filesource/segments"
)

// Data read for one block range. Short is set when the file ended before the range did, in which
// case Data holds only what was available.
type BlockRead struct {
	Offset int64
	Data   []byte
	Short  bool
}

// Opens name once and reads each of blocks in ascending order, passing every block to each as soon
// as it's read. The first seek or read failure stops the loop and is returned; blocks already
// passed to each stay valid. The file is closed before returning on every path.
func ReadBlocks(name string, blocks segments.RangeSet, mode IoMode, each func(BlockRead)) error {
	return readBlocks(mode.fileIo(), name, blocks, each)
}

func readBlocks(fio fileIo, name string, blocks segments.RangeSet, each func(BlockRead)) error {
	f, err := fio.openForRead(name)
	if err != nil {
		return err
	}
	defer f.Close()
	for e := range blocks.Iter() {
		br, err := readBlock(f, e)
		if err != nil {
			return err
		}
		each(br)
	}
	return nil
}

func readBlock(f fileReader, e segments.Extent) (ret BlockRead, err error) {
	buf := make([]byte, e.Length)
	_, err = f.seekTo(e.Start)
	if err != nil {
		err = errors.Wrapf(err, "seeking to %v", e.Start)
		return
	}
	// ReadFull retries short reads until the buffer is full or the file ends.
	n, err := io.ReadFull(f, buf)
	switch err {
	case nil:
	case io.EOF, io.ErrUnexpectedEOF:
		err = nil
	default:
		err = errors.Wrapf(err, "reading block %v", e)
		return
	}
	ret = BlockRead{
		Offset: e.Start,
		Data:   buf[:n],
		Short:  int64(n) < e.Length,
	}
	return
}
