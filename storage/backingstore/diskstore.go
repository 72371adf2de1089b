package backingstore

import (
	"encoding/binary"
	"io"
	"os"

	"github.com/ncw/directio"
)

// DiskStore is a file-backed BackingStore that survives a process
// restart. It opens its file with O_DIRECT (bypassing the page cache)
// and reads/writes through directio.AlignedBlock buffers, the way a
// real pager would push pages to a block device rather than trust an
// OS-level cache the translator already substitutes for.
type DiskStore struct {
	f         *os.File
	blockSize int
}

// NewDiskStore opens (creating if necessary) path as an O_DIRECT backing
// file. pageWords is the number of words per virtual page; each page's
// on-disk slot is rounded up to a directio.BlockSize multiple.
func NewDiskStore(path string, pageWords int) (*DiskStore, error) {
	f, err := directio.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return nil, err
	}
	return &DiskStore{
		f:         f,
		blockSize: slotSize(pageWords),
	}, nil
}

// slotSize rounds a page's byte footprint up to the next directio.BlockSize
// multiple, since O_DIRECT I/O requires block-aligned, block-sized
// transfers.
func slotSize(pageWords int) int {
	raw := pageWords * wordBytes
	if raw%directio.BlockSize == 0 {
		return raw
	}
	return (raw/directio.BlockSize + 1) * directio.BlockSize
}

// Evict writes words to the aligned slot for page.
func (d *DiskStore) Evict(page uint64, words []int64) error {
	block := directio.AlignedBlock(d.blockSize)
	for i, w := range words {
		binary.LittleEndian.PutUint64(block[i*wordBytes:], uint64(w))
	}
	off := int64(page) * int64(d.blockSize)
	_, err := d.f.WriteAt(block, off)
	return err
}

// Restore reads back the aligned slot for page. A slot never written
// reads as all-zero words, since a freshly created file is sparse/zero
// on read past what has been written.
func (d *DiskStore) Restore(page uint64, length int) ([]int64, error) {
	block := directio.AlignedBlock(d.blockSize)
	off := int64(page) * int64(d.blockSize)
	_, err := d.f.ReadAt(block, off)
	if err != nil && err != io.EOF {
		return nil, err
	}
	words := make([]int64, length)
	for i := 0; i < length; i++ {
		words[i] = int64(binary.LittleEndian.Uint64(block[i*wordBytes:]))
	}
	return words, nil
}

// Close flushes and closes the backing file.
func (d *DiskStore) Close() error {
	return d.f.Close()
}
