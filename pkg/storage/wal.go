package storage

import (
	"bufio"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"io"
	"os"
	"sync"
	"time"
)

// [CRC32 4B] [Timestamp 8B] [Op 1B] [PayloadSize 4B] [Payload NB]

const (
	HeaderSize = 4 + 8 + 1 + 4 // 17 Bytes
)

type Op byte

const (
	OpPut     Op = 1
	OpDelete  Op = 2
	OpReplace Op = 3
)

var ErrCRCMismatch = errors.New("wal: crc mismatch")

type Entry struct {
	Op        Op
	Timestamp time.Time
	Payload   []byte
}

type WAL struct {
	file *os.File
	mu   sync.Mutex
	buf  *bufio.Writer
}

func OpenWAL(path string) (*WAL, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}

	return &WAL{
		file: f,
		buf:  bufio.NewWriter(f),
	}, nil
}

func (w *WAL) Append(op Op, payload []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.writeLocked(op, payload); err != nil {
		return err
	}
	return w.buf.Flush()
}

func (w *WAL) writeLocked(op Op, payload []byte) error {
	header := make([]byte, HeaderSize)
	ts := uint64(time.Now().UnixNano())

	binary.LittleEndian.PutUint64(header[4:12], ts)
	header[12] = byte(op)
	binary.LittleEndian.PutUint32(header[13:17], uint32(len(payload)))

	checksum := crc32.NewIEEE()
	checksum.Write(header[4:])
	checksum.Write(payload)
	binary.LittleEndian.PutUint32(header[0:4], checksum.Sum32())

	if _, err := w.buf.Write(header); err != nil {
		return err
	}
	_, err := w.buf.Write(payload)
	return err
}

func (w *WAL) Sync() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.buf.Flush(); err != nil {
		return err
	}
	return w.file.Sync()
}

func (w *WAL) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.buf.Flush()
	return w.file.Close()
}

func (w *WAL) Truncate() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.buf.Flush(); err != nil {
		return err
	}
	path := w.file.Name()
	if err := w.file.Close(); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_TRUNC|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	w.file = f
	w.buf = bufio.NewWriter(f)
	return w.file.Sync()
}

func (w *WAL) Size() (int64, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.buf.Flush(); err != nil {
		return 0, err
	}
	st, err := w.file.Stat()
	if err != nil {
		return 0, err
	}
	return st.Size(), nil
}

type WALIterator struct {
	reader *bufio.Reader
	file   *os.File
}

func (w *WAL) NewIterator() (*WALIterator, error) {
	w.mu.Lock()
	err := w.buf.Flush()
	name := w.file.Name()
	w.mu.Unlock()
	if err != nil {
		return nil, err
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	return &WALIterator{
		file:   f,
		reader: bufio.NewReader(f),
	}, nil
}

// Next returns io.EOF at a clean end of log.
func (it *WALIterator) Next() (Entry, error) {
	header := make([]byte, HeaderSize)
	if _, err := io.ReadFull(it.reader, header); err != nil {
		return Entry{}, err
	}

	storedCRC := binary.LittleEndian.Uint32(header[0:4])
	ts := binary.LittleEndian.Uint64(header[4:12])
	op := Op(header[12])
	size := binary.LittleEndian.Uint32(header[13:17])

	payload := make([]byte, size)
	if _, err := io.ReadFull(it.reader, payload); err != nil {
		return Entry{}, errors.New("wal: corrupted payload")
	}

	checksum := crc32.NewIEEE()
	checksum.Write(header[4:])
	checksum.Write(payload)
	if checksum.Sum32() != storedCRC {
		return Entry{}, ErrCRCMismatch
	}

	return Entry{Op: op, Timestamp: time.Unix(0, int64(ts)), Payload: payload}, nil
}

func (it *WALIterator) Close() {
	it.file.Close()
}
