package stream

import (
	"errors"
	"io"
)

const defaultChunkSize = 4096

var ErrLocked = errors.New("stream: already locked to a reader")

// Readable is a synchronous stand-in for a readable byte stream. The whole
// payload is buffered up front and handed out in chunks; there is no
// suspension, backpressure, or cancellation signal beyond discarding the
// remainder. That mirrors the host model this shim targets, where all I/O
// completes before the stream object is ever observed.
type Readable struct {
	data      []byte
	off       int
	chunkSize int
	locked    bool
	canceled  bool
}

func FromBytes(data []byte) *Readable {
	owned := make([]byte, len(data))
	copy(owned, data)
	return &Readable{data: owned, chunkSize: defaultChunkSize}
}

// FromReader drains r completely before returning, keeping the stream's
// synchronous contract.
func FromReader(r io.Reader) (*Readable, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return &Readable{data: data, chunkSize: defaultChunkSize}, nil
}

// SetChunkSize adjusts how much a single reader Read hands out.
func (s *Readable) SetChunkSize(n int) {
	if n > 0 {
		s.chunkSize = n
	}
}

func (s *Readable) Locked() bool {
	return s.locked
}

// Cancel discards whatever has not been consumed yet.
func (s *Readable) Cancel() {
	s.canceled = true
	s.off = len(s.data)
}

// GetReader locks the stream to a single reader.
func (s *Readable) GetReader() (*Reader, error) {
	if s.locked {
		return nil, ErrLocked
	}
	s.locked = true
	return &Reader{stream: s}, nil
}

// Bytes drains and returns everything left in the stream.
func (s *Readable) Bytes() []byte {
	out := make([]byte, len(s.data)-s.off)
	copy(out, s.data[s.off:])
	s.off = len(s.data)
	return out
}

// Read implements io.Reader so Go code can consume the stream natively.
func (s *Readable) Read(p []byte) (int, error) {
	if s.off >= len(s.data) {
		return 0, io.EOF
	}
	n := copy(p, s.data[s.off:])
	s.off += n
	return n, nil
}

// Reader is the locked view of a Readable, delivering the payload one chunk
// at a time.
type Reader struct {
	stream   *Readable
	released bool
}

// Read returns the next chunk. done reports exhaustion: once it is true the
// chunk is always nil, matching the read() result shape of the web API.
func (r *Reader) Read() (chunk []byte, done bool) {
	s := r.stream
	if r.released || s.off >= len(s.data) {
		return nil, true
	}
	end := s.off + s.chunkSize
	if end > len(s.data) {
		end = len(s.data)
	}
	chunk = make([]byte, end-s.off)
	copy(chunk, s.data[s.off:end])
	s.off = end
	return chunk, false
}

// ReleaseLock detaches the reader; the stream can be locked again and keeps
// its current position.
func (r *Reader) ReleaseLock() {
	if !r.released {
		r.released = true
		r.stream.locked = false
	}
}

func (r *Reader) Cancel() {
	r.stream.Cancel()
	r.ReleaseLock()
}
