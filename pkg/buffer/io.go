package buffer

import (
	"errors"
	"io"
)

var (
	_ io.Reader       = (*Buffer)(nil)
	_ io.Writer       = (*Buffer)(nil)
	_ io.ByteReader   = (*Buffer)(nil)
	_ io.ByteWriter   = (*Buffer)(nil)
	_ io.StringWriter = (*Buffer)(nil)
	_ io.ReaderFrom   = (*Buffer)(nil)
	_ io.WriterTo     = (*Buffer)(nil)
)

// extraBufSize is the size of the scratch area ReadOnce falls back to when
// the writable region is small.
const extraBufSize = 64 * 1024

// Read consumes up to len(p) bytes into p. It implements io.Reader and
// returns io.EOF when the buffer is empty and len(p) > 0.
func (b *Buffer) Read(p []byte) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}
	if b.ReadableBytes() == 0 {
		return 0, io.EOF
	}
	n = copy(p, b.buf[b.r:b.w])
	return n, b.Retrieve(n)
}

// ReadByte consumes one byte. It implements io.ByteReader and returns io.EOF
// when the buffer is empty.
func (b *Buffer) ReadByte() (byte, error) {
	if b.ReadableBytes() == 0 {
		return 0, io.EOF
	}
	return b.ReadUint8()
}

// ReadOnce performs a single Read from r and appends what it returns. This is
// the call a transport reader makes when its connection becomes readable.
//
// If the writable region has room for at least half of a 64 KiB scratch, r
// reads straight into it. Otherwise r reads into the scratch, which is then
// appended, so a small buffer does not have to grow before it knows how much
// data is coming.
func (b *Buffer) ReadOnce(r io.Reader) (int, error) {
	if b.WritableBytes() >= extraBufSize/2 {
		n, err := r.Read(b.buf[b.w:])
		b.w += n
		return n, err
	}
	var extra [extraBufSize]byte
	n, err := r.Read(extra[:])
	b.Append(extra[:n])
	return n, err
}

// ReadFrom appends data from r until io.EOF. It implements io.ReaderFrom;
// io.EOF is not reported as an error.
func (b *Buffer) ReadFrom(r io.Reader) (n int64, err error) {
	for {
		m, err := b.ReadOnce(r)
		n += int64(m)
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		if err != nil {
			return n, err
		}
	}
}

// WriteTo writes the readable region to w and retrieves what was written. It
// implements io.WriterTo.
func (b *Buffer) WriteTo(w io.Writer) (n int64, err error) {
	readable := b.ReadableBytes()
	if readable == 0 {
		return 0, nil
	}
	m, err := w.Write(b.buf[b.r:b.w])
	if m > readable {
		m = readable
	}
	if rerr := b.Retrieve(m); rerr != nil {
		return int64(m), rerr
	}
	if err != nil {
		return int64(m), err
	}
	if m != readable {
		return int64(m), io.ErrShortWrite
	}
	return int64(m), nil
}
