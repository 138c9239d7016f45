package buffer

import "encoding/binary"

// Append copies p to the end of the readable region, compacting or growing
// the storage if the writable region is too small. Appending an empty slice
// does nothing.
func (b *Buffer) Append(p []byte) {
	if len(p) == 0 {
		return
	}
	b.EnsureWritable(len(p))
	b.w += copy(b.buf[b.w:], p)
}

// AppendString appends the bytes of s.
func (b *Buffer) AppendString(s string) {
	if len(s) == 0 {
		return
	}
	b.EnsureWritable(len(s))
	b.w += copy(b.buf[b.w:], s)
}

// AppendByte appends a single byte.
func (b *Buffer) AppendByte(c byte) {
	b.EnsureWritable(1)
	b.buf[b.w] = c
	b.w++
}

// AppendUint8 appends v.
func (b *Buffer) AppendUint8(v uint8) { b.AppendByte(v) }

// AppendUint16 appends v in network byte order.
func (b *Buffer) AppendUint16(v uint16) {
	b.EnsureWritable(2)
	binary.BigEndian.PutUint16(b.buf[b.w:], v)
	b.w += 2
}

// AppendUint32 appends v in network byte order.
func (b *Buffer) AppendUint32(v uint32) {
	b.EnsureWritable(4)
	binary.BigEndian.PutUint32(b.buf[b.w:], v)
	b.w += 4
}

// AppendUint64 appends v in network byte order.
func (b *Buffer) AppendUint64(v uint64) {
	b.EnsureWritable(8)
	binary.BigEndian.PutUint64(b.buf[b.w:], v)
	b.w += 8
}

// AppendInt8 appends v.
func (b *Buffer) AppendInt8(v int8) { b.AppendByte(byte(v)) }

// AppendInt16 appends v in network byte order.
func (b *Buffer) AppendInt16(v int16) { b.AppendUint16(uint16(v)) }

// AppendInt32 appends v in network byte order.
func (b *Buffer) AppendInt32(v int32) { b.AppendUint32(uint32(v)) }

// AppendInt64 appends v in network byte order.
func (b *Buffer) AppendInt64(v int64) { b.AppendUint64(uint64(v)) }

// Write appends p. It implements io.Writer and never fails.
func (b *Buffer) Write(p []byte) (n int, err error) {
	b.Append(p)
	return len(p), nil
}

// WriteString appends s. It implements io.StringWriter and never fails.
func (b *Buffer) WriteString(s string) (n int, err error) {
	b.AppendString(s)
	return len(s), nil
}

// WriteByte appends c. It implements io.ByteWriter and never fails.
func (b *Buffer) WriteByte(c byte) error {
	b.AppendByte(c)
	return nil
}
