package buffer

import "encoding/binary"

// Peek returns the readable region without consuming it. The returned slice
// aliases the buffer and must not be used after the next mutating call.
// Its capacity is capped so appending to it never writes into the buffer.
func (b *Buffer) Peek() []byte {
	return b.buf[b.r:b.w:b.w]
}

// Bytes returns the readable region. It is the same as Peek.
func (b *Buffer) Bytes() []byte {
	return b.Peek()
}

// PeekWithPrependable returns the prependable and readable regions as one
// slice, starting at offset 0 of the storage. A writer that has prepended a
// header into a buffer whose reserve is exactly the header size hands this
// slice to the transport. Same aliasing rules as Peek.
func (b *Buffer) PeekWithPrependable() []byte {
	return b.buf[:b.w:b.w]
}

// PeekN returns the first n readable bytes without consuming them. Same
// aliasing rules as Peek.
func (b *Buffer) PeekN(n int) ([]byte, error) {
	if n < 0 {
		return nil, errNegative("peek", n)
	}
	if n > b.ReadableBytes() {
		return nil, errReadable("peek", n, b.ReadableBytes())
	}
	return b.buf[b.r : b.r+n : b.r+n], nil
}

func (b *Buffer) peekFixed(n int) ([]byte, error) {
	if n > b.ReadableBytes() {
		return nil, errReadable("peek", n, b.ReadableBytes())
	}
	return b.buf[b.r : b.r+n], nil
}

// PeekUint8 returns the first readable byte.
func (b *Buffer) PeekUint8() (uint8, error) {
	p, err := b.peekFixed(1)
	if err != nil {
		return 0, err
	}
	return p[0], nil
}

// PeekUint16 decodes the first 2 readable bytes in network byte order.
func (b *Buffer) PeekUint16() (uint16, error) {
	p, err := b.peekFixed(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(p), nil
}

// PeekUint32 decodes the first 4 readable bytes in network byte order.
func (b *Buffer) PeekUint32() (uint32, error) {
	p, err := b.peekFixed(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(p), nil
}

// PeekUint64 decodes the first 8 readable bytes in network byte order.
func (b *Buffer) PeekUint64() (uint64, error) {
	p, err := b.peekFixed(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(p), nil
}

// PeekInt8 returns the first readable byte as a signed integer.
func (b *Buffer) PeekInt8() (int8, error) {
	v, err := b.PeekUint8()
	return int8(v), err
}

// PeekInt16 decodes the first 2 readable bytes in network byte order.
func (b *Buffer) PeekInt16() (int16, error) {
	v, err := b.PeekUint16()
	return int16(v), err
}

// PeekInt32 decodes the first 4 readable bytes in network byte order.
func (b *Buffer) PeekInt32() (int32, error) {
	v, err := b.PeekUint32()
	return int32(v), err
}

// PeekInt64 decodes the first 8 readable bytes in network byte order.
func (b *Buffer) PeekInt64() (int64, error) {
	v, err := b.PeekUint64()
	return int64(v), err
}
