package buffer

// Retrieve discards the first n readable bytes. Retrieving everything that is
// readable resets both indices so the buffer behaves like a fresh one.
func (b *Buffer) Retrieve(n int) error {
	if n < 0 {
		return errNegative("retrieve", n)
	}
	if n > b.ReadableBytes() {
		return errReadable("retrieve", n, b.ReadableBytes())
	}
	if n < b.ReadableBytes() {
		b.r += n
	} else {
		b.RetrieveAll()
	}
	return nil
}

// RetrieveAll discards all readable bytes and resets the indices to the
// prepend reserve.
func (b *Buffer) RetrieveAll() {
	b.r = b.prepend
	b.w = b.prepend
}

// Reset discards all readable bytes. It is the same as RetrieveAll.
func (b *Buffer) Reset() {
	b.RetrieveAll()
}

// RetrieveBytes consumes the first n readable bytes and returns a copy.
func (b *Buffer) RetrieveBytes(n int) ([]byte, error) {
	p, err := b.PeekN(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, p)
	return out, b.Retrieve(n)
}

// RetrieveAllBytes consumes all readable bytes and returns a copy.
func (b *Buffer) RetrieveAllBytes() []byte {
	out := make([]byte, b.ReadableBytes())
	copy(out, b.buf[b.r:b.w])
	b.RetrieveAll()
	return out
}

// RetrieveAsString consumes the first n readable bytes and returns them as a
// string.
func (b *Buffer) RetrieveAsString(n int) (string, error) {
	p, err := b.PeekN(n)
	if err != nil {
		return "", err
	}
	s := string(p)
	return s, b.Retrieve(n)
}

// RetrieveAllAsString consumes all readable bytes and returns them as a
// string.
func (b *Buffer) RetrieveAllAsString() string {
	s := string(b.buf[b.r:b.w])
	b.RetrieveAll()
	return s
}

// ReadUint8 consumes one byte.
func (b *Buffer) ReadUint8() (uint8, error) {
	v, err := b.PeekUint8()
	if err != nil {
		return 0, err
	}
	return v, b.Retrieve(1)
}

// ReadUint16 consumes 2 bytes decoded in network byte order.
func (b *Buffer) ReadUint16() (uint16, error) {
	v, err := b.PeekUint16()
	if err != nil {
		return 0, err
	}
	return v, b.Retrieve(2)
}

// ReadUint32 consumes 4 bytes decoded in network byte order.
func (b *Buffer) ReadUint32() (uint32, error) {
	v, err := b.PeekUint32()
	if err != nil {
		return 0, err
	}
	return v, b.Retrieve(4)
}

// ReadUint64 consumes 8 bytes decoded in network byte order.
func (b *Buffer) ReadUint64() (uint64, error) {
	v, err := b.PeekUint64()
	if err != nil {
		return 0, err
	}
	return v, b.Retrieve(8)
}

// ReadInt8 consumes one byte as a signed integer.
func (b *Buffer) ReadInt8() (int8, error) {
	v, err := b.ReadUint8()
	return int8(v), err
}

// ReadInt16 consumes 2 bytes decoded in network byte order.
func (b *Buffer) ReadInt16() (int16, error) {
	v, err := b.ReadUint16()
	return int16(v), err
}

// ReadInt32 consumes 4 bytes decoded in network byte order.
func (b *Buffer) ReadInt32() (int32, error) {
	v, err := b.ReadUint32()
	return int32(v), err
}

// ReadInt64 consumes 8 bytes decoded in network byte order.
func (b *Buffer) ReadInt64() (int64, error) {
	v, err := b.ReadUint64()
	return int64(v), err
}
