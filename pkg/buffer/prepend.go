package buffer

import "encoding/binary"

// Prepend copies p in front of the readable region. It fails with
// ErrPrependOverflow, leaving the buffer unchanged, if p does not fit in the
// prependable region.
func (b *Buffer) Prepend(p []byte) error {
	if len(p) > b.r {
		return errPrepend(len(p), b.r)
	}
	b.r -= len(p)
	copy(b.buf[b.r:], p)
	return nil
}

func (b *Buffer) prependN(n int) ([]byte, error) {
	if n > b.r {
		return nil, errPrepend(n, b.r)
	}
	b.r -= n
	return b.buf[b.r : b.r+n], nil
}

// PrependUint8 prepends v.
func (b *Buffer) PrependUint8(v uint8) error {
	p, err := b.prependN(1)
	if err != nil {
		return err
	}
	p[0] = v
	return nil
}

// PrependUint16 prepends v in network byte order.
func (b *Buffer) PrependUint16(v uint16) error {
	p, err := b.prependN(2)
	if err != nil {
		return err
	}
	binary.BigEndian.PutUint16(p, v)
	return nil
}

// PrependUint32 prepends v in network byte order.
func (b *Buffer) PrependUint32(v uint32) error {
	p, err := b.prependN(4)
	if err != nil {
		return err
	}
	binary.BigEndian.PutUint32(p, v)
	return nil
}

// PrependUint64 prepends v in network byte order.
func (b *Buffer) PrependUint64(v uint64) error {
	p, err := b.prependN(8)
	if err != nil {
		return err
	}
	binary.BigEndian.PutUint64(p, v)
	return nil
}

// PrependInt8 prepends v.
func (b *Buffer) PrependInt8(v int8) error { return b.PrependUint8(uint8(v)) }

// PrependInt16 prepends v in network byte order.
func (b *Buffer) PrependInt16(v int16) error { return b.PrependUint16(uint16(v)) }

// PrependInt32 prepends v in network byte order.
func (b *Buffer) PrependInt32(v int32) error { return b.PrependUint32(uint32(v)) }

// PrependInt64 prepends v in network byte order.
func (b *Buffer) PrependInt64(v int64) error { return b.PrependUint64(uint64(v)) }
