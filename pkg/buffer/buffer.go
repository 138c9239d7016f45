package buffer

// Default sizes used by New when no option overrides them. Collaborators may
// rely on PrependableBytes() >= DefaultPrependSize right after construction.
const (
	// DefaultPrependSize is the number of bytes reserved in front of the
	// readable region for headers.
	DefaultPrependSize = 8

	// DefaultInitialSize is the initial writable capacity.
	DefaultInitialSize = 1024
)

// Buffer is a growable byte buffer for assembling and parsing byte streams at
// a connection boundary. Its storage is split by two indices into three
// regions:
//
//	+-------------------+------------------+------------------+
//	| prependable bytes |  readable bytes  |  writable bytes  |
//	|                   |     (CONTENT)    |                  |
//	+-------------------+------------------+------------------+
//	|                   |                  |                  |
//	0      <=      readerIndex   <=   writerIndex    <=     size
//
// Appends land in the writable region and advance the writer index. Retrieves
// advance the reader index without moving memory. Prepends write into the
// prependable region and move the reader index back, so a header can be put
// in front of already buffered content without copying it.
//
// When an append does not fit, the buffer first tries to compact: the
// readable region is moved back to just after the reserved prepend area,
// reclaiming space from consumed bytes. Only when that is not enough is the
// storage reallocated.
//
// A Buffer is meant to be owned by a single goroutine. It does no locking.
//
// Slices returned by Peek and friends alias the buffer's storage and are only
// valid until the next call that mutates the buffer.
type Buffer struct {
	buf []byte
	r   int
	w   int

	prepend int
	initial int

	grows       uint64
	compactions uint64
}

// Option configures a Buffer created by New.
type Option func(*Buffer)

// WithInitialSize sets the initial writable capacity. Negative values are
// treated as zero.
func WithInitialSize(n int) Option {
	return func(b *Buffer) {
		b.initial = max(n, 0)
	}
}

// WithPrependSize sets the number of bytes reserved for prepending. Negative
// values are treated as zero.
func WithPrependSize(n int) Option {
	return func(b *Buffer) {
		b.prepend = max(n, 0)
	}
}

// New creates a Buffer with DefaultInitialSize writable bytes and
// DefaultPrependSize prependable bytes unless overridden by opts.
func New(opts ...Option) *Buffer {
	b := &Buffer{
		prepend: DefaultPrependSize,
		initial: DefaultInitialSize,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.buf = make([]byte, b.prepend+b.initial)
	b.r = b.prepend
	b.w = b.prepend
	return b
}

// N creates a Buffer with n initial writable bytes and the default prepend
// reserve.
func N(n int) *Buffer {
	return New(WithInitialSize(n))
}

// PrependSize returns the reserved prepend size the buffer was created with.
func (b *Buffer) PrependSize() int { return b.prepend }

// InitialSize returns the initial writable capacity the buffer was created
// with.
func (b *Buffer) InitialSize() int { return b.initial }

// ReadableBytes returns the number of unread bytes.
func (b *Buffer) ReadableBytes() int { return b.w - b.r }

// WritableBytes returns the free space after the readable region.
func (b *Buffer) WritableBytes() int { return len(b.buf) - b.w }

// PrependableBytes returns the space in front of the readable region.
func (b *Buffer) PrependableBytes() int { return b.r }

// Len returns the number of unread bytes. It is the same as ReadableBytes.
func (b *Buffer) Len() int { return b.w - b.r }

// Size returns the length of the underlying storage, which always equals
// PrependableBytes() + ReadableBytes() + WritableBytes().
func (b *Buffer) Size() int { return len(b.buf) }

// Cap returns the capacity of the underlying storage. It is at least Size().
func (b *Buffer) Cap() int { return cap(b.buf) }

// EnsureWritable makes sure at least n bytes can be written without further
// allocation.
func (b *Buffer) EnsureWritable(n int) {
	if b.WritableBytes() < n {
		b.makeSpace(n)
	}
}

// makeSpace frees at least n writable bytes, compacting in place when the
// consumed prefix plus the tail is large enough and growing otherwise.
func (b *Buffer) makeSpace(n int) {
	if b.WritableBytes()+b.PrependableBytes() < b.prepend+n {
		b.grow(n)
		return
	}
	readable := b.ReadableBytes()
	copy(b.buf[b.prepend:], b.buf[b.r:b.w])
	b.r = b.prepend
	b.w = b.prepend + readable
	b.compactions++
}

// grow extends the storage to exactly w+n bytes. The prependable and
// readable regions keep their offsets.
func (b *Buffer) grow(n int) {
	size := b.w + n
	if size <= cap(b.buf) {
		b.buf = b.buf[:size]
		return
	}
	c := 2 * cap(b.buf)
	if c < size {
		c = size
	}
	buf := make([]byte, size, c)
	copy(buf, b.buf[:b.w])
	b.buf = buf
	b.grows++
}

// WritableSlice returns the writable region. Bytes written into it become
// readable after a call to HasWritten. Call EnsureWritable first to size it.
func (b *Buffer) WritableSlice() []byte {
	return b.buf[b.w:]
}

// HasWritten marks n bytes of the writable region as readable.
func (b *Buffer) HasWritten(n int) error {
	if n < 0 {
		return errNegative("has written", n)
	}
	if n > b.WritableBytes() {
		return errWritable("has written", n, b.WritableBytes())
	}
	b.w += n
	return nil
}

// Unwrite drops the last n readable bytes.
func (b *Buffer) Unwrite(n int) error {
	if n < 0 {
		return errNegative("unwrite", n)
	}
	if n > b.ReadableBytes() {
		return errReadable("unwrite", n, b.ReadableBytes())
	}
	b.w -= n
	return nil
}

// Swap exchanges the contents and configuration of b and other.
func (b *Buffer) Swap(other *Buffer) {
	*b, *other = *other, *b
}

// Shrink reallocates the storage to the buffer's initial footprint, or to the
// readable bytes plus reserve if that is larger, and moves the content to
// just after the prepend area. It is the only operation that reduces Size.
func (b *Buffer) Shrink(reserve int) {
	readable := b.ReadableBytes()
	buf := make([]byte, b.prepend+max(b.initial, readable+max(reserve, 0)))
	copy(buf[b.prepend:], b.buf[b.r:b.w])
	b.buf = buf
	b.r = b.prepend
	b.w = b.prepend + readable
}

// Stats is a snapshot of a Buffer's regions and growth counters.
type Stats struct {
	Prependable int    `json:"prependable" yaml:"prependable"`
	Readable    int    `json:"readable" yaml:"readable"`
	Writable    int    `json:"writable" yaml:"writable"`
	Size        int    `json:"size" yaml:"size"`
	Capacity    int    `json:"capacity" yaml:"capacity"`
	Grows       uint64 `json:"grows" yaml:"grows"`
	Compactions uint64 `json:"compactions" yaml:"compactions"`
}

// Stats returns the current region sizes and growth counters.
func (b *Buffer) Stats() Stats {
	return Stats{
		Prependable: b.PrependableBytes(),
		Readable:    b.ReadableBytes(),
		Writable:    b.WritableBytes(),
		Size:        len(b.buf),
		Capacity:    cap(b.buf),
		Grows:       b.grows,
		Compactions: b.compactions,
	}
}
