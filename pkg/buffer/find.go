package buffer

import "bytes"

var (
	crlf = []byte("\r\n")
	eol  = []byte("\n")
)

// Find returns the offset of the first occurrence of sep in the readable
// region, relative to the start of the readable region, or -1 if sep is not
// present.
func (b *Buffer) Find(sep []byte) int {
	return b.FindFrom(0, sep)
}

// FindFrom is like Find but starts searching at offset start of the readable
// region. The returned offset is still relative to the start of the readable
// region. A start outside [0, ReadableBytes()] yields -1.
func (b *Buffer) FindFrom(start int, sep []byte) int {
	if start < 0 || start > b.ReadableBytes() {
		return -1
	}
	i := bytes.Index(b.buf[b.r+start:b.w], sep)
	if i < 0 {
		return -1
	}
	return start + i
}

// FindCRLF returns the offset of the first "\r\n" in the readable region, or
// -1.
func (b *Buffer) FindCRLF() int {
	return b.FindFrom(0, crlf)
}

// FindCRLFFrom returns the offset of the first "\r\n" at or after start, or
// -1.
func (b *Buffer) FindCRLFFrom(start int) int {
	return b.FindFrom(start, crlf)
}

// FindEOL returns the offset of the first '\n' in the readable region, or -1.
func (b *Buffer) FindEOL() int {
	return b.FindFrom(0, eol)
}

// FindEOLFrom returns the offset of the first '\n' at or after start, or -1.
func (b *Buffer) FindEOLFrom(start int) int {
	return b.FindFrom(start, eol)
}
