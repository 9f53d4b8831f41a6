// Package sheet turns uploaded spreadsheet files (CSV or XLSX) into the
// header row and raw rows the import pipeline consumes.
package sheet

import (
	"io"
	"unicode/utf8"
)

// bomSkippingReader strips the UTF-8 BOM (0xEF 0xBB 0xBF) that Windows
// exports commonly prefix.
type bomSkippingReader struct {
	reader  io.Reader
	checked bool
	buf     [3]byte
	pending []byte
}

func newBOMSkippingReader(r io.Reader) *bomSkippingReader {
	return &bomSkippingReader{reader: r}
}

func (r *bomSkippingReader) Read(p []byte) (int, error) {
	if !r.checked {
		r.checked = true

		n, err := io.ReadFull(r.reader, r.buf[:])
		if err == io.ErrUnexpectedEOF {
			err = io.EOF
		}
		if n > 0 {
			head := r.buf[:n]
			if n == 3 && head[0] == 0xEF && head[1] == 0xBB && head[2] == 0xBF {
				head = nil
			}
			r.pending = head
		}
		if err != nil && err != io.EOF && n == 0 {
			return 0, err
		}
	}

	if len(r.pending) > 0 {
		n := copy(p, r.pending)
		r.pending = r.pending[n:]
		return n, nil
	}

	return r.reader.Read(p)
}

// utf8SanitizingReader replaces invalid UTF-8 bytes with '?' on the fly, so
// one bad export encoding cannot poison the CSV parser. Multi-byte runes
// split across Read calls are buffered until complete.
type utf8SanitizingReader struct {
	reader  io.Reader
	pending []byte
	eof     bool
}

func newUTF8SanitizingReader(r io.Reader) *utf8SanitizingReader {
	return &utf8SanitizingReader{
		reader:  r,
		pending: make([]byte, 0, utf8.UTFMax),
	}
}

func (s *utf8SanitizingReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	// Loop until at least one byte comes out. A chunk ending inside a
	// multi-byte rune can be buffered in its entirety; returning (0, nil)
	// there would trip no-progress detection in wrapped readers.
	for {
		offset := copy(p, s.pending)
		s.pending = s.pending[:0]

		n, err := s.reader.Read(p[offset:])
		n += offset
		if err == io.EOF {
			s.eof = true
		}
		if n == 0 {
			return 0, err
		}

		if allASCII(p[:n]) {
			return n, err
		}
		if out := s.sanitize(p[:n]); out > 0 || err != nil {
			return out, err
		}
	}
}

func (s *utf8SanitizingReader) sanitize(data []byte) int {
	write := 0
	for read := 0; read < len(data); {
		r, size := utf8.DecodeRune(data[read:])

		if !s.eof && read+runeLen(data[read]) > len(data) {
			s.pending = append(s.pending, data[read:]...)
			return write
		}

		if r == utf8.RuneError && size == 1 {
			data[write] = '?'
			write++
			read++
			continue
		}
		copy(data[write:], data[read:read+size])
		write += size
		read += size
	}
	return write
}

func allASCII(data []byte) bool {
	for _, b := range data {
		if b >= 0x80 {
			return false
		}
	}
	return true
}

// runeLen returns the declared length of a UTF-8 sequence starting with b,
// or 1 for bytes that cannot start a sequence.
func runeLen(b byte) int {
	switch {
	case b < 0x80:
		return 1
	case b < 0xC0:
		return 1 // stray continuation byte
	case b < 0xE0:
		return 2
	case b < 0xF0:
		return 3
	default:
		return 4
	}
}
