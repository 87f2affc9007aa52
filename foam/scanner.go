/*
Copyright © 2026 the foamplot authors.
This file is part of foamplot.

foamplot is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

foamplot is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with foamplot.  If not, see <http://www.gnu.org/licenses/>.
*/

package foam

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
)

// scanner splits OpenFOAM dictionary text into tokens. Punctuation
// characters are returned as single-character tokens, quoted strings
// are returned with their quotes, and comments are skipped.
type scanner struct {
	b   []byte
	pos int
}

func isPunct(c byte) bool {
	switch c {
	case '(', ')', '{', '}', '[', ']', ';':
		return true
	}
	return false
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

// skipSpace advances past white space and comments.
func (s *scanner) skipSpace() {
	for s.pos < len(s.b) {
		c := s.b[s.pos]
		switch {
		case isSpace(c):
			s.pos++
		case bytes.HasPrefix(s.b[s.pos:], []byte("//")):
			i := bytes.IndexByte(s.b[s.pos:], '\n')
			if i < 0 {
				s.pos = len(s.b)
			} else {
				s.pos += i + 1
			}
		case bytes.HasPrefix(s.b[s.pos:], []byte("/*")):
			i := bytes.Index(s.b[s.pos+2:], []byte("*/"))
			if i < 0 {
				s.pos = len(s.b)
			} else {
				s.pos += i + 4
			}
		default:
			return
		}
	}
}

// peek returns the next non-space byte without consuming it.
func (s *scanner) peek() (byte, error) {
	s.skipSpace()
	if s.pos >= len(s.b) {
		return 0, io.EOF
	}
	return s.b[s.pos], nil
}

// next returns the next token.
func (s *scanner) next() (string, error) {
	s.skipSpace()
	if s.pos >= len(s.b) {
		return "", io.EOF
	}
	start := s.pos
	c := s.b[s.pos]
	switch {
	case isPunct(c):
		s.pos++
	case c == '"':
		i := bytes.IndexByte(s.b[s.pos+1:], '"')
		if i < 0 {
			return "", fmt.Errorf("unterminated string at offset %d", start)
		}
		s.pos += i + 2
	default:
		for s.pos < len(s.b) && !isSpace(s.b[s.pos]) && !isPunct(s.b[s.pos]) && s.b[s.pos] != '"' {
			s.pos++
		}
	}
	return string(s.b[start:s.pos]), nil
}

// expect consumes the next token, which must be want.
func (s *scanner) expect(want string) error {
	tok, err := s.next()
	if err != nil {
		return fmt.Errorf("expected %q: %v", want, err)
	}
	if tok != want {
		return fmt.Errorf("expected %q at offset %d, found %q", want, s.pos-len(tok), tok)
	}
	return nil
}

func (s *scanner) float() (float64, error) {
	tok, err := s.next()
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q at offset %d", tok, s.pos-len(tok))
	}
	return v, nil
}

func (s *scanner) int() (int, error) {
	tok, err := s.next()
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q at offset %d", tok, s.pos-len(tok))
	}
	return v, nil
}

// raw returns the next n bytes, starting immediately at the current
// position.
func (s *scanner) raw(n int) ([]byte, error) {
	if n < 0 || s.pos+n > len(s.b) {
		return nil, fmt.Errorf("binary block of %d bytes at offset %d runs past end of file", n, s.pos)
	}
	b := s.b[s.pos : s.pos+n]
	s.pos += n
	return b, nil
}
