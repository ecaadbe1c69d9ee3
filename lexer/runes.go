package lexer

import (
	"fmt"
	"io"
	"unicode/utf8"
)

// runeReader is a cursor over a file's raw bytes that supports marking a
// span's start and rewinding by one rune, which is all the lookahead the
// scanner below ever needs.
type runeReader struct {
	data []byte
	pos  int
	err  error
	mark int
}

func (rr *runeReader) readRune() (r rune, size int, err error) {
	if rr.err != nil {
		return 0, 0, rr.err
	}
	if rr.pos == len(rr.data) {
		rr.err = io.EOF
		return 0, 0, rr.err
	}
	r, sz := utf8.DecodeRune(rr.data[rr.pos:])
	if r == utf8.RuneError && sz <= 1 {
		rr.err = fmt.Errorf("invalid UTF-8 at offset %d", rr.pos)
		return 0, 0, rr.err
	}
	rr.pos += sz
	return r, sz, nil
}

func (rr *runeReader) peekRune() (r rune, size int) {
	if rr.pos >= len(rr.data) {
		return 0, 0
	}
	r, sz := utf8.DecodeRune(rr.data[rr.pos:])
	return r, sz
}

func (rr *runeReader) offset() int { return rr.pos }

func (rr *runeReader) unreadRune(sz int) {
	newPos := rr.pos - sz
	if newPos < rr.mark {
		panic("lexer: unread past mark")
	}
	rr.pos = newPos
}

func (rr *runeReader) setMark()        { rr.mark = rr.pos }
func (rr *runeReader) markedText() string { return string(rr.data[rr.mark:rr.pos]) }
