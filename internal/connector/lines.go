package connector

import (
	"bufio"
	"bytes"
	"errors"
	"io"

	"github.com/tidwall/gjson"

	"github.com/crimson-sun/journal/internal/model"
)

// MaxLineSize bounds a single journal line. Statistics records are the
// longest the game writes and stay well below it. Longer lines are cut and
// fail to decode as malformed input.
const MaxLineSize = 16 << 20

// KindOf peeks at the "event" field of a line without decoding it. ok is
// false when the line is not valid JSON or has no string "event" field.
func KindOf(text string) (kind string, ok bool) {
	if !gjson.Valid(text) {
		return "", false
	}
	v := gjson.Get(text, "event")
	if v.Type != gjson.String {
		return "", false
	}
	return v.Str, true
}

// ScanLines reads r line by line, numbering from 1, and calls fn for each.
// A trailing line without a newline is included. A line longer than
// MaxLineSize is cut to that size and still counts as one line, so it fails
// to decode on its own without shifting the numbers of the lines after it.
// Scanning stops early when fn returns false.
func ScanLines(r io.Reader, source string, fn func(model.RawLog) bool) error {
	br := bufio.NewReaderSize(r, 64*1024)
	line := 0
	for {
		text, ok, err := readLine(br)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		line++
		if !fn(model.RawLog{Source: source, Line: line, Text: text}) {
			return nil
		}
	}
}

// readLine returns the next line without its terminator. Bytes past
// MaxLineSize are read and discarded. ok is false at end of input.
func readLine(br *bufio.Reader) (text string, ok bool, err error) {
	var buf []byte
	for {
		chunk, err := br.ReadSlice('\n')
		if room := MaxLineSize - len(buf); room > 0 {
			buf = append(buf, chunk[:min(len(chunk), room)]...)
		}
		switch {
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case errors.Is(err, io.EOF):
			if len(buf) == 0 {
				return "", false, nil
			}
			return trimEOL(buf), true, nil
		case err != nil:
			return "", false, err
		}
		return trimEOL(buf), true, nil
	}
}

func trimEOL(b []byte) string {
	b = bytes.TrimSuffix(b, []byte("\n"))
	return string(bytes.TrimSuffix(b, []byte("\r")))
}

// ClipLine cuts text to MaxLineSize.
func ClipLine(text string) string {
	if len(text) > MaxLineSize {
		return text[:MaxLineSize]
	}
	return text
}
