package model

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

const redactedFID = "F~~~~~~"

// FID is a commander's frontier account id. The raw id is kept as decoded;
// every printed or serialized rendering is masked.
type FID string

// Value returns the raw, unmasked id.
func (f FID) Value() string { return string(f) }

func (f FID) String() string { return redactedFID }

func (f FID) GoString() string { return strconv.Quote(redactedFID) }

// Format masks the id for every fmt verb, including %#v inside structs.
func (f FID) Format(s fmt.State, verb rune) {
	if verb == 'q' || (verb == 'v' && s.Flag('#')) {
		io.WriteString(s, strconv.Quote(redactedFID))
		return
	}
	io.WriteString(s, redactedFID)
}

func (f FID) MarshalJSON() ([]byte, error) { return json.Marshal(redactedFID) }

func (f FID) MarshalYAML() (any, error) { return redactedFID, nil }
