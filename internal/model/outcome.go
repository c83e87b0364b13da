package model

// Outcome is the result of decoding one RawLog. Exactly one of Event and Err is set.
type Outcome struct {
	Source string
	Line   int
	Raw    string
	Event  Event
	Err    error
}

// Kind returns the event kind of a successful outcome, or "" when decoding failed.
func (o Outcome) Kind() string {
	if o.Event == nil {
		return ""
	}
	return o.Event.Kind()
}

// Failed reports whether the line could not be decoded.
func (o Outcome) Failed() bool {
	return o.Err != nil
}
