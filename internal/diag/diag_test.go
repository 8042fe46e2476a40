package diag

import "testing"

// TestNoopSinkNeverPanics exercises every Sink method through the Noop
// implementation; this is the sink every core package falls back to when
// the CLI's -debug flag is off.
func TestNoopSinkNeverPanics(t *testing.T) {
	s := Noop()
	s.Tokenized(10)
	s.Parsed("print x;")
	s.Called("f", 0)
}
