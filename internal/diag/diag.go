// Package diag provides the optional trace plumbing for the CLI's -debug
// flag. The lexer, parser and evaluator accept a Sink so the core pipeline
// never depends on a concrete logging library (see SPEC_FULL.md §4.9).
package diag

// Sink receives low-volume trace records from the pipeline. A nil Sink is
// never called: the constructors that accept one substitute Noop() for nil
// when tracing is disabled.
type Sink interface {
	Tokenized(count int)
	Parsed(stmtDesc string)
	Called(name string, depth int)
}

type noopSink struct{}

func (noopSink) Tokenized(int)      {}
func (noopSink) Parsed(string)      {}
func (noopSink) Called(string, int) {}

// Noop returns a Sink that discards every record.
func Noop() Sink { return noopSink{} }
