package diag

import "github.com/juju/loggo"

// loggoSink routes trace records through a juju/loggo logger. Constructed
// only by the CLI when -debug is passed (see cmd/lox).
type loggoSink struct {
	logger loggo.Logger
}

// NewLoggo returns a Sink backed by a loggo logger named "lox", configured
// at debug level so every record is emitted.
func NewLoggo() Sink {
	logger := loggo.GetLogger("lox")
	logger.SetLogLevel(loggo.DEBUG)
	return &loggoSink{logger: logger}
}

func (s *loggoSink) Tokenized(count int) {
	s.logger.Debugf("lexer: produced %d tokens", count)
}

func (s *loggoSink) Parsed(stmtDesc string) {
	s.logger.Debugf("parser: %s", stmtDesc)
}

func (s *loggoSink) Called(name string, depth int) {
	s.logger.Debugf("call: %s (depth %d)", name, depth)
}
