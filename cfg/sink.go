package cfg

import (
	"log"
	"os"
	"sort"

	"bitbucket.org/zombiezen/cardcpx/natsort"
	"github.com/mewkiz/pkg/term"
)

// Sink receives diagnostics the core would otherwise have to drop or panic
// on: unreachable nodes excluded from an interval build, and two-way
// conditionals whose follow node could not be resolved. tag identifies the
// kind of diagnostic ("unreachable", "unresolved-follow"), addr identifies
// the node it concerns, and detail carries a human-readable explanation.
// The core never constructs a Sink itself; every operation that can emit a
// diagnostic takes one as an explicit, possibly-nil argument and reports
// only to that one.
type Sink interface {
	Warn(tag, addr, detail string)
}

// stderrSink is the same shape of logger the teacher built ad hoc in
// flow/interval.go and cfa/cfa.go: a colored tag prefix over log.New.
type stderrSink struct {
	loggers map[string]*log.Logger
}

// NewStderrSink returns a Sink that writes each warning to stderr as
// "<tag>: <addr>: <detail>", with the tag colored the way the teacher
// colors its "interval:"/"cfa:" prefixes. It is a convenience for callers;
// the core never uses it on its own.
func NewStderrSink() Sink {
	return &stderrSink{loggers: make(map[string]*log.Logger)}
}

func (s *stderrSink) Warn(tag, addr, detail string) {
	l, ok := s.loggers[tag]
	if !ok {
		l = log.New(os.Stderr, term.RedBold(tag+":")+" ", 0)
		s.loggers[tag] = l
	}
	l.Printf("%s: %s", addr, detail)
}

// diagnostic is one recorded Warn call.
type diagnostic struct {
	tag, addr, detail string
}

// BufferedSink accumulates diagnostics instead of emitting them
// immediately. Flush hands them to an underlying Sink in natural-sort
// order of addr (hex addresses sort "0x10" before "0x2" lexically, which
// reads wrong in a report; natural order fixes that), the way a caller
// producing an end-of-run diagnostic report would want them grouped.
type BufferedSink struct {
	diags []diagnostic
}

// NewBufferedSink returns an empty BufferedSink.
func NewBufferedSink() *BufferedSink {
	return &BufferedSink{}
}

func (b *BufferedSink) Warn(tag, addr, detail string) {
	b.diags = append(b.diags, diagnostic{tag, addr, detail})
}

// Flush forwards every buffered diagnostic to sink in natural-sort order
// of addr, then clears the buffer.
func (b *BufferedSink) Flush(sink Sink) {
	sort.SliceStable(b.diags, func(i, j int) bool {
		return natsort.Less(b.diags[i].addr, b.diags[j].addr)
	})
	for _, d := range b.diags {
		sink.Warn(d.tag, d.addr, d.detail)
	}
	b.diags = nil
}
