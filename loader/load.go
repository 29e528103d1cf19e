package loader

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/guiguan/caster"
	"github.com/npillmayer/bptree"
)

// Default settings of a Loader.
const (
	DefaultBatchSize = 1000
	DefaultSeparator = " "
)

// Progress is broadcast to subscribers while loading.
type Progress struct {
	Lines    int  // lines read so far
	Inserted int  // keys new to the tree
	Replaced int  // keys whose value has been overwritten
	Skipped  int  // blank lines, comments and malformed lines
	Done     bool // true for the final report of a Load
}

func (p Progress) String() string {
	return fmt.Sprintf("lines=%d inserted=%d replaced=%d skipped=%d done=%v",
		p.Lines, p.Inserted, p.Replaced, p.Skipped, p.Done)
}

// Loader reads key/value lines into trees. A Loader may be used for more than
// one Load, but not for concurrent ones.
type Loader struct {
	batch int
	sep   string
	cast  *caster.Caster // broadcaster for progress reports
}

// Option configures a Loader.
type Option func(*Loader)

// WithBatchSize sets the number of lines between two progress reports.
// Values < 1 are ignored.
func WithBatchSize(n int) Option {
	return func(l *Loader) {
		if n > 0 {
			l.batch = n
		}
	}
}

// WithSeparator sets the string separating keys from values. The empty
// string is ignored.
func WithSeparator(sep string) Option {
	return func(l *Loader) {
		if sep != "" {
			l.sep = sep
		}
	}
}

// New creates a loader.
func New(opts ...Option) *Loader {
	l := &Loader{
		batch: DefaultBatchSize,
		sep:   DefaultSeparator,
		cast:  caster.New(nil),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Subscribe returns a channel of Progress messages. The subscription ends
// when ctx is done or the loader is closed. Subscribers have to drain their
// channel, otherwise loading will stall.
func (l *Loader) Subscribe(ctx context.Context) (<-chan any, bool) {
	ch, ok := l.cast.Sub(ctx, 16)
	return ch, ok
}

// Close ends all subscriptions.
func (l *Loader) Close() {
	l.cast.Close()
}

// record is a line of input as seen by the scanning goroutine.
type record struct {
	key, value string
	skip       bool
}

// Load reads lines from r and inserts them into tree. Keys and values are
// trimmed of surrounding white space. Lines without a separator or with an
// empty key are skipped.
//
// Load returns the final progress and the first read error, or ctx.Err() if
// loading has been cancelled. Entries inserted before an error stay in the
// tree.
func (l *Loader) Load(ctx context.Context, r io.Reader, tree *bptree.Tree[string, string]) (Progress, error) {
	var p Progress
	if tree == nil {
		return p, fmt.Errorf("%w: tree is nil", bptree.ErrInvalidConfig)
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	records := make(chan record, l.batch)
	errc := make(chan error, 1)
	go l.scan(ctx, r, records, errc)
	for {
		select {
		case <-ctx.Done():
			tracer().Infof("loading cancelled after %d lines", p.Lines)
			return p, ctx.Err()
		case rec, ok := <-records:
			if !ok {
				err := <-errc
				p.Done = true
				l.cast.Pub(p)
				tracer().Debugf("loading finished: %s", p)
				return p, err
			}
			p.Lines++
			if rec.skip {
				p.Skipped++
			} else if _, replaced := tree.Insert(rec.key, rec.value); replaced {
				p.Replaced++
			} else {
				p.Inserted++
			}
			if p.Lines%l.batch == 0 {
				l.cast.Pub(p)
			}
		}
	}
}

// scan runs on its own goroutine. It closes records when input is exhausted
// and reports the scanner error, if any, on errc.
func (l *Loader) scan(ctx context.Context, r io.Reader, records chan<- record, errc chan<- error) {
	defer close(records)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		rec := l.parse(scanner.Text())
		select {
		case records <- rec:
		case <-ctx.Done():
			errc <- ctx.Err()
			return
		}
	}
	if err := scanner.Err(); err != nil {
		tracer().Errorf("error reading input: %v", err)
		errc <- fmt.Errorf("loader: %w", err)
		return
	}
	errc <- nil
}

func (l *Loader) parse(line string) record {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return record{skip: true}
	}
	key, value, found := strings.Cut(line, l.sep)
	key = strings.TrimSpace(key)
	if !found || key == "" {
		return record{skip: true}
	}
	return record{key: key, value: strings.TrimSpace(value)}
}

// LoadFile opens a file, which must be a regular text file, and loads it
// into tree.
func (l *Loader) LoadFile(ctx context.Context, name string, tree *bptree.Tree[string, string]) (Progress, error) {
	fi, err := os.Stat(name)
	if err != nil {
		return Progress{}, err
	} else if !fi.Mode().IsRegular() {
		return Progress{}, fmt.Errorf("loader: %s is not a regular file", name)
	}
	file, err := os.Open(name) // just open for read access
	if err != nil {
		return Progress{}, err
	}
	defer file.Close()
	tracer().P("file", name).Infof("loading %d bytes", fi.Size())
	return l.Load(ctx, file, tree)
}
