package source

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"

	"github.com/alraulpm-lang/checador/internal/lookup/model"
	logx "github.com/alraulpm-lang/checador/pkg/logger"
)

// LineSource reads one code per line, the way keyboard-wedge scanners type
// into a terminal. Blank lines are ignored.
type LineSource struct {
	name string
	r    io.Reader
	done chan struct{}
}

func NewLineSource(name string, r io.Reader) *LineSource {
	return &LineSource{name: name, r: r, done: make(chan struct{})}
}

func (s *LineSource) Name() string { return s.name }

// Done is closed once the reader is exhausted or delivery stopped.
func (s *LineSource) Done() <-chan struct{} { return s.done }

func (s *LineSource) Start(ctx context.Context, q *Queue) error {
	if s.r == nil {
		return errors.New("no input attached")
	}
	go s.run(ctx, q)
	return nil
}

func (s *LineSource) run(ctx context.Context, q *Queue) {
	defer close(s.done)
	sc := bufio.NewScanner(s.r)
	for sc.Scan() {
		code := strings.TrimSpace(sc.Text())
		if code == "" {
			continue
		}
		if err := q.Enqueue(ctx, model.NewDecodeEvent(s.name, code)); err != nil {
			logx.Debug().Err(err).Str("source", s.name).Msg("line source stopping")
			return
		}
	}
	if err := sc.Err(); err != nil {
		logx.Error().Err(err).Str("source", s.name).Msg("line source read failed")
	}
}
