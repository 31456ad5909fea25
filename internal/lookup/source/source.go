package source

import (
	"context"

	errx "github.com/alraulpm-lang/checador/internal/core/error"
	"github.com/alraulpm-lang/checador/internal/lookup/messages"
	"github.com/alraulpm-lang/checador/internal/lookup/model"
	logx "github.com/alraulpm-lang/checador/pkg/logger"
)

// Source produces decode events. Start performs initialisation synchronously
// and returns its failure; delivery then continues in the background until ctx
// ends or the source is exhausted.
type Source interface {
	Name() string
	Start(ctx context.Context, q *Queue) error
}

// Reporter receives init failures as user-facing feedback.
type Reporter interface {
	SetFeedback(message string, severity model.Severity)
}

// StartAll starts every source. A source that fails to start is reported as a
// scanner init error and skipped; the others keep running. It returns the
// number of sources started.
func StartAll(ctx context.Context, q *Queue, report Reporter, text messages.Set, sources ...Source) int {
	started := 0
	for _, src := range sources {
		if err := src.Start(ctx, q); err != nil {
			initErr := errx.ScannerInit(src.Name(), err)
			logx.Error().Err(initErr).Str("source", src.Name()).Msg("decode source failed to start")
			report.SetFeedback(text.ForError(initErr), model.SeverityError)
			continue
		}
		logx.Info().Str("source", src.Name()).Msg("decode source started")
		started++
	}
	return started
}
