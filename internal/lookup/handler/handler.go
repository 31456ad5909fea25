package handler

import (
	"context"

	"github.com/alraulpm-lang/checador/internal/lookup/messages"
	"github.com/alraulpm-lang/checador/internal/lookup/model"
	logx "github.com/alraulpm-lang/checador/pkg/logger"
)

// Finder resolves a code against the catalog.
type Finder interface {
	Lookup(code string) (model.Record, model.Outcome)
}

// View is the part of the view controller the handler drives.
type View interface {
	ShowDetails(d model.DisplayState)
	Back()
	SetFeedback(message string, severity model.Severity)
	Active() model.ViewID
}

// State of the scan handler, derived from the active view.
type State int

const (
	Scanning State = iota
	Showing
)

func (s State) String() string {
	if s == Showing {
		return "showing"
	}
	return "scanning"
}

// Handler turns decode events into view changes. It never pauses the sources:
// events that arrive while a product is shown are processed like any other.
type Handler struct {
	finder  Finder
	view    View
	display model.DisplayConfig
	text    messages.Set
}

func New(finder Finder, view View, display model.DisplayConfig) *Handler {
	return &Handler{finder: finder, view: view, display: display, text: messages.For(display.Language)}
}

// Handle processes one decode event and returns the lookup outcome.
func (h *Handler) Handle(ev model.DecodeEvent) model.Outcome {
	rec, outcome := h.finder.Lookup(ev.Code)
	switch outcome {
	case model.OutcomeFound:
		h.view.ShowDetails(BuildDisplay(rec, h.display))
		logx.Debug().Str("code", ev.Code).Str("source", ev.Source).Str("event_id", ev.ID).Msg("product displayed")
	case model.OutcomeLoading:
		h.view.SetFeedback(h.text.StillLoading, model.SeverityInfo)
		logx.Debug().Str("code", ev.Code).Msg("decode before catalog ready")
	default:
		h.view.SetFeedback(h.text.NotFound(ev.Code), model.SeverityError)
		logx.Info().Str("code", ev.Code).Str("source", ev.Source).Msg("product not found")
	}
	return outcome
}

// Back returns to Scanning unconditionally.
func (h *Handler) Back() {
	h.view.Back()
}

func (h *Handler) State() State {
	if h.view.Active() == model.DetailsView {
		return Showing
	}
	return Scanning
}

// Run consumes events one at a time until the channel closes or ctx ends.
func (h *Handler) Run(ctx context.Context, events <-chan model.DecodeEvent) {
	for {
		select {
		case <-ctx.Done():
			logx.Debug().Msg("context canceled, scan handler stopping")
			return
		case ev, ok := <-events:
			if !ok {
				logx.Debug().Msg("event queue closed, scan handler stopping")
				return
			}
			h.Handle(ev)
		}
	}
}
