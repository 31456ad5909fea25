package loader

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	errx "github.com/alraulpm-lang/checador/internal/core/error"
	"github.com/alraulpm-lang/checador/internal/lookup/csvparse"
	"github.com/alraulpm-lang/checador/internal/lookup/messages"
	"github.com/alraulpm-lang/checador/internal/lookup/model"
	logx "github.com/alraulpm-lang/checador/pkg/logger"
)

// Reporter receives the load progress as user-facing feedback.
type Reporter interface {
	SetFeedback(message string, severity model.Severity)
}

// Store is the catalog being populated.
type Store interface {
	Load(records []model.Record)
	Fail()
}

// Loader performs exactly one fetch of the product CSV per Load call.
type Loader struct {
	client *http.Client
	target string
	parser *csvparse.Parser
	store  Store
	report Reporter
	text   messages.Set
}

// New builds a Loader. client may be nil, in which case one honoring
// cfg.FetchTimeout is created (zero means no timeout).
func New(cfg model.SourceConfig, parser *csvparse.Parser, store Store, report Reporter, client *http.Client) (*Loader, error) {
	if parser == nil || store == nil || report == nil {
		return nil, errors.New("loader: parser, store and reporter are required")
	}
	target, err := FetchURL(cfg)
	if err != nil {
		return nil, err
	}
	if client == nil {
		client = &http.Client{Timeout: cfg.FetchTimeout}
	}
	return &Loader{client: client, target: target, parser: parser, store: store, report: report, text: messages.English}, nil
}

// WithMessages switches the feedback language.
func (l *Loader) WithMessages(text messages.Set) *Loader {
	l.text = text
	return l
}

// FetchURL resolves the URL actually requested: the source itself, or the
// relay with the source passed as a query parameter.
func FetchURL(cfg model.SourceConfig) (string, error) {
	if cfg.URL == "" {
		return "", errors.New("csv source url is empty")
	}
	if _, err := url.ParseRequestURI(cfg.URL); err != nil {
		return "", fmt.Errorf("parse csv source url: %w", err)
	}
	if cfg.RelayURL == "" {
		return cfg.URL, nil
	}

	relay, err := url.Parse(cfg.RelayURL)
	if err != nil {
		return "", fmt.Errorf("parse csv relay url: %w", err)
	}
	param := cfg.RelayParam
	if param == "" {
		param = "url"
	}
	q := relay.Query()
	q.Set(param, cfg.URL)
	relay.RawQuery = q.Encode()
	return relay.String(), nil
}

// Target returns the resolved fetch URL.
func (l *Loader) Target() string {
	return l.target
}

// Load fetches, parses and installs the catalog, reporting each terminal state.
// It returns the number of records loaded.
func (l *Loader) Load(ctx context.Context) (int, error) {
	l.report.SetFeedback(l.text.Loading, model.SeverityInfo)

	records, err := l.fetch(ctx)
	if err != nil {
		return 0, l.fail(err)
	}

	if len(records) == 0 {
		return 0, l.fail(errx.EmptyCatalog())
	}
	l.store.Load(records)

	logx.Info().Int("records", len(records)).Str("url", l.target).Msg("product catalog loaded")
	l.report.SetFeedback(l.text.Loaded(len(records)), model.SeveritySuccess)
	return len(records), nil
}

func (l *Loader) fetch(ctx context.Context) ([]model.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.target, nil)
	if err != nil {
		return nil, errx.Network(err, 0)
	}
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.1")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, errx.Network(err, 0)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errx.Network(nil, resp.StatusCode)
	}

	records, err := l.parser.ParseReader(resp.Body)
	if err != nil {
		return nil, errx.Network(err, resp.StatusCode)
	}
	return records, nil
}

func (l *Loader) fail(err error) error {
	l.store.Fail()
	logx.Error().Err(err).Str("url", l.target).Str("kind", string(errx.KindOf(err))).Msg("product catalog load failed")
	l.report.SetFeedback(l.text.ForError(err), model.SeverityError)
	return err
}
