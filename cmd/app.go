package cmd

import (
	"context"
	"fmt"

	errx "github.com/alraulpm-lang/checador/internal/core/error"
	"github.com/alraulpm-lang/checador/internal/lookup/catalog"
	"github.com/alraulpm-lang/checador/internal/lookup/csvparse"
	"github.com/alraulpm-lang/checador/internal/lookup/handler"
	"github.com/alraulpm-lang/checador/internal/lookup/loader"
	"github.com/alraulpm-lang/checador/internal/lookup/messages"
	"github.com/alraulpm-lang/checador/internal/lookup/model"
	"github.com/alraulpm-lang/checador/internal/lookup/source"
	"github.com/alraulpm-lang/checador/internal/lookup/tools"
	"github.com/alraulpm-lang/checador/internal/lookup/view"
	logx "github.com/alraulpm-lang/checador/pkg/logger"
)

// app is the lookup pipeline shared by every command.
type app struct {
	cfg     AppConfig
	catalog *catalog.Catalog
	view    *view.Controller
	handler *handler.Handler
	loader  *loader.Loader
	queue   *source.Queue
	tools   *tools.Registry
	text    messages.Set
}

func buildApp(cfg AppConfig) (*app, error) {
	parser, err := csvparse.NewParser(cfg.Fields, cfg.Source.Delimiter)
	if err != nil {
		return nil, err
	}

	text := messages.For(cfg.Display.Language)
	cat := catalog.New(cfg.Fields.Code)
	vc := view.NewController()

	ld, err := loader.New(cfg.Source, parser, cat, vc, nil)
	if err != nil {
		return nil, fmt.Errorf("configure loader: %w", err)
	}
	ld.WithMessages(text)

	return &app{
		cfg:     cfg,
		catalog: cat,
		view:    vc,
		handler: handler.New(cat, vc, cfg.Display),
		loader:  ld,
		queue:   source.NewQueue(cfg.Server.QueueSize),
		tools:   tools.NewRegistry(cat, cfg.Display),
		text:    text,
	}, nil
}

// startLoad fires the single catalog fetch without waiting for it.
func (a *app) startLoad(ctx context.Context) {
	go func() {
		if _, err := a.loader.Load(ctx); err != nil {
			logx.Warn().Err(err).Msg("lookups will report products as not found")
		}
	}()
}

// startSources starts the configured decode sources plus extra. The returned
// func releases connections held by the sources.
func (a *app) startSources(ctx context.Context, extra ...source.Source) func() {
	sources := append([]source.Source{}, extra...)
	closers := []func(){}

	if a.cfg.Redis.Enabled() {
		rdb, err := a.cfg.Redis.New(ctx)
		if err != nil {
			initErr := errx.ScannerInit("redis", errx.WrapRedis(err))
			logx.Error().Err(initErr).Msg("redis decode source unavailable")
			a.view.SetFeedback(a.text.ForError(initErr), model.SeverityError)
		} else {
			sources = append(sources, source.NewRedisSource(rdb, a.cfg.Redis.Channel))
			closers = append(closers, func() { _ = rdb.Close() })
		}
	}

	source.StartAll(ctx, a.queue, a.view, a.text, sources...)
	return func() {
		for _, c := range closers {
			c()
		}
	}
}

// submit hands a code typed on a local surface to the queue.
func (a *app) submit(ctx context.Context, sourceName string) func(code string) {
	return func(code string) {
		if err := a.queue.Enqueue(ctx, model.NewDecodeEvent(sourceName, code)); err != nil {
			logx.Debug().Err(err).Str("code", code).Msg("dropping decode event")
		}
	}
}
