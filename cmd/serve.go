package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/alraulpm-lang/checador/internal/httpserver"
	"github.com/alraulpm-lang/checador/internal/lookup/source"
	logx "github.com/alraulpm-lang/checador/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var readStdin bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP surface and consume decode events",
	Long: `Start the catalog load and every configured decode source, then serve
the view state, product lookups and catalog tools over HTTP until interrupted.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&readStdin, "stdin", false, "also read barcodes from stdin, one per line (keyboard-wedge scanners)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := buildApp(appCfg)
	if err != nil {
		return err
	}

	if appCfg.Environment.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// loader and sources start together, neither waits for the other
	a.startLoad(ctx)
	var extra []source.Source
	if readStdin {
		extra = append(extra, source.NewLineSource("stdin", os.Stdin))
	}
	release := a.startSources(ctx, extra...)
	defer release()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		a.handler.Run(context.Background(), a.queue.Events())
	}()

	srv := &http.Server{
		Addr: ":" + appCfg.Server.Port,
		Handler: httpserver.New(httpserver.Deps{
			Queue:   a.queue,
			Catalog: a.catalog,
			View:    a.view,
			Handler: a.handler,
			Tools:   a.tools,
			Display: appCfg.Display,
		}),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logx.Info().Str("addr", srv.Addr).Int("queue", appCfg.Server.QueueSize).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logx.Fatal().Err(err).Msg("listen")
		}
	}()

	<-ctx.Done()
	logx.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), appCfg.Server.ShutdownTimeout)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)

	// the consumer drains whatever is still buffered once the queue closes
	a.queue.Close()
	wg.Wait()
	logx.Info().Msg("graceful shutdown complete")
	return nil
}
