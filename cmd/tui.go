package cmd

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/alraulpm-lang/checador/internal/tui"
	logx "github.com/alraulpm-lang/checador/pkg/logger"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var tuiLogFile string

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Interactive terminal price checker",
	Long: `Run the lookup pipeline behind a terminal surface. Keyboard-wedge
scanners type into the input and submit with enter; esc returns to the scanner.`,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().StringVar(&tuiLogFile, "log-file", "", "write logs to this file instead of discarding them")
}

func runTUI(cmd *cobra.Command, args []string) error {
	// the alternate screen owns stdout, logs go elsewhere
	var out io.Writer = io.Discard
	if tuiLogFile != "" {
		f, err := os.OpenFile(tuiLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	logx.Init(logx.LoggerOpts{Environment: appCfg.Environment, Level: appCfg.LogLevel, Output: out})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	a, err := buildApp(appCfg)
	if err != nil {
		return err
	}

	updates, unsubscribe := a.view.Subscribe(16)
	defer unsubscribe()

	a.startLoad(ctx)
	release := a.startSources(ctx)
	defer release()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		a.handler.Run(context.Background(), a.queue.Events())
	}()

	m := tui.NewModel(tui.Controls{
		Submit: a.submit(ctx, "keyboard"),
		Back:   a.handler.Back,
	}, a.view.Snapshot(), updates)

	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()

	a.queue.Close()
	wg.Wait()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
