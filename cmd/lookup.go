package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	errx "github.com/alraulpm-lang/checador/internal/core/error"
	"github.com/alraulpm-lang/checador/internal/lookup/handler"
	"github.com/alraulpm-lang/checador/internal/lookup/model"
	"github.com/spf13/cobra"
)

var (
	lookupJSON    bool
	lookupTimeout time.Duration
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <code>",
	Short: "Load the catalog once and print one product",
	Args:  cobra.ExactArgs(1),
	RunE:  runLookup,
}

func init() {
	lookupCmd.Flags().BoolVar(&lookupJSON, "json", false, "print the full record as JSON")
	lookupCmd.Flags().DurationVar(&lookupTimeout, "timeout", 30*time.Second, "give up on the catalog fetch after this long")
}

func runLookup(cmd *cobra.Command, args []string) error {
	a, err := buildApp(appCfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), lookupTimeout)
	defer cancel()

	if _, err := a.loader.Load(ctx); err != nil {
		return fmt.Errorf("%s: %w", a.text.ForError(err), err)
	}

	code := args[0]
	rec, outcome := a.catalog.Lookup(code)
	if outcome != model.OutcomeFound {
		return fmt.Errorf("%s: %w", a.text.NotFound(code), errx.ErrLookupMiss)
	}

	if lookupJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Product model.DisplayState `json:"product"`
			Fields  map[string]string  `json:"fields"`
		}{handler.BuildDisplay(rec, appCfg.Display), rec.Values})
	}

	d := handler.BuildDisplay(rec, appCfg.Display)
	fmt.Fprintf(os.Stdout, "%s\n%s\n", d.Name, d.Price)
	if d.Description != "" {
		fmt.Fprintln(os.Stdout, d.Description)
	}
	fmt.Fprintf(os.Stdout, "Code:  %s\n", d.Code)
	if d.ImageURL != "" {
		fmt.Fprintf(os.Stdout, "Image: %s\n", d.ImageURL)
	}
	return nil
}
