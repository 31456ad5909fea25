package cmd

import (
	"log"

	"github.com/alraulpm-lang/checador/internal/core"
	"github.com/alraulpm-lang/checador/internal/lookup/model"
	logx "github.com/alraulpm-lang/checador/pkg/logger"
	pkgredis "github.com/alraulpm-lang/checador/pkg/redis"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"
)

// AppConfig defines all configurable parameters, sourced from environment
// variables (loaded from .env for local runs).
type AppConfig struct {
	Environment core.Environment `envconfig:"APP_ENV" default:"development"`
	LogLevel    string           `envconfig:"LOG_LEVEL"`

	// Infrastructure
	Redis pkgredis.Config

	// Lookup pipeline
	Source  model.SourceConfig
	Fields  model.FieldConfig
	Display model.DisplayConfig
	Server  model.ServerConfig
}

var (
	envFile string
	appCfg  AppConfig
)

var rootCmd = &cobra.Command{
	Use:   "checador",
	Short: "Barcode price checker backed by a published product sheet",
	Long: `checador loads a product sheet published as CSV, receives decoded
barcodes from scanners (HTTP, keyboard wedge, Redis pub/sub) and shows the
matching product on an HTTP or terminal surface.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(tuiCmd)
}

func initConfig() {
	if err := godotenv.Load(envFile); err != nil {
		log.Printf("No %s file found or error loading it: %v", envFile, err)
	}

	if err := envconfig.Process("", &appCfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	logx.Init(logx.LoggerOpts{Environment: appCfg.Environment, Level: appCfg.LogLevel})
	logx.Debug().Str("env", appCfg.Environment.String()).Msg("configuration loaded")
}
