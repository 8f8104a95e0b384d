// Command ecckit is a command line front end to the secp256k1 library: key
// generation, signing and verification, and the SEC, DER, WIF and Base58
// encodings.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/mahdiidarabi/ecckit/internal/config"
	"github.com/mahdiidarabi/ecckit/internal/logging"
	"github.com/mahdiidarabi/ecckit/pkg/batchverify"
	"github.com/mahdiidarabi/ecckit/pkg/s256"
)

const (
	configKey = "config"
	loggerKey = "logger"
)

var (
	configFlag = &cli.StringFlag{
		Name:    "config",
		Usage:   "Path to a JSON or YAML configuration file",
		EnvVars: []string{"ECCKIT_CONFIG"},
	}
	networkFlag = &cli.StringFlag{
		Name:  "network",
		Usage: "Network for WIF encoding (mainnet or testnet), overrides the configuration",
	}
	logLevelFlag = &cli.StringFlag{
		Name:  "log-level",
		Usage: "Log level (debug, info, warn, error), overrides the configuration",
	}
)

func newApp(stdout, stderr io.Writer) *cli.App {
	app := &cli.App{
		Name:      "ecckit",
		Usage:     "secp256k1 keys, signatures and encodings",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags:     []cli.Flag{configFlag, networkFlag, logLevelFlag},
		Before:    setup,
		After:     teardown,
		Metadata:  map[string]interface{}{},
		Commands: []*cli.Command{
			keygenCommand,
			pubkeyCommand,
			wifCommand,
			decodeWIFCommand,
			parseSECCommand,
			signCommand,
			verifyCommand,
			batchVerifyCommand,
			base58Command,
			hashCommand,
		},
	}
	return app
}

// setup loads the configuration, applies the global flag overrides and
// installs the library loggers.
func setup(ctx *cli.Context) error {
	cfg, err := config.Load(ctx.String(configFlag.Name))
	if err != nil {
		return err
	}
	if ctx.IsSet(networkFlag.Name) {
		cfg.Network = ctx.String(networkFlag.Name)
	}
	if ctx.IsSet(logLevelFlag.Name) {
		cfg.LogLevel = ctx.String(logLevelFlag.Name)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.NewLogger(cfg.LogConfig())
	if err != nil {
		return err
	}
	s256.UseLogger(logger)
	batchverify.UseLogger(logger)

	ctx.App.Metadata[configKey] = cfg
	ctx.App.Metadata[loggerKey] = logger
	return nil
}

func teardown(ctx *cli.Context) error {
	if logger, ok := ctx.App.Metadata[loggerKey].(*zap.Logger); ok {
		_ = logger.Sync()
	}
	s256.DisableLog()
	batchverify.DisableLog()
	return nil
}

// getConfig returns the configuration loaded by setup.
func getConfig(ctx *cli.Context) *config.Config {
	if cfg, ok := ctx.App.Metadata[configKey].(*config.Config); ok {
		return cfg
	}
	return config.Default()
}

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
