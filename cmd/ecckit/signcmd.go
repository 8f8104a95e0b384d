package main

import (
	"errors"
	"fmt"
	"math/big"
	"os"
	"os/signal"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"

	"github.com/mahdiidarabi/ecckit/internal/config"
	"github.com/mahdiidarabi/ecckit/internal/parser"
	"github.com/mahdiidarabi/ecckit/pkg/batchverify"
	"github.com/mahdiidarabi/ecckit/pkg/s256"
)

var (
	signCommand = &cli.Command{
		Name:   "sign",
		Usage:  "Signs a message or digest with deterministic ECDSA",
		Action: sign,
		Flags:  []cli.Flag{secretFlag, wifFlag, messageFlag, hashFlag},
	}
	verifyCommand = &cli.Command{
		Name:   "verify",
		Usage:  "Verifies an ECDSA signature",
		Action: verify,
		Flags:  []cli.Flag{pubkeyFlag, messageFlag, hashFlag, derFlag, rFlag, sFlag},
	}
	batchVerifyCommand = &cli.Command{
		Name:      "batch-verify",
		Usage:     "Verifies every signature in a JSON or CSV file",
		ArgsUsage: "file",
		Action:    batchVerify,
		Flags:     []cli.Flag{formatFlag, workersFlag, metricsFileFlag},
	}
)

var (
	messageFlag = &cli.StringFlag{
		Name:  "message",
		Usage: "Message, hashed with hash256",
	}
	hashFlag = &cli.StringFlag{
		Name:  "hash",
		Usage: "Digest z as a hex (0x...) or decimal integer, instead of --message",
	}
	pubkeyFlag = &cli.StringFlag{
		Name:     "pubkey",
		Usage:    "SEC encoded public key in hex",
		Required: true,
	}
	derFlag = &cli.StringFlag{
		Name:  "der",
		Usage: "DER encoded signature in hex",
	}
	rFlag = &cli.StringFlag{
		Name:  "r",
		Usage: "Signature r, instead of --der",
	}
	sFlag = &cli.StringFlag{
		Name:  "s",
		Usage: "Signature s, instead of --der",
	}
	formatFlag = &cli.StringFlag{
		Name:  "format",
		Usage: "Record file format (json or csv), overrides the configuration",
	}
	workersFlag = &cli.IntFlag{
		Name:  "workers",
		Usage: "Number of parallel workers (0 = one per CPU), overrides the configuration",
	}
	metricsFileFlag = &cli.StringFlag{
		Name:  "metrics-file",
		Usage: "Write Prometheus metrics in text format to this file",
	}
)

// digest returns z from --hash or hash256(--message).
func digest(ctx *cli.Context) (*big.Int, error) {
	switch {
	case ctx.IsSet(hashFlag.Name):
		z, err := parser.ParseBigInt(ctx.String(hashFlag.Name))
		if err != nil {
			return nil, fmt.Errorf("invalid hash: %w", err)
		}
		return z, nil
	case ctx.IsSet(messageFlag.Name):
		return batchverify.HashMessage([]byte(ctx.String(messageFlag.Name))), nil
	default:
		return nil, errors.New("need --message or --hash")
	}
}

func sign(ctx *cli.Context) error {
	key, err := loadKey(ctx)
	if err != nil {
		return err
	}
	z, err := digest(ctx)
	if err != nil {
		return err
	}
	sig, err := key.SignHash(z)
	if err != nil {
		return err
	}

	w := ctx.App.Writer
	fmt.Fprintf(w, "der: %x\n", sig.DER())
	fmt.Fprintf(w, "r:   %064x\n", sig.R())
	fmt.Fprintf(w, "s:   %064x\n", sig.S())
	return nil
}

func signatureFromFlags(ctx *cli.Context) (*s256.Signature, error) {
	if ctx.IsSet(derFlag.Name) {
		b, err := parser.DecodeHex(ctx.String(derFlag.Name))
		if err != nil {
			return nil, err
		}
		return s256.ParseDER(b)
	}
	if !ctx.IsSet(rFlag.Name) || !ctx.IsSet(sFlag.Name) {
		return nil, errors.New("need --der or both --r and --s")
	}
	r, err := parser.ParseBigInt(ctx.String(rFlag.Name))
	if err != nil {
		return nil, fmt.Errorf("invalid r: %w", err)
	}
	s, err := parser.ParseBigInt(ctx.String(sFlag.Name))
	if err != nil {
		return nil, fmt.Errorf("invalid s: %w", err)
	}
	return s256.NewSignature(r, s), nil
}

var errInvalidSignature = errors.New("signature is invalid")

func verify(ctx *cli.Context) error {
	b, err := parser.DecodeHex(ctx.String(pubkeyFlag.Name))
	if err != nil {
		return err
	}
	pub, err := s256.ParsePoint(b)
	if err != nil {
		return err
	}
	sig, err := signatureFromFlags(ctx)
	if err != nil {
		return err
	}
	z, err := digest(ctx)
	if err != nil {
		return err
	}

	if !pub.Verify(z, sig) {
		fmt.Fprintln(ctx.App.Writer, "invalid")
		return errInvalidSignature
	}
	fmt.Fprintln(ctx.App.Writer, "valid")
	return nil
}

func batchVerify(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("need record file as argument")
	}

	cfg := getConfig(ctx)
	format := cfg.Format
	if ctx.IsSet(formatFlag.Name) {
		format = ctx.String(formatFlag.Name)
	}
	workers := cfg.WorkerCount()
	if ctx.IsSet(workersFlag.Name) {
		workers = ctx.Int(workersFlag.Name)
	}

	client := batchverify.NewClient().WithWorkers(workers)
	switch format {
	case config.FormatJSON:
		client.WithParser(&batchverify.JSONParser{})
	case config.FormatCSV:
		client.WithParser(&batchverify.CSVParser{})
	default:
		return fmt.Errorf("unknown record format %q", format)
	}

	var reg *prometheus.Registry
	if ctx.IsSet(metricsFileFlag.Name) {
		reg = prometheus.NewRegistry()
		metrics, err := batchverify.NewMetrics(reg)
		if err != nil {
			return err
		}
		client.WithMetrics(metrics)
	}

	runCtx, stop := signal.NotifyContext(ctx.Context, os.Interrupt)
	defer stop()

	report, err := client.VerifyFile(runCtx, ctx.Args().First())
	if err != nil {
		return err
	}

	w := ctx.App.Writer
	for _, r := range report.Results {
		if !r.Valid {
			fmt.Fprintf(w, "record %d: invalid\n", r.Index)
		}
	}
	fmt.Fprintf(w, "%d valid, %d invalid\n", report.Valid, report.Invalid)

	if reg != nil {
		if err := prometheus.WriteToTextfile(ctx.String(metricsFileFlag.Name), reg); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	if !report.AllValid() {
		return errInvalidSignature
	}
	return nil
}
