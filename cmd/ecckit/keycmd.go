package main

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/mahdiidarabi/ecckit/internal/parser"
	"github.com/mahdiidarabi/ecckit/pkg/s256"
)

var (
	keygenCommand = &cli.Command{
		Name:   "keygen",
		Usage:  "Generates a random private key",
		Action: keygen,
		Flags:  []cli.Flag{compressedFlag},
	}
	pubkeyCommand = &cli.Command{
		Name:   "pubkey",
		Usage:  "Prints the SEC public key and its hash160 for a private key",
		Action: pubkey,
		Flags:  []cli.Flag{secretFlag, wifFlag, compressedFlag},
	}
	wifCommand = &cli.Command{
		Name:   "wif",
		Usage:  "Encodes a private key in Wallet Import Format",
		Action: encodeWIF,
		Flags:  []cli.Flag{secretFlag, compressedFlag},
	}
	decodeWIFCommand = &cli.Command{
		Name:      "decode-wif",
		Usage:     "Decodes a Wallet Import Format private key",
		ArgsUsage: "wif",
		Action:    decodeWIF,
	}
	parseSECCommand = &cli.Command{
		Name:      "parse-sec",
		Usage:     "Parses a SEC encoded public key",
		ArgsUsage: "hex",
		Action:    parseSEC,
	}
)

var (
	secretFlag = &cli.StringFlag{
		Name:  "secret",
		Usage: "Private key as a hex (0x...) or decimal integer",
	}
	wifFlag = &cli.StringFlag{
		Name:  "wif",
		Usage: "Private key in Wallet Import Format",
	}
	compressedFlag = &cli.BoolFlag{
		Name:  "compressed",
		Usage: "Use compressed SEC public keys, overrides the configuration",
	}
)

// compressed returns the --compressed flag when given, the configured
// default otherwise.
func compressed(ctx *cli.Context) bool {
	if ctx.IsSet(compressedFlag.Name) {
		return ctx.Bool(compressedFlag.Name)
	}
	return getConfig(ctx).Compressed
}

// loadKey reads the private key from --secret or --wif.
func loadKey(ctx *cli.Context) (*s256.PrivateKey, error) {
	switch {
	case ctx.IsSet(secretFlag.Name):
		secret, err := parser.ParseBigInt(ctx.String(secretFlag.Name))
		if err != nil {
			return nil, fmt.Errorf("invalid secret: %w", err)
		}
		return s256.NewPrivateKey(secret)
	case ctx.IsSet(wifFlag.Name):
		key, _, _, err := s256.ParseWIF(ctx.String(wifFlag.Name))
		return key, err
	default:
		return nil, errors.New("need --secret or --wif")
	}
}

func keygen(ctx *cli.Context) error {
	key, err := s256.GeneratePrivateKey(rand.Reader)
	if err != nil {
		return fmt.Errorf("could not generate key: %w", err)
	}

	cfg := getConfig(ctx)
	comp := compressed(ctx)
	w := ctx.App.Writer
	fmt.Fprintf(w, "secret:  %s\n", key.Hex())
	fmt.Fprintf(w, "wif:     %s\n", key.WIF(comp, cfg.Testnet()))
	fmt.Fprintf(w, "pubkey:  %x\n", key.PubKey().SEC(comp))
	return nil
}

func pubkey(ctx *cli.Context) error {
	key, err := loadKey(ctx)
	if err != nil {
		return err
	}

	comp := compressed(ctx)
	w := ctx.App.Writer
	fmt.Fprintf(w, "pubkey:  %x\n", key.PubKey().SEC(comp))
	fmt.Fprintf(w, "hash160: %x\n", key.PubKey().Hash160(comp))
	return nil
}

func encodeWIF(ctx *cli.Context) error {
	if !ctx.IsSet(secretFlag.Name) {
		return errors.New("need --secret")
	}
	key, err := loadKey(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.App.Writer, key.WIF(compressed(ctx), getConfig(ctx).Testnet()))
	return nil
}

func decodeWIF(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("need WIF string as argument")
	}
	key, comp, testnet, err := s256.ParseWIF(ctx.Args().First())
	if err != nil {
		return err
	}

	network := "mainnet"
	if testnet {
		network = "testnet"
	}
	w := ctx.App.Writer
	fmt.Fprintf(w, "secret:     %s\n", key.Hex())
	fmt.Fprintf(w, "network:    %s\n", network)
	fmt.Fprintf(w, "compressed: %t\n", comp)
	fmt.Fprintf(w, "pubkey:     %x\n", key.PubKey().SEC(comp))
	return nil
}

func parseSEC(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("need SEC hex as argument")
	}
	b, err := parser.DecodeHex(ctx.Args().First())
	if err != nil {
		return err
	}
	pt, err := s256.ParsePoint(b)
	if err != nil {
		return err
	}

	w := ctx.App.Writer
	fmt.Fprintf(w, "x:            %064x\n", pt.X())
	fmt.Fprintf(w, "y:            %064x\n", pt.Y())
	fmt.Fprintf(w, "compressed:   %s\n", hex.EncodeToString(pt.SEC(true)))
	fmt.Fprintf(w, "uncompressed: %s\n", hex.EncodeToString(pt.SEC(false)))
	return nil
}
