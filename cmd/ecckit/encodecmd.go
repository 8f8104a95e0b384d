package main

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/mahdiidarabi/ecckit/internal/parser"
	"github.com/mahdiidarabi/ecckit/pkg/base58"
	"github.com/mahdiidarabi/ecckit/pkg/hashing"
)

const (
	algHash256 = "hash256"
	algHash160 = "hash160"
)

var (
	base58Command = &cli.Command{
		Name:      "base58",
		Usage:     "Encodes hex bytes to Base58, or decodes Base58 to hex",
		ArgsUsage: "hex|base58",
		Action:    base58Codec,
		Flags:     []cli.Flag{checkFlag, decodeFlag},
	}
	hashCommand = &cli.Command{
		Name:      "hash",
		Usage:     "Prints hash256 or hash160 of the argument",
		ArgsUsage: "data",
		Action:    hash,
		Flags:     []cli.Flag{hexInputFlag, algFlag},
	}
)

var (
	checkFlag = &cli.BoolFlag{
		Name:  "check",
		Usage: "Use Base58Check (4 byte hash256 checksum)",
	}
	decodeFlag = &cli.BoolFlag{
		Name:  "decode",
		Usage: "Decode instead of encode",
	}
	hexInputFlag = &cli.BoolFlag{
		Name:  "hex",
		Usage: "Treat the argument as hex bytes instead of a string",
	}
	algFlag = &cli.StringFlag{
		Name:  "alg",
		Usage: "Hash algorithm (hash256 or hash160)",
		Value: algHash256,
	}
)

func base58Codec(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("need exactly one argument")
	}
	arg := ctx.Args().First()
	check := ctx.Bool(checkFlag.Name)

	if ctx.Bool(decodeFlag.Name) {
		var (
			b   []byte
			err error
		)
		if check {
			b, err = base58.DecodeCheck(arg)
		} else {
			b, err = base58.Decode(arg)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(ctx.App.Writer, "%x\n", b)
		return nil
	}

	b, err := parser.DecodeHex(arg)
	if err != nil {
		return err
	}
	if check {
		fmt.Fprintln(ctx.App.Writer, base58.EncodeCheck(b))
	} else {
		fmt.Fprintln(ctx.App.Writer, base58.Encode(b))
	}
	return nil
}

func hash(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("need exactly one argument")
	}
	data := []byte(ctx.Args().First())
	if ctx.Bool(hexInputFlag.Name) {
		var err error
		if data, err = parser.DecodeHex(ctx.Args().First()); err != nil {
			return err
		}
	}

	var sum []byte
	switch alg := ctx.String(algFlag.Name); alg {
	case algHash256:
		sum = hashing.Hash256(data)
	case algHash160:
		sum = hashing.Hash160(data)
	default:
		return fmt.Errorf("unknown hash algorithm %q", alg)
	}
	fmt.Fprintf(ctx.App.Writer, "%x\n", sum)
	return nil
}
