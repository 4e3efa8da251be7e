package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"minicc/pkg/compiler"
)

func main() {
	app := &cli.App{
		Name:      "minicc",
		Usage:     "parse and type-check a C dialect source file",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "tokens",
				Usage: "dump the token stream",
			},
			&cli.BoolFlag{
				Name:  "ast",
				Usage: "dump the typed AST",
			},
			&cli.BoolFlag{
				Name:  "symbols",
				Usage: "dump the symbol tree",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("usage: minicc [flags] <file>", 2)
	}

	path := c.Args().First()
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "reading source")
	}
	src := string(data)

	if c.Bool("tokens") {
		fmt.Println("Tokens")
		for lex := compiler.NewLexer(src); ; {
			tok := lex.Next()
			fmt.Println(" ", tok)
			if tok.Class == compiler.TokenEOF {
				break
			}
		}
		fmt.Println()
	}

	mod, root, errCount := compiler.Frontend(src, os.Stdout)

	if c.Bool("ast") {
		fmt.Println("AST")
		fmt.Println(mod)
		fmt.Println()
	}

	if c.Bool("symbols") {
		fmt.Println("Symbols")
		fmt.Print(root)
	}

	if errCount > 0 {
		return cli.Exit(fmt.Sprintf("%d errors", errCount), 1)
	}
	return nil
}
