package main

import (
	"fmt"
	"os"
	"reflect"

	"github.com/spf13/cobra"
	"golang.org/x/exp/ebnf"

	"github.com/dhamidi/arith/ebnflex"
	"github.com/dhamidi/arith/ebnf/parse"
	"github.com/dhamidi/arith/grammar"
)

func newEbnfCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ebnf",
		Short:         "EBNF grammar tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newEbnfCheckCmd())
	cmd.AddCommand(newEbnfLexCmd())
	cmd.AddCommand(newEbnfParseCmd())

	return cmd
}

func newEbnfCheckCmd() *cobra.Command {
	var startProduction string

	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Parse and verify an EBNF grammar file",
		Long: `Parse and verify an EBNF grammar file. Without a file the
built-in statement grammar is checked from its start production.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				if _, err := grammar.Load(); err != nil {
					printErrors(err)
					return err
				}
				fmt.Printf("%s: ok\n", grammar.Filename)
				return nil
			}

			filename := args[0]

			f, err := os.Open(filename)
			if err != nil {
				return fmt.Errorf("open file: %w", err)
			}
			defer f.Close()

			g, err := ebnf.Parse(filename, f)
			if err != nil {
				printErrors(err)
				return err
			}

			if startProduction != "" {
				if err := ebnf.Verify(g, startProduction); err != nil {
					printErrors(err)
					return err
				}
			}

			fmt.Printf("%s: ok, %d productions\n", filename, len(g))
			return nil
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", "", "start production for verification (if empty, only checks syntax)")

	return cmd
}

// grammarFlags selects the grammar and token productions shared by lex and
// parse.
type grammarFlags struct {
	file string
}

func (f *grammarFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.file, "grammar", "g", "", "grammar file (default: the built-in statement grammar)")
}

func (f *grammarFlags) load() (ebnf.Grammar, []string, error) {
	if f.file == "" {
		g, err := grammar.Load()
		if err != nil {
			return nil, nil, err
		}
		return g, grammar.TokenProductions(), nil
	}
	g, err := ebnflex.LoadGrammar(f.file)
	if err != nil {
		return nil, nil, err
	}
	return g, ebnflex.UppercaseProductions(g), nil
}

func newEbnfLexCmd() *cobra.Command {
	var gf grammarFlags

	cmd := &cobra.Command{
		Use:           "lex <text>",
		Short:         "Tokenize text with the token productions of a grammar",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, tokenNames, err := gf.load()
			if err != nil {
				return err
			}

			tokens, err := ebnflex.NewLexer(g, tokenNames, []byte(args[0])).Tokenize()
			if err != nil {
				return fmt.Errorf("lex: %w", err)
			}
			for _, tok := range tokens {
				fmt.Println(tok)
			}
			return nil
		},
	}

	gf.register(cmd)

	return cmd
}

func newEbnfParseCmd() *cobra.Command {
	var gf grammarFlags
	var startProduction string
	var skip []string

	cmd := &cobra.Command{
		Use:           "parse <text>",
		Short:         "Recognize text against a grammar and print the syntax tree",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, tokenNames, err := gf.load()
			if err != nil {
				return err
			}

			tokens, err := ebnflex.NewLexer(g, tokenNames, []byte(args[0])).Tokenize()
			if err != nil {
				return fmt.Errorf("lex: %w", err)
			}

			p := parse.NewParser(g, tokens, tokenNames)
			p.SetSkipKinds(skip...)
			node, err := p.Parse(startProduction)
			if err != nil {
				fmt.Println(err)
				return err
			}
			fmt.Println(node)
			return nil
		},
	}

	gf.register(cmd)
	cmd.Flags().StringVar(&startProduction, "start", grammar.Start, "start production")
	cmd.Flags().StringSliceVar(&skip, "skip", nil, "token kinds to ignore between terminals")

	return cmd
}

func printErrors(err error) {
	v := reflect.ValueOf(err)
	if v.Kind() == reflect.Slice {
		for i := 0; i < v.Len(); i++ {
			fmt.Println(v.Index(i).Interface())
		}
	} else {
		fmt.Println(err)
	}
}
