package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sandevgo/dobby/internal/grammar"
	"github.com/sandevgo/dobby/internal/morph"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var parseCmd = &cobra.Command{
	Use:   "parse <phrase>",
	Short: "Parse a phrase and resolve its temporal expression",
	Long:  `Segments the phrase, prints the recognized facts and resolves the first temporal expression against the current time. A grammar debugging tool.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.ToLower(strings.Join(args, " "))
		g := grammar.New(morph.NewRussian())

		out := struct {
			Tokens []map[string]any `yaml:"tokens"`
			When   string           `yaml:"when,omitempty"`
			Needs  []string         `yaml:"needs,omitempty"`
			Error  string           `yaml:"error,omitempty"`
		}{}

		var moment *grammar.Moment
		for _, token := range g.Tokenize(text) {
			entry := map[string]any{"text": token.Text}
			if token.Fact != nil {
				entry["fact"] = fmt.Sprintf("%T", token.Fact)
			}
			out.Tokens = append(out.Tokens, entry)

			if m, ok := token.Fact.(*grammar.Moment); ok && moment == nil {
				moment = m
			}
		}

		if moment != nil {
			due, err := grammar.Resolve(moment, time.Now(), nil)
			var clarErr *grammar.ClarificationRequiredError
			switch {
			case err == nil:
				out.When = due.Format("02 Jan 2006 15:04:05")
			case errors.As(err, &clarErr):
				for _, req := range clarErr.Required {
					out.Needs = append(out.Needs, req.Question())
				}
			default:
				out.Error = err.Error()
			}
		}

		dump, err := yaml.Marshal(out)
		if err != nil {
			return err
		}
		cmd.Print(string(dump))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
