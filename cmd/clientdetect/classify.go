package main

import (
	"bufio"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/clientdetect/pkg/useragent"
)

type classification struct {
	ClientType useragent.ClientType `json:"client_type"`
	useragent.Facets
}

func newClassifyCommand() *cobra.Command {
	var compact bool

	cmd := &cobra.Command{
		Use:   "classify [user-agent...]",
		Short: "Classify user agent strings",
		Long: `Print the facets and client type of each user agent as JSON.
With no arguments, user agents are read from stdin, one per line.`,
		Example: `  clientdetect classify "PostmanRuntime/7.32.3"
  cat agents.txt | clientdetect classify --compact`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return classifyAll(cmd.OutOrStdout(), args, compact)
			}
			return classifyLines(cmd.OutOrStdout(), cmd.InOrStdin(), compact)
		},
	}
	cmd.Flags().BoolVar(&compact, "compact", false, "one JSON object per line")
	return cmd
}

func classify(ua string) classification {
	facets, ct := useragent.Classify(ua)
	facets.Raw = ua
	return classification{ClientType: ct, Facets: facets}
}

func classifyAll(w io.Writer, agents []string, compact bool) error {
	enc := json.NewEncoder(w)
	if !compact {
		enc.SetIndent("", "  ")
	}
	for _, ua := range agents {
		if err := enc.Encode(classify(ua)); err != nil {
			return err
		}
	}
	return nil
}

func classifyLines(w io.Writer, r io.Reader, compact bool) error {
	var agents []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			agents = append(agents, line)
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return classifyAll(w, agents, compact)
}
