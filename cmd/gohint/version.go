package main

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

// version can be overridden at build time via -ldflags "-X main.version=...".
var version = "0.1.0-dev"

type versionPayload struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Revision  string `json:"revision,omitempty"`
}

func newVersionCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show gohint build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := versionPayload{Tool: "gohint", Version: version, GoVersion: runtime.Version()}
			if info, ok := debug.ReadBuildInfo(); ok {
				for _, s := range info.Settings {
					if s.Key == "vcs.revision" {
						p.Revision = s.Value
					}
				}
			}
			switch strings.ToLower(format) {
			case "json":
				b, err := json.Marshal(p)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(b))
			case "", "pretty":
				fmt.Fprintf(cmd.OutOrStdout(), "gohint %s (%s)\n", p.Version, p.GoVersion)
				if p.Revision != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "revision %s\n", p.Revision)
				}
			default:
				return fmt.Errorf("unknown format %q (want pretty|json)", format)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "pretty", "output format (pretty|json)")
	return cmd
}
