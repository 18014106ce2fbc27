package appconfig

import (
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"
)

// ShowConfig prints the current configuration summary.
func ShowConfig(out io.Writer, file string, cfg Config) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintf(out, "  Base URL:        %s\n", cfg.APIBase())
	fmt.Fprintf(out, "  Pages:           %d\n", cfg.Pages)
	fmt.Fprintf(out, "  Request Timeout: %s\n", cfg.RequestTimeout())
	fmt.Fprintf(out, "  User Agent:      %s\n", cfg.AgentString())
	fmt.Fprintf(out, "  Listen Address:  %s\n", cfg.Addr())
	fmt.Fprintf(out, "  Debug:           %v\n", cfg.Debug)
	fmt.Fprintf(out, "  JSON Mode:       %v\n", cfg.JSONMode)
	if cfg.LogFile != "" {
		fmt.Fprintf(out, "  Log File:        %s\n", cfg.LogFile)
	}
}

// WriteYAML renders cfg as a YAML document.
func WriteYAML(out io.Writer, cfg Config) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}
