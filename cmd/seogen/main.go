// Package main is seogen, a small CLI that drives the SEO generator widget
// against a running SagaCMS server. It loads a form snapshot from a YAML
// file, performs a widget click, and writes the updated snapshot back —
// useful for smoke-testing the generation pipeline and for batch-filling
// metadata on imported content.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"sagacms/internal/widget"
)

// formFile is the YAML snapshot format: form field IDs mapped to values.
type formFile struct {
	Kind   string            `yaml:"kind"`
	Fields map[string]string `yaml:"fields"`
}

var (
	endpoint  string
	csrfToken string
	timeout   time.Duration
	write     bool
)

var rootCmd = &cobra.Command{
	Use:   "seogen <form.yaml>",
	Short: "Generate SEO metadata for a form snapshot",
	Long: `seogen loads a form snapshot from a YAML file, clicks the SEO
generator widget against the configured endpoint, and prints the updated
fields. With --write the snapshot file is updated in place.

Example snapshot:

    kind: startup
    fields:
      id_name: Acme
      id_description: We build widgets
      id_meta_title: ""
      id_meta_description: ""`,
	Args: cobra.ExactArgs(1),
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVar(&endpoint, "endpoint", "http://localhost:8080/api/ai/generate-seo", "generation endpoint URL")
	rootCmd.Flags().StringVar(&csrfToken, "csrf-token", "", "CSRF token sent as X-CSRF-Token")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 90*time.Second, "request timeout")
	rootCmd.Flags().BoolVar(&write, "write", false, "write updated fields back to the snapshot file")
}

func run(cmd *cobra.Command, args []string) error {
	path := args[0]

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}

	var form formFile
	if err := yaml.Unmarshal(data, &form); err != nil {
		return fmt.Errorf("parse snapshot: %w", err)
	}
	if form.Fields == nil {
		return fmt.Errorf("snapshot has no fields")
	}

	fields := widget.FieldMap(form.Fields)

	w, err := widget.New(widget.Config{
		Endpoint:  endpoint,
		Kind:      form.Kind,
		Fields:    fields,
		CSRFToken: csrfToken,
		Notify: widget.NotifierFunc(func(msg string) {
			fmt.Fprintln(os.Stderr, msg)
		}),
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	result, err := w.Click(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("meta_title:       %s\n", result.MetaTitle)
	fmt.Printf("meta_description: %s\n", result.MetaDescription)

	if write {
		form.Fields = fields
		out, err := yaml.Marshal(&form)
		if err != nil {
			return fmt.Errorf("marshal snapshot: %w", err)
		}
		if err := os.WriteFile(path, out, 0o644); err != nil {
			return fmt.Errorf("write snapshot: %w", err)
		}
		fmt.Fprintf(os.Stderr, "updated %s\n", path)
	}

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
