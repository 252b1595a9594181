package reportctl

import (
	"bytes"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/sgsc/sgsc-services/internal/report"
	log "github.com/sirupsen/logrus"
)

type ExportOptions struct {
	*RootOptions
	Format  string
	Out     string
	Filters []string // key=value
}

func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export <resource>",
		Short: "Write the report of a resource to a file",
		Long: `Write the filtered report of a resource to a PDF or XLSX file.

Filters use the query parameter names of the API, for example:

  reportctl export patrullajes --format excel --filter fecha=2025-03-14 --filter turno_id=<id>`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "pdf", "report format (pdf|excel)")
	cmd.Flags().StringVarP(&opts.Out, "out", "o", "", "output file or directory (default: generated file name in the current directory)")
	cmd.Flags().StringArrayVar(&opts.Filters, "filter", nil, "filter as key=value, repeatable")

	return cmd
}

func parseFilters(pairs []string) (url.Values, error) {
	q := url.Values{}
	for _, p := range pairs {
		key, value, ok := strings.Cut(p, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid filter %q: want key=value", p)
		}
		q.Add(key, value)
	}
	return q, nil
}

func runExport(cmd *cobra.Command, opts *ExportOptions, resource string) error {
	kind, err := report.ParseKind(opts.Format)
	if err != nil {
		return err
	}
	q, err := parseFilters(opts.Filters)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	cat, closeFn, err := opts.open(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	exp, ok := cat.Exporter(resource)
	if !ok {
		return fmt.Errorf("unknown report %q, available: %s", resource, strings.Join(cat.Reports(), ", "))
	}

	var buf bytes.Buffer
	name, err := exp.Export(ctx, q, &buf, kind)
	if err != nil {
		return err
	}

	path := name
	if opts.Out != "" {
		path = opts.Out
		if info, err := os.Stat(opts.Out); err == nil && info.IsDir() {
			path = filepath.Join(opts.Out, name)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if opts.Verbose {
		log.Infof("%s report written with filters %v", resource, q)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", path, humanize.Bytes(uint64(buf.Len())))
	return nil
}
