// Package reportctl implements the reportctl command line.
package reportctl

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/sgsc/sgsc-services/internal/apisvc/catalog"
)

// Opener connects to the backend and returns the resource catalog and a
// function releasing its connections.
type Opener func(ctx context.Context) (*catalog.Catalog, func(), error)

type RootOptions struct {
	Verbose bool
	open    Opener
}

func NewRootCommand(open Opener) *cobra.Command {
	opts := &RootOptions{open: open}

	cmd := &cobra.Command{
		Use:   "reportctl",
		Short: "Export SGSC reports",
		Long:  "Export the filtered reports of the citizen security system to PDF or XLSX files.",
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewListCommand(opts))

	return cmd
}
