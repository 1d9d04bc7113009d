// internal/cli/command.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"exoparam/internal/version"
)

// NewCommand builds the root command. run is called with the parsed options
// after positional arguments are stored in o.Datasets.
func NewCommand(name string, o *Options, run func(cmd *cobra.Command, o *Options) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:   name + " [flags] <dataset.yaml>...",
		Short: "derive star and planet parameters from literature measurements",
		Long: fmt.Sprintf(`%s resolves sparse literature measurements of a star and its transiting
planet into a complete, uncertainty-propagated parameter set, recording which
inputs determined every derived value.

Version: %s`, name, version.Version),
		Example: `  ` + name + ` studies.yaml
  ` + name + ` -o jsonl --study "WASP-52 b" studies.yaml
  ` + name + ` --scale-heights 3 -o tsv a.yaml b.yaml`,
		Version:       version.Version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			o.Datasets = args
			return run(cmd, o)
		},
	}
	cmd.SetVersionTemplate(name + " version {{.Version}}\n")
	Register(cmd.Flags(), o)
	return cmd
}
