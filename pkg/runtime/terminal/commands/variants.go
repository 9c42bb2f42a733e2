package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

type VariantsCmd struct {
	load Loader
}

func NewVariantsCmd(load Loader) *cobra.Command {
	vc := &VariantsCmd{load: load}
	return &cobra.Command{
		Use:   "variants",
		Short: "List the available transformer variants",
		RunE:  vc.run,
	}
}

func (vc *VariantsCmd) run(cmd *cobra.Command, _ []string) error {
	transformers, err := vc.load(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to initialize transformers: %w", err)
	}

	variants := transformers.ListVariants()
	if len(variants) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No transformer variants registered")
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Available variants:\n%s\n", strings.Join(variants, "\n"))
	return nil
}
