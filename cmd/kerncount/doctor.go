package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"kerncount/internal/toolchain"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the required external binaries are available",
	Long: `Check that every binary kerncount invokes (ninja, grep, cuobjdump,
cu++filt) can be resolved, and print where each one was found.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	_, resolutions := toolchain.Resolve(cfg)
	for _, r := range resolutions {
		if r.Err != nil {
			fmt.Printf("fail  %-12s not found\n", r.Name)
		} else {
			fmt.Printf("ok    %-12s %s\n", r.Name, r.Path)
		}
	}

	if missing := toolchain.Missing(resolutions); len(missing) > 0 {
		return fmt.Errorf("%d required binaries missing", len(missing))
	}
	return nil
}
