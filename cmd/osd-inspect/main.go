// Command osd-inspect is a read-only inspector over an OSD storage
// root: it lists file-ids and dumps per-file metadata (versions,
// epochs, truncate log) without ever mutating the tree it reads.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagConfigFile string
	flagStripeSize int
)

var rootCmd = &cobra.Command{
	Use:           "osd-inspect",
	Short:         "OSD Storage Layout Inspector",
	Long:          `osd-inspect provides read-only tools to browse the contents of an OSD storage layout tree.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigFile, "config", "", "path to the storage layout's YAML configuration file")
	rootCmd.PersistentFlags().IntVar(&flagStripeSize, "stripe-size", 128*1024, "fixed stripe size used to estimate file sizes during enumeration")
	rootCmd.AddCommand(listCmd, statCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
