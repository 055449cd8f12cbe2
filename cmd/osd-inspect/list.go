package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "File listing",
	Long:  `List every file-id under the storage root, paging through the hash-fanout tree.`,
	Args:  cobra.NoArgs,
	RunE:  listFunc,
}

func listFunc(cmd *cobra.Command, _ []string) error {
	l, err := openLayout(cmd)
	if err != nil {
		return err
	}
	defer l.Close()

	w := cmd.OutOrStdout()

	var stack []string
	for {
		entries, next, err := l.GetFileList(stack, 256, flagStripeSize)
		if err != nil {
			return fmt.Errorf("list files: %w", err)
		}
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%dKB stripe\n", e.FileID, humanize.Bytes(uint64(e.FileSize)), e.ObjectSizeKB)
		}
		if len(next) == 0 {
			return nil
		}
		stack = next
	}
}
