package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lightsongjs/book-translator/internal/service"
)

var backupCmd = &cobra.Command{
	Use:   "backup [chapter]",
	Short: "Copy translation work into a timestamped backup",
	Long: `Backup copies the segment files and the tracking log into a timestamped
directory under the backup stage. With a chapter argument only that
chapter's files are copied.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runE(func(cmd *cobra.Command, args []string, svc *service.Service) error {
		key := ""
		if len(args) == 1 {
			resolved, err := service.ResolveKey(args[0])
			if err != nil {
				return err
			}
			key = resolved
		}
		dst, err := svc.Backup(key)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), dst)
		return nil
	}),
}
