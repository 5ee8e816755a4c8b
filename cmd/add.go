package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thomascamminady/filefocus/pkg/service"
)

func NewAddCmd(svc **service.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "add [group] [path...]",
		Short: "Add files or directories to a group",
		Long: `Add one or more paths to a group.

Paths are stored in normalized absolute form. Adding a path a group
already contains is a no-op.

Examples:
  filefocus add backlog ./notes.md
  filefocus add api ./cmd ./pkg/service`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			groupRef := args[0]
			for _, path := range args[1:] {
				if err := s.AddResource(groupRef, path); err != nil {
					return fmt.Errorf("add %s: %w", path, err)
				}
			}
			fmt.Printf("Added %d path(s) to %q\n", len(args)-1, groupRef)
			return nil
		},
	}
}

func NewRemoveCmd(svc **service.Service) *cobra.Command {
	return &cobra.Command{
		Use:     "remove [group] [path...]",
		Short:   "Remove files or directories from a group",
		Aliases: []string{"rm"},
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			groupRef := args[0]
			for _, path := range args[1:] {
				if err := s.RemoveResource(groupRef, path); err != nil {
					return fmt.Errorf("remove %s: %w", path, err)
				}
			}
			fmt.Printf("Removed %d path(s) from %q\n", len(args)-1, groupRef)
			return nil
		},
	}
}
