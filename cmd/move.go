package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thomascamminady/filefocus/pkg/service"
)

func NewMoveCmd(svc **service.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "move [from-group] [to-group] [path...]",
		Short: "Move resources between groups",
		Long: `Move resources from one group to another.

Only paths listed directly in the source group can move; contents
discovered by expanding a directory stay where they are on disk. With no
paths given, every member of the source group moves. Moving a group onto
itself is a no-op.

Examples:
  filefocus move backlog done ./notes.md
  filefocus move backlog done`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s := *svc

			moved, err := s.MoveResources(ctx, args[0], args[1], args[2:])
			if err != nil {
				return err
			}
			if moved == 0 {
				fmt.Println("Nothing moved")
				return nil
			}
			fmt.Printf("Moved %d resource(s) from %q to %q\n", moved, args[0], args[1])
			return nil
		},
	}
}
