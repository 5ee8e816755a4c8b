package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thomascamminady/filefocus/pkg/fsys"
	"github.com/thomascamminady/filefocus/pkg/service"
	"github.com/thomascamminady/filefocus/pkg/tree"
)

func NewTreeCmd(svc **service.Service) *cobra.Command {
	var (
		treeDepth int
		treeHints bool
	)

	cmd := &cobra.Command{
		Use:   "tree [group]",
		Short: "Show groups and their resources as a tree",
		Long: `Render the group tree.

Without arguments, every group is shown with its member resources.
Directories expand lazily up to --depth levels. Resources whose path no
longer resolves are shown with a '?' marker instead of being hidden, so
broken references can be found and removed.

Examples:
  filefocus tree
  filefocus tree api --depth 3`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s := *svc

			roots := s.Children(ctx, nil)
			if len(args) == 1 {
				g, err := s.FindGroup(args[0])
				if err != nil {
					return err
				}
				filtered := roots[:0]
				for _, n := range roots {
					if n.GroupID == g.ID {
						filtered = append(filtered, n)
					}
				}
				roots = filtered
			}

			if len(roots) == 0 {
				fmt.Println("No groups. Create one with 'filefocus group create <name>'.")
				return nil
			}

			for _, root := range roots {
				fmt.Println(root.Label)
				printSubtree(ctx, s, root, "", treeDepth, treeHints)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&treeDepth, "depth", "d", 1, "How many directory levels to expand")
	cmd.Flags().BoolVar(&treeHints, "hints", false, "Show parent-location hints next to group members")

	return cmd
}

func printSubtree(ctx context.Context, s *service.Service, node *tree.Node, prefix string, depth int, hints bool) {
	children := s.Children(ctx, node)
	for i, child := range children {
		connector := "├── "
		childPrefix := prefix + "│   "
		if i == len(children)-1 {
			connector = "└── "
			childPrefix = prefix + "    "
		}

		fmt.Println(prefix + connector + formatNode(child, hints))

		if child.Expandable() && depth > 0 {
			printSubtree(ctx, s, child, childPrefix, depth-1, hints)
		}
	}
}

func formatNode(n *tree.Node, hints bool) string {
	var b strings.Builder
	b.WriteString(n.Label)
	switch n.Kind {
	case fsys.KindDirectory:
		b.WriteString("/")
	case fsys.KindUnknown:
		b.WriteString(" ?")
	}
	if hints && n.RootMember && n.LocationHint != "" {
		fmt.Fprintf(&b, "  (%s)", n.LocationHint)
	}
	return b.String()
}
