package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/thomascamminady/filefocus/pkg/models"
	"github.com/thomascamminady/filefocus/pkg/service"
)

func NewGroupCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Manage groups",
		Long: `Manage the named groups that organize your files and directories.

A group collects any files or directories under one name, regardless of
where they live on disk. The same path may belong to several groups.`,
	}

	cmd.AddCommand(
		newGroupCreateCmd(svc),
		newGroupRenameCmd(svc),
		newGroupRemoveCmd(svc),
		newGroupPinCmd(svc),
		newGroupListCmd(svc),
	)

	return cmd
}

func newGroupCreateCmd(svc **service.Service) *cobra.Command {
	return &cobra.Command{
		Use:     "create [name]",
		Short:   "Create a new group",
		Aliases: []string{"new"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			g, err := s.CreateGroup(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Created group %q (%s)\n", g.Name, g.ID)
			return nil
		},
	}
}

func newGroupRenameCmd(svc **service.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "rename [group] [new-name]",
		Short: "Rename a group",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			if err := s.RenameGroup(args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("Renamed group to %q\n", args[1])
			return nil
		},
	}
}

func newGroupRemoveCmd(svc **service.Service) *cobra.Command {
	return &cobra.Command{
		Use:     "rm [group]",
		Short:   "Delete a group",
		Aliases: []string{"delete"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			g, err := s.FindGroup(args[0])
			if err != nil {
				return err
			}
			if err := s.DeleteGroup(g.ID); err != nil {
				return err
			}
			fmt.Printf("Deleted group %q\n", g.Name)
			return nil
		},
	}
}

func newGroupPinCmd(svc **service.Service) *cobra.Command {
	var unpin bool

	cmd := &cobra.Command{
		Use:   "pin [group]",
		Short: "Pin a group as the favourite",
		Long:  "Mark a group as the single favourite. Pinning a group un-pins the previous one.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			if unpin {
				if err := s.UnpinGroup(); err != nil {
					return err
				}
				fmt.Println("Cleared pinned group")
				return nil
			}
			if len(args) == 0 {
				return fmt.Errorf("group name required (or use --clear)")
			}
			if err := s.PinGroup(args[0]); err != nil {
				return err
			}
			fmt.Printf("Pinned group %q\n", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&unpin, "clear", false, "Clear the pinned group")

	return cmd
}

func newGroupListCmd(svc **service.Service) *cobra.Command {
	var listJSON bool

	cmd := &cobra.Command{
		Use:     "ls",
		Short:   "List groups",
		Aliases: []string{"list"},
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			groups := s.Groups.All()
			sort.Slice(groups, func(i, j int) bool {
				return strings.ToLower(groups[i].Name) < strings.ToLower(groups[j].Name)
			})

			if listJSON {
				return outputJSON(groups)
			}

			if len(groups) == 0 {
				fmt.Println("No groups. Create one with 'filefocus group create <name>'.")
				return nil
			}

			pinned := s.Groups.Pinned()
			printGroupsTable(groups, pinned)
			return nil
		},
	}

	cmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")

	return cmd
}

func printGroupsTable(groups []*models.Group, pinned string) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "NAME\tPINNED\tRESOURCES\tID")
	fmt.Fprintln(w, "--------------\t------\t---------\t------------------------------------")

	for _, g := range groups {
		pin := ""
		if g.ID == pinned {
			pin = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", g.Name, pin, len(g.Resources), g.ID)
	}

	w.Flush()
}

func outputJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
