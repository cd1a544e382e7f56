package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"projector/internal/notes"
	"projector/internal/workspace"
)

func (a *app) noteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note",
		Short: "Manage notes",
	}
	find := func(ws *workspace.Workspace, id string) (notes.Note, error) {
		return resolveID(ws.Notes.List(), func(n notes.Note) string { return n.ID }, id, "note")
	}

	var addCategory string
	add := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a note (markdown)",
		Args:  cobra.MinimumNArgs(1),
		RunE: a.authed(func(cmd *cobra.Command, args []string, ws *workspace.Workspace) error {
			n, err := ws.Notes.Add(strings.Join(args, " "), addCategory)
			if err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "Added: %s\nID: %s\n", notes.Headline(n.Text), n.ID)
			return nil
		}),
	}
	add.Flags().StringVarP(&addCategory, "category", "c", notes.DefaultCategory, "Category")

	var f notes.Filter
	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List notes, pinned first",
		Args:    cobra.NoArgs,
		RunE: a.authed(func(cmd *cobra.Command, args []string, ws *workspace.Workspace) error {
			out := cmd.OutOrStdout()
			ns := ws.Notes.Query(f)
			for _, n := range ns {
				pin := " "
				if n.Pinned {
					pin = "*"
				}
				printf(out, "[%s] %s %s (%s) %s\n", shortID(n.ID), pin, notes.Headline(n.Text), n.Category, n.CreatedAt.Format("Jan 2"))
			}
			printf(out, "\n%d note(s)\n", len(ns))
			return nil
		}),
	}
	list.Flags().StringVarP(&f.Search, "search", "s", "", "Search text")
	list.Flags().StringVarP(&f.Category, "category", "c", "", "Filter by category")

	pin := &cobra.Command{
		Use:   "pin <id>",
		Short: "Pin or unpin a note",
		Args:  cobra.ExactArgs(1),
		RunE: a.authed(func(cmd *cobra.Command, args []string, ws *workspace.Workspace) error {
			n, err := find(ws, args[0])
			if err != nil {
				return err
			}
			if n, err = ws.Notes.TogglePin(n.ID); err != nil {
				return err
			}
			state := "Unpinned"
			if n.Pinned {
				state = "Pinned"
			}
			printf(cmd.OutOrStdout(), "%s: %s\n", state, notes.Headline(n.Text))
			return nil
		}),
	}

	var editCategory string
	edit := &cobra.Command{
		Use:   "edit <id> [text]",
		Short: "Replace a note's text or category",
		Args:  cobra.MinimumNArgs(1),
		RunE: a.authed(func(cmd *cobra.Command, args []string, ws *workspace.Workspace) error {
			n, err := find(ws, args[0])
			if err != nil {
				return err
			}
			text, category := n.Text, n.Category
			if len(args) > 1 {
				text = strings.Join(args[1:], " ")
			}
			if cmd.Flags().Changed("category") {
				category = editCategory
			}
			if n, err = ws.Notes.Update(n.ID, text, category); err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "Updated: %s\n", notes.Headline(n.Text))
			return nil
		}),
	}
	edit.Flags().StringVarP(&editCategory, "category", "c", "", "New category")

	del := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a note",
		Args:    cobra.ExactArgs(1),
		RunE: a.authed(func(cmd *cobra.Command, args []string, ws *workspace.Workspace) error {
			n, err := find(ws, args[0])
			if err != nil {
				return err
			}
			if err := ws.Notes.Delete(n.ID); err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "Deleted: %s\n", notes.Headline(n.Text))
			return nil
		}),
	}

	export := &cobra.Command{
		Use:   "export <dir>",
		Short: "Write every note as a markdown file with YAML frontmatter",
		Args:  cobra.ExactArgs(1),
		RunE: a.authed(func(cmd *cobra.Command, args []string, ws *workspace.Workspace) error {
			paths, err := notes.Export(args[0], ws.Notes.List())
			if err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "Exported %d note(s) to %s\n", len(paths), args[0])
			return nil
		}),
	}

	imp := &cobra.Command{
		Use:   "import <dir>",
		Short: "Merge markdown notes from a directory by id",
		Args:  cobra.ExactArgs(1),
		RunE: a.authed(func(cmd *cobra.Command, args []string, ws *workspace.Workspace) error {
			parsed, err := notes.ImportDir(args[0])
			if err != nil {
				return err
			}
			added, updated, err := ws.Notes.Import(parsed)
			if err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "Imported %d new, %d updated\n", added, updated)
			return nil
		}),
	}

	cmd.AddCommand(add, list, pin, edit, del, export, imp)
	return cmd
}
