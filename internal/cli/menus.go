package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/menu/internal/app"
	"github.com/idilsaglam/menu/internal/suggest"
	"github.com/idilsaglam/menu/internal/ui"
)

func newListCmd(opt *Options) *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List menus with their likes",
		Args:    args(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loaded(cmd, opt)
			if err != nil {
				return err
			}
			recs := a.Cache().Records()
			if opt.table() {
				ui.Panel(cmd.OutOrStdout(), listLines(recs))
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), opt.formatter.Format(recs))
			return nil
		},
	}
}

func newAddCmd(opt *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name...>",
		Short: "Add a menu (the name can be several words)",
		Args:  args(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, a []string) error {
			ap, err := opt.newApp(opt.log)
			if err != nil {
				return err
			}
			name := strings.Join(a, " ")
			if err := ap.Create(cmd.Context(), name); err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("added %q (%s)", strings.TrimSpace(name), plural(ap.Cache().Len(), "menu", "menus")))
			return nil
		},
	}
}

func newRenameCmd(opt *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <name...>",
		Short: "Rename a menu; its likes are kept",
		Args:  args(cobra.MinimumNArgs(2)),
		RunE: func(cmd *cobra.Command, a []string) error {
			id, err := parseID(a[0])
			if err != nil {
				return err
			}
			ap, err := loaded(cmd, opt)
			if err != nil {
				return err
			}
			rec, ok := ap.Cache().Lookup(id)
			if !ok {
				return fmt.Errorf("rename: no menu with id %s", id)
			}
			ap.Edit().Begin(rec)
			if err := ap.SubmitEdit(cmd.Context(), strings.Join(a[1:], " ")); err != nil {
				return err
			}
			if rec, ok = ap.Cache().Find(rec.ID); ok {
				ui.OK(cmd.OutOrStdout(), fmt.Sprintf("renamed to %q", rec.Name))
			}
			return nil
		},
	}
}

func newRemoveCmd(opt *Options) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a menu",
		Args:    args(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, a []string) error {
			id, err := parseID(a[0])
			if err != nil {
				return err
			}
			ap, err := loaded(cmd, opt)
			if err != nil {
				return err
			}
			rec, ok := ap.Cache().Lookup(id)
			if !ok {
				return fmt.Errorf("rm: no menu with id %s", id)
			}
			if !yes {
				fmt.Fprintf(cmd.OutOrStdout(), "Delete %q? [y/N]: ", rec.Name)
				scanner := bufio.NewScanner(cmd.InOrStdin())
				scanner.Scan()
				if strings.ToLower(strings.TrimSpace(scanner.Text())) != "y" {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
					return nil
				}
			}
			if err := ap.Delete(cmd.Context(), rec.ID); err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("deleted %q", rec.Name))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func newLikeCmd(opt *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "like <id>",
		Short: "Add one like to a menu",
		Args:  args(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, a []string) error {
			id, err := parseID(a[0])
			if err != nil {
				return err
			}
			ap, err := loaded(cmd, opt)
			if err != nil {
				return err
			}
			rec, ok := ap.Cache().Lookup(id)
			if !ok {
				return fmt.Errorf("like: no menu with id %s", id)
			}
			if err := ap.Like(cmd.Context(), rec.ID); err != nil {
				return err
			}
			if rec, ok = ap.Cache().Find(rec.ID); ok {
				ui.OK(cmd.OutOrStdout(), fmt.Sprintf("%s %s %s", rec.Name, ui.Current().SymLike, plural(rec.Likes, "like", "likes")))
			}
			return nil
		},
	}
}

func newSuggestCmd(opt *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "suggest",
		Short: "Pick a menu at random",
		Args:  args(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ap, err := opt.newApp(opt.log)
			if err != nil {
				return err
			}
			sel := suggest.NewSelector(suggest.NewSource(opt.Seed))
			defer ap.Cache().Subscribe(sel.Observe)()
			if err := ap.Refresh(cmd.Context()); err != nil {
				return err
			}
			rec, ok := sel.Current()
			if !opt.table() {
				if !ok {
					fmt.Fprint(cmd.OutOrStdout(), opt.formatter.Format(nil))
					return nil
				}
				fmt.Fprint(cmd.OutOrStdout(), opt.formatter.Format(rec))
				return nil
			}
			ui.Panel(cmd.OutOrStdout(), suggestionLines(rec, ok))
			return nil
		},
	}
}

// loaded returns an app whose cache holds the current list.
func loaded(cmd *cobra.Command, opt *Options) (*app.App, error) {
	ap, err := opt.newApp(opt.log)
	if err != nil {
		return nil, err
	}
	if err := ap.Refresh(cmd.Context()); err != nil {
		return nil, err
	}
	return ap, nil
}
