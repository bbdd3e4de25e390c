package cli

import (
	"fmt"

	"github.com/idilsaglam/menu/internal/model"
	"github.com/idilsaglam/menu/internal/ui"
)

// -------------- rendering helpers --------------

func stats(recs []model.Record) (likes, max int) {
	for _, r := range recs {
		likes += r.Likes
		if r.Likes > max {
			max = r.Likes
		}
	}
	return
}

func listLines(recs []model.Record) []string {
	t := ui.Current()
	likes, max := stats(recs)
	header := fmt.Sprintf("%s  %s %d  %s %d",
		ui.C(t.Title, "Menus"),
		ui.C(t.Like, t.SymLike), likes,
		ui.C(t.Accent, "Total"), len(recs),
	)

	lines := []string{header, ""}
	if len(recs) == 0 {
		lines = append(lines, ui.C(t.Muted, "no menus yet"))
	}
	for _, r := range recs {
		lines = append(lines, fmt.Sprintf("%s %s  %s %s",
			ui.Dim(fmt.Sprintf("%6s", r.ID)),
			ui.Truncate(r.Name, 48),
			ui.C(t.Muted, ui.LikeBar(r.Likes, max, 10)),
			ui.C(t.Like, fmt.Sprintf("%s %d", t.SymLike, r.Likes)),
		))
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(t.Muted, "Tip: like with `menu like <id>`"))
	return lines
}

func suggestionLines(r model.Record, ok bool) []string {
	t := ui.Current()
	if !ok {
		return []string{ui.C(t.Muted, "Nothing to suggest yet. Add one with `menu add <name>`.")}
	}
	return []string{
		ui.C(t.Accent, t.SymPick+" Today's pick"),
		"",
		fmt.Sprintf("%s  %s", ui.C(t.Title, r.Name), ui.C(t.Like, fmt.Sprintf("%s %d", t.SymLike, r.Likes))),
	}
}
