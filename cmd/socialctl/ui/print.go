package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/uptrace/bun/migrate"
)

// PrintMigrationGroup reports the outcome of an up or down run
func PrintMigrationGroup(w io.Writer, verb string, group *migrate.MigrationGroup) {
	if group == nil || group.IsZero() {
		fmt.Fprintln(w, muted.Render("Nothing to "+verb))
		return
	}

	fmt.Fprintln(w, done.Render(fmt.Sprintf("Group #%d %s", group.ID, pastTense(verb))))
	for _, m := range group.Migrations {
		fmt.Fprintf(w, "  %s\n", m.Name)
	}
}

// PrintMigrationStatus lists every known migration and whether it ran
func PrintMigrationStatus(w io.Writer, ms migrate.MigrationSlice) {
	fmt.Fprintln(w, heading.Render("Migrations"))
	if len(ms) == 0 {
		fmt.Fprintln(w, muted.Render("  none"))
		return
	}

	for _, m := range ms {
		if m.IsApplied() {
			fmt.Fprintf(w, "  %s %s %s\n",
				done.Render("applied"),
				m.Name,
				muted.Render(fmt.Sprintf("(group %d, %s)", m.GroupID, m.MigratedAt.UTC().Format(time.RFC3339))))
			continue
		}
		fmt.Fprintf(w, "  %s %s\n", waiting.Render("pending"), m.Name)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%d applied, %d pending\n", len(ms.Applied()), len(ms.Unapplied()))
}

func PrintSuccess(w io.Writer, msg string) {
	fmt.Fprintln(w, done.Render(msg))
}

func PrintError(w io.Writer, msg string) {
	fmt.Fprintln(w, failure.Render("Error: "+msg))
}

func pastTense(verb string) string {
	switch verb {
	case "migrate":
		return "migrated"
	case "roll back":
		return "rolled back"
	default:
		return verb
	}
}
