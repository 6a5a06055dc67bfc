package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/idilsaglam/todolist/internal/ui"
)

const keysMarkdown = `
# Keys

## List

| key | action |
|---|---|
| ` + "`a`" + ` | add an item |
| ` + "`e`" + ` / ` + "`enter`" + ` | edit the selected item |
| ` + "`space`" + ` | toggle done |
| ` + "`d`" + ` / ` + "`x`" + ` | delete |
| ` + "`tab`" + ` | cycle all / active / completed |
| ` + "`q`" + ` / ` + "`esc`" + ` | quit |

## Add and edit

| key | action |
|---|---|
| ` + "`enter`" + ` | commit |
| ` + "`tab`" + ` | commit the edit (leaves the field) |
| ` + "`esc`" + ` | cancel |

An edit that leaves the title empty deletes the item.
`

func newKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "Show the TUI key bindings",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			width := 80
			if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
				width = w
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.RenderMarkdown(keysMarkdown, width))
			return nil
		},
	}
}
