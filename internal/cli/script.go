package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/store/seedfile"
	"github.com/idilsaglam/todolist/internal/todolist"
	"github.com/idilsaglam/todolist/internal/ui"
)

var errScriptFailed = errors.New("script had failing lines")

func newScriptCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "script [file]",
		Short: "Apply list events from a file or stdin, one per line",
		Long: strings.TrimSpace(`
Each line is one UI event applied to a fresh session list:

  add <title...>        submit the new-item input
  toggle <n>            flip done for item n
  rm <n>                delete item n (out of range is ignored)
  edit <n>              start editing item n
  update <n> [title]    commit the edit; an empty title deletes the item
  cancel <n>            leave edit mode
  status <all|active|completed>
  ls [group]            print the visible items
  find <query>          print items whose title fuzzy-matches
  dump                  print the list as a YAML seed file

Item numbers are 1-based positions in the full list. Blank lines and
lines starting with # are skipped.`),
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open script: %w", err)
				}
				defer f.Close()
				in = f
			}
			ctl, err := app.newController()
			if err != nil {
				return err
			}
			r := &scriptRunner{ctl: ctl, out: cmd.OutOrStdout(), errOut: cmd.ErrOrStderr()}
			return r.run(in)
		},
	}
	addSeedFlags(cmd, app)
	return cmd
}

type scriptRunner struct {
	ctl    *todolist.Controller
	out    io.Writer
	errOut io.Writer
	failed int
}

func (r *scriptRunner) run(in io.Reader) error {
	sc := bufio.NewScanner(in)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := r.apply(line); err != nil {
			r.failed++
			ui.Fail(r.errOut, fmt.Sprintf("line %d: %v", lineNo, err))
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	if r.failed > 0 {
		return fmt.Errorf("%w: %d", errScriptFailed, r.failed)
	}
	return nil
}

func (r *scriptRunner) apply(line string) error {
	verb, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch verb {
	case "add":
		it, ok := r.ctl.Submit(rest)
		if !ok {
			return errors.New("add: empty title")
		}
		ui.OK(r.out, fmt.Sprintf("added #%d %s", r.ctl.IndexOf(it)+1, it.Title()))

	case "toggle", "done":
		it, err := r.itemArg(verb, rest)
		if err != nil {
			return err
		}
		r.ctl.Toggle(it)
		ui.OK(r.out, "toggled")

	case "rm":
		n, err := strconv.Atoi(rest)
		if err != nil {
			return fmt.Errorf("rm: not a number: %q", rest)
		}
		before := r.ctl.Len()
		r.ctl.Remove(n - 1)
		if r.ctl.Len() < before {
			ui.OK(r.out, "removed")
		}

	case "edit":
		it, err := r.itemArg(verb, rest)
		if err != nil {
			return err
		}
		r.ctl.Edit(it)
		ui.OK(r.out, "editing "+it.Title())

	case "update":
		num, title, _ := strings.Cut(rest, " ")
		it, err := r.itemArg(verb, num)
		if err != nil {
			return err
		}
		if !it.Editable {
			return fmt.Errorf("update: item %s is not being edited", num)
		}
		r.ctl.Update(it, title)
		if r.ctl.IndexOf(it) == -1 {
			ui.OK(r.out, "removed")
			return nil
		}
		ui.OK(r.out, "updated")

	case "cancel":
		it, err := r.itemArg(verb, rest)
		if err != nil {
			return err
		}
		r.ctl.CancelEditing(it)
		ui.OK(r.out, "cancelled")

	case "status":
		st, err := todolist.ParseStatus(rest)
		if err != nil {
			return fmt.Errorf("status: %w", err)
		}
		r.ctl.SetStatus(st)

	case "ls":
		r.list(r.ctl.Visible(), rest == "group")

	case "find":
		r.list(r.ctl.Search(rest), false)

	case "dump":
		return seedfile.Write(r.out, r.ctl.List())

	default:
		return fmt.Errorf("unknown command %q", verb)
	}
	return nil
}

// itemArg resolves a 1-based item number against the full list.
func (r *scriptRunner) itemArg(verb, arg string) (*model.Item, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return nil, fmt.Errorf("%s: not a number: %q", verb, arg)
	}
	items := r.ctl.List()
	if n < 1 || n > len(items) {
		return nil, fmt.Errorf("%s: index out of range: have %d, got %d", verb, len(items), n)
	}
	return items[n-1], nil
}

func (r *scriptRunner) list(items []*model.Item, group bool) {
	done := len(r.ctl.WithCompleted(true))
	pending := r.ctl.Len() - done

	lines := []string{
		ui.Header(done, pending),
		ui.Current().Muted.Render(ui.ProgressBar(done, done+pending, 28)),
		"",
	}
	if group {
		lines = append(lines, r.groupLines(items)...)
	} else {
		lines = append(lines, r.flatLines(items)...)
	}
	fmt.Fprintln(r.out, ui.Panel(strings.Join(lines, "\n")))
}

func (r *scriptRunner) flatLines(items []*model.Item) []string {
	t := ui.Current()
	if len(items) == 0 {
		return []string{t.Muted.Render("no items")}
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		idx := fmt.Sprintf("%2d.", r.ctl.IndexOf(it)+1)
		box := t.Muted.Render(t.BoxUnchecked)
		title := ui.Truncate(it.Title(), 80)
		if it.Done() {
			box = t.Success.Render(t.BoxChecked)
		}
		if it.Editable {
			title += " " + t.Accent.Render("(editing)")
		}
		out = append(out, fmt.Sprintf("%s %s %s", t.Muted.Render(idx), box, title))
	}
	return out
}

func (r *scriptRunner) groupLines(items []*model.Item) []string {
	var pend, done []*model.Item
	for _, it := range items {
		if it.Done() {
			done = append(done, it)
		} else {
			pend = append(pend, it)
		}
	}
	t := ui.Current()
	lines := []string{t.Accent.Render("Pending")}
	if len(pend) == 0 {
		lines = append(lines, t.Muted.Render("(none)"))
	} else {
		lines = append(lines, r.flatLines(pend)...)
	}
	lines = append(lines, "", t.Accent.Render("Done"))
	if len(done) == 0 {
		lines = append(lines, t.Muted.Render("(none)"))
	} else {
		lines = append(lines, r.flatLines(done)...)
	}
	return lines
}
