package tui

import (
	"cmp"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/maruel/natural"
)

// Entry is one item of a directory listing.
type Entry struct {
	Name  string
	IsDir bool
	Size  int64
}

// Panel is one directory level of the browser.
type Panel struct {
	Dir     string
	Entries []Entry
	Cursor  int
	Err     error
}

// loadPanel lists dir with directories first, each group in natural name
// order ignoring case, so "v2" sorts before "v10".
// Read errors are kept on the panel so they can be shown in place.
func loadPanel(dir string, showHidden bool) *Panel {
	p := &Panel{Dir: dir}
	des, err := os.ReadDir(dir)
	if err != nil {
		p.Err = err
		return p
	}
	for _, de := range des {
		name := de.Name()
		if !showHidden && strings.HasPrefix(name, ".") {
			continue
		}
		e := Entry{Name: name, IsDir: de.IsDir()}
		if info, err := de.Info(); err == nil && !e.IsDir {
			e.Size = info.Size()
		}
		p.Entries = append(p.Entries, e)
	}
	slices.SortFunc(p.Entries, func(a, b Entry) int {
		if a.IsDir != b.IsDir {
			if a.IsDir {
				return -1
			}
			return 1
		}
		la, lb := strings.ToLower(a.Name), strings.ToLower(b.Name)
		switch {
		case natural.Less(la, lb):
			return -1
		case natural.Less(lb, la):
			return 1
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return p
}

// Title is the last path element, or the path itself for a root.
func (p *Panel) Title() string {
	if base := filepath.Base(p.Dir); base != string(filepath.Separator) && base != "." {
		return base
	}
	return p.Dir
}

// Selected returns the entry under the cursor.
func (p *Panel) Selected() (Entry, bool) {
	if p.Cursor < 0 || p.Cursor >= len(p.Entries) {
		return Entry{}, false
	}
	return p.Entries[p.Cursor], true
}

// Move shifts the cursor by delta, clamped to the listing.
func (p *Panel) Move(delta int) {
	if len(p.Entries) == 0 {
		p.Cursor = 0
		return
	}
	p.Cursor = max(0, min(len(p.Entries)-1, p.Cursor+delta))
}

// lines returns the plain text rows of the panel, without styling: a title,
// a rule and as many entries as fit, scrolled to keep the cursor in view.
func (p *Panel) lines(rows int) []string {
	if rows <= 0 {
		return nil
	}
	out := make([]string, 0, rows)
	out = append(out, " "+p.Title())
	if rows > 1 {
		out = append(out, "")
	}

	body := rows - len(out)
	switch {
	case p.Err != nil:
		out = append(out, " "+p.Err.Error())
	case len(p.Entries) == 0:
		out = append(out, " (empty)")
	default:
		start := scrollStart(p.Cursor, len(p.Entries), body)
		for i := start; i < len(p.Entries) && i < start+body; i++ {
			out = append(out, " "+p.Entries[i].label())
		}
	}
	for len(out) < rows {
		out = append(out, "")
	}
	return out[:rows]
}

// entryRow maps a row index returned by lines to an entry index, or -1.
func (p *Panel) entryRow(row, rows int) int {
	if p.Err != nil || row < 2 {
		return -1
	}
	i := scrollStart(p.Cursor, len(p.Entries), rows-2) + row - 2
	if i >= len(p.Entries) {
		return -1
	}
	return i
}

func (e Entry) label() string {
	if e.IsDir {
		return e.Name + string(filepath.Separator)
	}
	return fmt.Sprintf("%s  %s", e.Name, humanSize(e.Size))
}

func scrollStart(cursor, n, rows int) int {
	if rows <= 0 || cursor < rows {
		return 0
	}
	return min(cursor-rows+1, max(0, n-rows))
}

func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%dB", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%c", float64(n)/float64(div), "KMGTPE"[exp])
}
