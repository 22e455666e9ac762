// Package selector lets the user pick a demo file from a terminal.
package selector

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Dyastin-0/mithril/styles"
	"github.com/charmbracelet/huh"
	"github.com/dustin/go-humanize"
)

const (
	PAGESIZE = 15
	DemoExt  = ".dem"
)

const (
	optUp       = "up"
	optFilter   = "filter"
	optPageInfo = "page_info"
	optPrevPage = "prev_page"
	optNextPage = "next_page"
	optCancel   = "cancel"
)

var ErrCanceled = errors.New("canceled")

type FileSelector struct {
	selected string
	dir      string
	filter   string
	page     int
}

func NewFileSelector(dir string) *FileSelector {
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	return &FileSelector{
		dir: abs,
	}
}

// filteredEntries lists directories and demo files, directories first.
func (f *FileSelector) filteredEntries() ([]os.DirEntry, error) {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return nil, err
	}

	filterLower := strings.ToLower(f.filter)
	filtered := make([]os.DirEntry, 0, len(entries))
	for _, entry := range entries {
		name := strings.ToLower(entry.Name())
		if !entry.IsDir() && filepath.Ext(name) != DemoExt {
			continue
		}
		if filterLower != "" && !strings.Contains(name, filterLower) {
			continue
		}
		filtered = append(filtered, entry)
	}

	sort.Slice(filtered, func(i, j int) bool {
		if filtered[i].IsDir() != filtered[j].IsDir() {
			return filtered[i].IsDir()
		}
		return strings.ToLower(filtered[i].Name()) < strings.ToLower(filtered[j].Name())
	})

	return filtered, nil
}

func (f *FileSelector) options() ([]huh.Option[string], error) {
	entries, err := f.filteredEntries()
	if err != nil {
		return nil, err
	}

	totalItems := len(entries)
	totalPages := (totalItems + PAGESIZE - 1) / PAGESIZE
	if totalPages == 0 {
		totalPages = 1
	}

	if f.page < 0 {
		f.page = 0
	}
	if f.page > totalPages-1 {
		f.page = totalPages - 1
	}

	var options []huh.Option[string]

	if f.dir != "/" {
		options = append(options, huh.NewOption("../", optUp))
	}

	filterText := "Filter files"
	if f.filter != "" {
		filterText = fmt.Sprintf("Filter: '%s'", f.filter)
	}

	options = append(options, huh.NewOption(filterText, optFilter))

	if totalPages > 1 {
		pageInfo := fmt.Sprintf("Page %d of %d (%d items)", f.page+1, totalPages, totalItems)
		options = append(options, huh.NewOption(styles.PAGE.Render(pageInfo), optPageInfo))

		if f.page > 0 {
			options = append(options, huh.NewOption("<-", optPrevPage))
		}
		if f.page < totalPages-1 {
			options = append(options, huh.NewOption("->", optNextPage))
		}
	}

	start := f.page * PAGESIZE
	end := min(start+PAGESIZE, len(entries))

	for i := start; i < end; i++ {
		entry := entries[i]
		path := filepath.Join(f.dir, entry.Name())

		var name string
		if entry.IsDir() {
			name = styles.DIR.Render(entry.Name() + "/")
		} else {
			name = entry.Name()
			if info, err := entry.Info(); err == nil {
				name += styles.PAGE.Render(" " + humanize.IBytes(uint64(info.Size())))
			}
		}

		if path == f.selected {
			name = styles.SELECTED.Render("> " + name)
		}

		options = append(options, huh.NewOption(name, path))
	}

	options = append(options, huh.NewOption("Cancel", optCancel))

	return options, nil
}

// Run shows the picker until a demo file is chosen and returns its path.
func (f *FileSelector) Run() (string, error) {
	for {
		options, err := f.options()
		if err != nil {
			return "", err
		}

		title := fmt.Sprintf("Choose a demo in %s:", f.dir)
		if f.filter != "" {
			title += fmt.Sprintf(" [Filter: %s]", f.filter)
		}

		form := huh.NewSelect[string]().
			Title(title).
			Options(options...).
			Value(&f.selected).
			Height(20)

		if err := form.Run(); err != nil {
			return "", err
		}

		done, err := f.apply()
		if err != nil {
			return "", err
		}
		if done {
			return f.selected, nil
		}
	}
}

// apply handles the current selection. It reports true once a file is chosen.
func (f *FileSelector) apply() (bool, error) {
	switch f.selected {
	case optCancel:
		return false, ErrCanceled
	case optFilter:
		return false, f.Filter()
	case optPrevPage:
		f.page--
	case optNextPage:
		f.page++
	case optPageInfo:
	case optUp:
		f.navigate(filepath.Dir(f.dir))
	default:
		stat, err := os.Stat(f.selected)
		if err != nil {
			return false, nil
		}
		if stat.IsDir() {
			f.navigate(f.selected)
			return false, nil
		}
		return true, nil
	}

	return false, nil
}

func (f *FileSelector) navigate(dir string) {
	f.dir = dir
	f.page = 0
}

func (f *FileSelector) Filter() error {
	var newFilter string

	form := huh.NewInput().
		Title("Filter:").
		Value(&newFilter).
		Placeholder(f.filter)

	err := form.Run()
	if err != nil {
		return err
	}

	f.filter = strings.TrimSpace(newFilter)
	f.page = 0
	return nil
}
