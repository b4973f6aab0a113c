// Package stats summarizes the artifacts already present in an output tree.
package stats

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// DirStats is the artifact count and total size of one directory.
type DirStats struct {
	Dir   string // relative to the root, forward slashes
	Files int
	Bytes int64
}

// Report is the result of a scan.
type Report struct {
	Root string
	Dirs []DirStats
}

// TotalFiles sums the file counts of all directories.
func (r Report) TotalFiles() int {
	total := 0
	for _, d := range r.Dirs {
		total += d.Files
	}
	return total
}

// TotalBytes sums the sizes of all directories.
func (r Report) TotalBytes() int64 {
	var total int64
	for _, d := range r.Dirs {
		total += d.Bytes
	}
	return total
}

// Scan walks root and counts files with the given extension per directory.
// It never modifies the tree. A missing root yields an empty report.
func Scan(fs afero.Fs, root, ext string) (Report, error) {
	report := Report{Root: root}
	suffix := "." + strings.TrimPrefix(strings.ToLower(ext), ".")

	if ok, err := afero.DirExists(fs, root); err != nil {
		return report, fmt.Errorf("failed to stat %s: %w", root, err)
	} else if !ok {
		return report, nil
	}

	byDir := map[string]*DirStats{}
	err := afero.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(strings.ToLower(info.Name()), suffix) {
			return nil
		}

		rel, err := filepath.Rel(root, filepath.Dir(path))
		if err != nil {
			return err
		}
		dir := filepath.ToSlash(rel)

		d, ok := byDir[dir]
		if !ok {
			d = &DirStats{Dir: dir}
			byDir[dir] = d
		}
		d.Files++
		d.Bytes += info.Size()
		return nil
	})
	if err != nil {
		return report, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	for _, d := range byDir {
		report.Dirs = append(report.Dirs, *d)
	}
	sort.Slice(report.Dirs, func(i, j int) bool {
		return report.Dirs[i].Dir < report.Dirs[j].Dir
	})

	return report, nil
}
