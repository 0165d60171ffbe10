// Package loader turns command-line paths into source units. Directories
// are walked for files carrying one of the profile's extensions; files
// named explicitly are always taken.
package loader

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/ddoc/design"
	"github.com/dhamidi/ddoc/profile"
)

var log = commonlog.GetLogger("ddoc.loader")

// Matches reports whether path has one of the profile's extensions.
func Matches(path string, prof *profile.Profile) bool {
	ext := filepath.Ext(path)
	for _, e := range prof.Extensions {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

// Discover expands paths into a sorted list of unique source files.
// Hidden directories are skipped.
func Discover(paths []string, prof *profile.Profile) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		path = filepath.Clean(path)
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", root, err)
		}
		if !info.IsDir() {
			add(root)
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if Matches(path, prof) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", root, err)
		}
	}

	sort.Strings(files)
	log.Debugf("discovered %d files", len(files))
	return files, nil
}

// Load reads every file Discover finds.
func Load(paths []string, prof *profile.Profile) ([]design.Unit, error) {
	files, err := Discover(paths, prof)
	if err != nil {
		return nil, err
	}
	units := make([]design.Unit, 0, len(files))
	for _, path := range files {
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		units = append(units, design.Unit{Path: path, Src: src})
	}
	return units, nil
}
