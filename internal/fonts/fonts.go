// Package fonts locates a TTF/OTF file for the overlays.
package fonts

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Exts are the file extensions treated as fonts.
var Exts = []string{".ttf", ".otf"}

// BaseDirs are tried in order so fonts are found from the repo root or from cmd/drive.
func BaseDirs() []string {
	return []string{"assets/fonts", "../../assets/fonts"}
}

func isFont(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Exts {
		if ext == e {
			return true
		}
	}
	return false
}

// ScanDir returns slash-separated paths of every font file under dir, relative to dir and sorted.
// A missing dir is not an error.
func ScanDir(dir string) ([]string, error) {
	var out []string
	dir = filepath.Clean(dir)
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() || !isFont(path) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	sort.Strings(out)
	return out, err
}

// Find returns the full path of the first font under dirs, preferring a "Regular" weight.
func Find(dirs []string) (string, error) {
	for _, dir := range dirs {
		list, err := ScanDir(dir)
		if err != nil || len(list) == 0 {
			continue
		}
		pick := list[0]
		for _, rel := range list {
			if strings.Contains(strings.ToLower(rel), "regular") {
				pick = rel
				break
			}
		}
		return filepath.Join(dir, filepath.FromSlash(pick)), nil
	}
	return "", os.ErrNotExist
}
