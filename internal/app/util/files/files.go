package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const megabyte = 1024 * 1024

// FileInfo describes a file found on disk
type FileInfo struct {
	FullPath string
	ModTime  time.Time
	Name     string
}

// SizeMB returns the size of path in megabytes, or 0 if it cannot be stat'ed
func SizeMB(path string) float64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return float64(info.Size()) / megabyte
}

// Exists reports whether path exists
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// SummaryPath returns inputPath with its extension replaced by ".txt"
func SummaryPath(inputPath string) string {
	return strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".txt"
}

// WriteSummary stores text next to the input audio file and returns the path
func WriteSummary(inputPath, text string) (string, error) {
	out := SummaryPath(inputPath)
	if err := os.WriteFile(out, []byte(text), 0644); err != nil {
		return "", fmt.Errorf("failed to write summary %s: %w", out, err)
	}
	return out, nil
}

// RemoveIfExists deletes path; a missing file is not an error
func RemoveIfExists(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// ListFiles returns the regular, non-hidden files in dir accepted by keep,
// oldest first.
func ListFiles(dir string, keep func(name string) bool) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var infos []FileInfo
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") || !keep(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		infos = append(infos, FileInfo{
			FullPath: filepath.Join(dir, entry.Name()),
			ModTime:  info.ModTime(),
			Name:     entry.Name(),
		})
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].ModTime.Before(infos[j].ModTime)
	})

	return infos, nil
}
