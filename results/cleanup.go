package results

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"go.uber.org/zap"
)

// Field snapshot filenames look like opt_<level>_<iteration>_<points>.vtu
// with an optional _surf suffix and .vtu or .vtm extension.
var snapshotName = regexp.MustCompile(`^opt_(\d+)_(\d+)_(\d+)(?:_surf)?\.(?:vtu|vtm)$`)

// SnapshotIteration extracts the iteration number from a field snapshot
// filename, or false when the name does not match the pattern.
func SnapshotIteration(filename string) (int, bool) {
	m := snapshotName.FindStringSubmatch(filename)
	if m == nil {
		return 0, false
	}
	it, _ := strconv.Atoi(m[2])
	return it, true
}

// CleanJob removes field snapshots in one job directory whose iteration
// differs from keepIteration. Returns deleted and kept counts.
func CleanJob(jobDir string, keepIteration int, dryRun bool, log *zap.Logger) (deleted, kept int, err error) {
	var files []string
	for _, pattern := range []string{"*.vtu", "*.vtm"} {
		matches, err := filepath.Glob(filepath.Join(jobDir, pattern))
		if err != nil {
			return 0, 0, err
		}
		files = append(files, matches...)
	}
	sort.Strings(files)

	for _, path := range files {
		it, ok := SnapshotIteration(filepath.Base(path))
		if !ok {
			continue
		}
		if it == keepIteration {
			kept++
			continue
		}
		if dryRun {
			log.Info("would delete", zap.String("file", path), zap.Int("iteration", it))
			deleted++
			continue
		}
		if err := os.Remove(path); err != nil {
			log.Warn("delete failed", zap.String("file", path), zap.Error(err))
			continue
		}
		deleted++
	}
	return deleted, kept, nil
}

// CleanAll runs CleanJob over every job directory under resultsDir.
func CleanAll(resultsDir string, keepIteration int, dryRun bool, log *zap.Logger) (deleted, kept int, err error) {
	entries, err := os.ReadDir(resultsDir)
	if err != nil {
		return 0, 0, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() && e.Name()[0] != '.' {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		d, k, err := CleanJob(filepath.Join(resultsDir, name), keepIteration, dryRun, log)
		if err != nil {
			return deleted, kept, err
		}
		log.Info("cleaned job", zap.String("job", name), zap.Int("deleted", d), zap.Int("kept", k))
		deleted += d
		kept += k
	}
	return deleted, kept, nil
}
