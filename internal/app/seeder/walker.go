package seeder

import (
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/codetrail/codetrail-backend/internal/app/seeder/contentfile"
)

// ModuleRef locates one content module on disk along with the metadata the
// directory layout encodes: <category-slug>/<difficulty>/<topic-dir>.
// TopicDir is slash-separated relative to the difficulty directory; it has
// more than one segment when the module sits under a grouping directory.
type ModuleRef struct {
	Dir          string
	CategorySlug string
	Difficulty   string
	TopicDir     string
}

// WalkResult is what a walk of the content root produced. Skipped lists
// dead-end directories: no content file and nothing below to descend into.
type WalkResult struct {
	Modules []ModuleRef
	Skipped []string
}

// WalkContentRoot discovers content modules under root. Traversal is
// depth-first in lexicographic directory order, so results are
// deterministic across runs and machines. Plain files at any level are
// ignored.
func WalkContentRoot(root string) (*WalkResult, error) {
	categories, err := readDirs(root)
	if err != nil {
		return nil, fmt.Errorf("walk content root: %w", err)
	}

	res := &WalkResult{}
	for _, category := range categories {
		difficulties, err := readDirs(filepath.Join(root, category))
		if err != nil {
			return nil, fmt.Errorf("walk category %s: %w", category, err)
		}
		for _, difficulty := range difficulties {
			topics, err := readDirs(filepath.Join(root, category, difficulty))
			if err != nil {
				return nil, fmt.Errorf("walk %s/%s: %w", category, difficulty, err)
			}
			for _, topic := range topics {
				dir := filepath.Join(root, category, difficulty, topic)
				if err := walkTopics(dir, topic, category, difficulty, res); err != nil {
					return nil, fmt.Errorf("walk %s/%s: %w", category, difficulty, err)
				}
			}
		}
	}
	return res, nil
}

// walkTopics descends below a category/difficulty pair. A directory holding
// a content file is a module and the walk stops there; one with
// subdirectories is a grouping level and the walk continues into it; a
// childless directory without a content file is recorded as skipped.
func walkTopics(dir, rel, category, difficulty string, res *WalkResult) error {
	if hasContentFile(dir) {
		res.Modules = append(res.Modules, ModuleRef{
			Dir:          dir,
			CategorySlug: category,
			Difficulty:   difficulty,
			TopicDir:     rel,
		})
		return nil
	}
	children, err := readDirs(dir)
	if err != nil {
		return err
	}
	if len(children) == 0 {
		res.Skipped = append(res.Skipped, dir)
		return nil
	}
	for _, name := range children {
		if err := walkTopics(filepath.Join(dir, name), path.Join(rel, name), category, difficulty, res); err != nil {
			return err
		}
	}
	return nil
}

// readDirs returns the subdirectory names of dir in lexicographic order.
func readDirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

func hasContentFile(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, contentfile.ContentFileName))
	return err == nil && info.Mode().IsRegular()
}
