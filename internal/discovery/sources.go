package discovery

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"combogrip/internal/domain"
)

// StdinSource is the source name used for candidates piped on stdin
const StdinSource = "stdin"

// DefaultMaxDepth bounds the repository walk when no depth is configured
const DefaultMaxDepth = 5

var skipDirs = []string{
	"node_modules", ".npm", "vendor", ".cache", "dist", "build", "target",
	".gradle", "__pycache__", ".pytest_cache", ".tox", "venv", ".venv", "env",
}

// ReadLines turns every non-blank line of r into a candidate. Leading and
// trailing whitespace is trimmed; duplicates are kept.
func ReadLines(r io.Reader, source string, kind domain.SourceKind) ([]domain.Candidate, error) {
	var candidates []domain.Candidate
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		label := strings.TrimSpace(scanner.Text())
		if label == "" {
			continue
		}
		candidates = append(candidates, domain.Candidate{
			Label:  label,
			Detail: fmt.Sprintf("%s:%d", source, line),
			Source: source,
			Kind:   kind,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", source, err)
	}
	return candidates, nil
}

// LoadFile reads a line-per-candidate file
func LoadFile(path string) ([]domain.Candidate, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return ReadLines(f, path, domain.SourceFile)
}

// ScanRepositories walks root looking for git repositories, descending at
// most maxDepth directories.
func ScanRepositories(ctx context.Context, root string, maxDepth int) ([]domain.Repository, error) {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	var repos []domain.Repository
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			log.Printf("Error walking path %s: %v", path, err)
			return nil
		}
		if !d.IsDir() {
			return nil
		}

		relPath, _ := filepath.Rel(root, path)
		if strings.Count(relPath, string(filepath.Separator)) > maxDepth {
			return filepath.SkipDir
		}

		name := d.Name()
		if name == ".git" {
			repoPath := filepath.Dir(path)
			repos = append(repos, domain.Repository{
				Path: repoPath,
				Name: filepath.Base(repoPath),
			})
			return filepath.SkipDir
		}
		if path != root && (strings.HasPrefix(name, ".") || slices.Contains(skipDirs, name)) {
			return filepath.SkipDir
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	disambiguate(repos)
	return repos, nil
}

// disambiguate gives repositories sharing a name a "parent/name" display name
func disambiguate(repos []domain.Repository) {
	counts := make(map[string]int, len(repos))
	for _, r := range repos {
		counts[r.Name]++
	}
	for i := range repos {
		r := &repos[i]
		r.DisplayName = r.Name
		if counts[r.Name] > 1 {
			r.DisplayName = filepath.Base(filepath.Dir(r.Path)) + "/" + r.Name
		}
	}
}
