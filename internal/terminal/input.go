package terminal

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// maxWalkDepth limits how deep a directory argument is searched for PDFs
const maxWalkDepth = 4

// Reader reads lines of user input
type Reader struct {
	r *bufio.Reader
}

// NewReader creates a line reader over in
func NewReader(in io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(in)}
}

// ReadLine reads a line of input from the user. A final line without a
// trailing newline is returned before io.EOF.
func (r *Reader) ReadLine() (string, error) {
	input, err := r.r.ReadString('\n')
	if err != nil {
		if err == io.EOF && input != "" {
			return strings.TrimSpace(input), nil
		}
		return "", err
	}

	// Trim whitespace and newline
	return strings.TrimSpace(input), nil
}

// ExpandPDFPaths resolves upload arguments into a list of PDF files.
// Each argument may be a file, a glob, or a directory; an existing path
// always wins over glob expansion. Directories are
// searched for *.pdf files, skipping hidden entries. Duplicates are dropped
// and order of first appearance is kept.
func ExpandPDFPaths(args []string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}

	for _, arg := range args {
		arg = expandHome(arg)

		// A file named like a pattern is taken literally.
		matches := []string{arg}
		if _, statErr := os.Stat(arg); statErr != nil && hasGlobMeta(arg) {
			m, err := filepath.Glob(arg)
			if err != nil {
				return nil, fmt.Errorf("bad pattern %q: %w", arg, err)
			}
			if len(m) == 0 {
				return nil, fmt.Errorf("no files match %s", arg)
			}
			matches = m
		}

		for _, path := range matches {
			info, err := os.Stat(path)
			if err != nil {
				return nil, fmt.Errorf("cannot read %s: %w", path, err)
			}
			if !info.IsDir() {
				add(path)
				continue
			}
			pdfs, err := FindPDFs(path)
			if err != nil {
				return nil, err
			}
			if len(pdfs) == 0 {
				return nil, fmt.Errorf("no PDF files found in %s", path)
			}
			for _, p := range pdfs {
				add(p)
			}
		}
	}

	return out, nil
}

// FindPDFs walks dir and returns the PDF files beneath it in lexical order
func FindPDFs(dir string) ([]string, error) {
	var matches []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip unreadable entries
		}

		relPath, err := filepath.Rel(dir, path)
		if err != nil || relPath == "." {
			return nil
		}

		// Skip hidden files and directories
		if strings.HasPrefix(info.Name(), ".") {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if info.IsDir() {
			if strings.Count(relPath, string(filepath.Separator)) >= maxWalkDepth {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.EqualFold(filepath.Ext(path), ".pdf") {
			matches = append(matches, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search %s: %w", dir, err)
	}

	sort.Strings(matches)
	return matches, nil
}

func hasGlobMeta(path string) bool {
	return strings.ContainsAny(path, "*?[")
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
