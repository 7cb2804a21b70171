package logrec

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ScanError records a file that could not be parsed cleanly.
type ScanError struct {
	Path string
	Err  error
}

// ScanResult holds the parsed records of a log directory.
type ScanResult struct {
	// Records in filename order. Records whose frontmatter was
	// unterminated are included with the full file as body.
	Records []*Record

	// Problems lists files that parsed with errors (unterminated
	// frontmatter, malformed YAML).
	Problems []ScanError
}

// Scan reads every markdown file under dir (README.md excepted) and parses
// it as a workflow log record. A missing directory yields an empty result.
func Scan(dir string) (*ScanResult, error) {
	result := &ScanResult{}

	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		if !strings.HasSuffix(name, ".md") || name == "README.md" {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return result, nil
		}
		return nil, err
	}
	sort.Strings(paths)

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		rec, err := Parse(path, string(data))
		if err != nil {
			result.Problems = append(result.Problems, ScanError{Path: path, Err: err})
			if rec == nil {
				continue
			}
		}
		result.Records = append(result.Records, rec)
	}
	return result, nil
}
