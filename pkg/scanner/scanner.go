// Package scanner discovers blueprint documents under a root directory of
// timestamp-named batch directories.
//
// Batch names sort lexicographically, which the capture side guarantees
// coincides with chronological order, so the scanner never parses
// timestamps. It resolves paths only; no file is opened here.
package scanner

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/agentstation/blueprint/pkg/errors"
)

// Entry is one candidate document file found inside a batch.
type Entry struct {
	// Batch is the batch directory name.
	Batch string

	// Name is the file name within the batch.
	Name string

	// Path is the full filesystem path for reading.
	Path string
}

// Source returns "<batch>/<name>", the form used in logs and reports.
func (e Entry) Source() string {
	return e.Batch + "/" + e.Name
}

// Batches returns the batch directory names under root in ascending
// timestamp order. A root that does not exist yields an empty list, not an
// error; the caller decides whether that is fatal.
func Batches(root string) ([]string, error) {
	dirs, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.WrapIO("read", root, err)
	}

	var batches []string
	for _, d := range dirs {
		if !d.IsDir() || strings.HasPrefix(d.Name(), ".") {
			continue
		}
		batches = append(batches, d.Name())
	}
	return batches, nil
}

// Scan returns every candidate document under root, ordered by batch
// ascending and then file name ascending within each batch. Only regular
// files directly inside a batch directory with a supported extension
// qualify; anything nested deeper is ignored.
func Scan(root string) ([]Entry, error) {
	batches, err := Batches(root)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for _, batch := range batches {
		dir := filepath.Join(root, batch)
		files, err := os.ReadDir(dir)
		if err != nil {
			return nil, errors.WrapIO("read", dir, err)
		}
		for _, f := range files {
			if f.IsDir() || !Supported(f.Name()) {
				continue
			}
			entries = append(entries, Entry{
				Batch: batch,
				Name:  f.Name(),
				Path:  filepath.Join(dir, f.Name()),
			})
		}
	}
	return entries, nil
}

// Supported reports whether a file name carries a document extension.
// Hidden files never qualify.
func Supported(name string) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
