package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/leomancini/street-metrics/internal/model"
)

// ErrNotFound marks a device that has no analysis directory. An existing
// but empty directory is not an error.
var ErrNotFound = errors.New("no analysis found for device")

// AnnotatedRecord is a persisted record annotated with its source files,
// as returned by the aggregation read path.
type AnnotatedRecord struct {
	model.SceneAnalysisRecord
	Filename string `json:"_filename"`
	Image    string `json:"_image"`
}

// Store persists one JSON document per (device, image) pair under
// <root>/<device>/<image-stem>.json. The filesystem is authoritative;
// there is no in-memory cache.
type Store struct {
	root string
}

func NewStore(root string) *Store {
	return &Store{root: root}
}

// Save writes the record for an image, replacing any previous document at
// the same key. The document is written to a temporary file in the target
// directory and renamed into place, so readers never observe a partial
// write. Returns the analysis filename.
func (s *Store) Save(device, imageFilename string, record *model.SceneAnalysisRecord) (string, error) {
	dir := filepath.Join(s.root, device)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create analysis directory: %w", err)
	}

	jsonFilename := replaceExt(imageFilename, ".json")
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal analysis record: %w", err)
	}

	tmp, err := os.CreateTemp(dir, jsonFilename+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write analysis record: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), filepath.Join(dir, jsonFilename)); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("replace analysis record: %w", err)
	}

	return jsonFilename, nil
}

// LoadAll lists and parses every persisted document for a device in
// ascending filename order, which is chronological given the
// timestamp-encoded naming convention. Each record is annotated with its
// analysis filename and the inferred image filename.
func (s *Store) LoadAll(device string) ([]AnnotatedRecord, error) {
	dir := filepath.Join(s.root, device)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, device)
		}
		return nil, fmt.Errorf("read analysis directory: %w", err)
	}

	filenames := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			filenames = append(filenames, e.Name())
		}
	}
	sort.Strings(filenames)

	records := make([]AnnotatedRecord, 0, len(filenames))
	for _, name := range filenames {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read analysis file %s: %w", name, err)
		}

		var annotated AnnotatedRecord
		if err := json.Unmarshal(data, &annotated.SceneAnalysisRecord); err != nil {
			return nil, fmt.Errorf("parse analysis file %s: %w", name, err)
		}
		annotated.Filename = name
		annotated.Image = replaceExt(name, ".jpg")
		records = append(records, annotated)
	}

	return records, nil
}

// replaceExt swaps the file extension, keeping the stem.
func replaceExt(filename, ext string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename)) + ext
}
