package holiday

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
)

// Document is the persisted form of a List.
type Document struct {
	Holidays []Record `json:"holidays"`
}

// Record is one raw (name, date) pair as stored on disk.
type Record struct {
	Name string `json:"name"`
	Date string `json:"date"`
}

// ReadFile decodes the holiday document at path.
func ReadFile(path string) (Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Document{}, err
	}
	var doc Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return Document{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return doc, nil
}

// WriteFile writes doc to path via a temp file then rename.
func WriteFile(path string, doc Document) error {
	if doc.Holidays == nil {
		doc.Holidays = []Record{}
	}
	b, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("encode holidays: %w", err)
	}
	b = append(b, '\n')

	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()

	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Chmod(0o644); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
