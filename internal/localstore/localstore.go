// Package localstore keeps small JSON documents in a directory, one file per key.
// It plays the role browser local storage plays for the web storefront.
package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Dir is a directory of JSON documents.
type Dir struct {
	path string
}

// New returns a Dir rooted at path. The directory is created on first write.
func New(path string) *Dir {
	return &Dir{path: path}
}

// Get decodes the document stored under key into v.
// It returns (false, nil) when no document exists.
func (d *Dir) Get(key string, v any) (bool, error) {
	name, err := d.file(key)
	if err != nil {
		return false, err
	}
	data, err := os.ReadFile(name)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// Put replaces the document stored under key. The write goes through a temp file
// and a rename so readers never observe a partial document.
func (d *Dir) Put(key string, v any) error {
	name, err := d.file(key)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := os.MkdirAll(d.path, 0o700); err != nil {
		return fmt.Errorf("create %s: %w", d.path, err)
	}
	tmp, err := os.CreateTemp(d.path, "."+key+"-*")
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), name); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// Delete removes the document stored under key. Missing documents are not an error.
func (d *Dir) Delete(key string) error {
	name, err := d.file(key)
	if err != nil {
		return err
	}
	if err := os.Remove(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (d *Dir) file(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return filepath.Join(d.path, key+".json"), nil
}
