package steam

import (
	"fmt"
	"os"
	"strings"

	"github.com/andygrunwald/vdf"
)

// readVDF parses a KeyValues text file into nested maps.
func readVDF(path string) (map[string]interface{}, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := vdf.NewParser(f).Parse()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return m, nil
}

// child returns the value under key, matched case-insensitively. Valve's
// files disagree on casing between versions ("LibraryFolders" vs
// "libraryfolders").
func child(m map[string]interface{}, key string) (interface{}, bool) {
	if v, ok := m[key]; ok {
		return v, true
	}
	for k, v := range m {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return nil, false
}

func childMap(m map[string]interface{}, key string) (map[string]interface{}, bool) {
	v, ok := child(m, key)
	if !ok {
		return nil, false
	}
	sub, ok := v.(map[string]interface{})
	return sub, ok
}

func childString(m map[string]interface{}, key string) (string, bool) {
	v, ok := child(m, key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
