package migration

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"text/template"
	"time"
	"unicode"
)

const (
	upSuffix      = ".up.sql"
	downSuffix    = ".down.sql"
	versionDigits = 6
)

var headerTmpl = template.Must(template.New("header").Parse(
	`-- Migration: {{.Name}}{{if .Rollback}} (Rollback){{end}}
-- Created: {{.Created.Format "2006-01-02T15:04:05Z07:00"}}
{{- if and .Description (not .Rollback)}}
-- Description: {{.Description}}
{{- end}}

`))

// Pair is a freshly written up/down migration
type Pair struct {
	Version  int
	Slug     string
	UpPath   string
	DownPath string
}

// VersionString is the zero padded version used in file names
func (p Pair) VersionString() string {
	return fmt.Sprintf("%0*d", versionDigits, p.Version)
}

// Create writes the next numbered up/down pair into dir, creating dir when
// needed. Numbering continues after the highest version already present.
func Create(dir, name, description string, now time.Time) (Pair, error) {
	slug := slugify(name)
	if slug == "" {
		return Pair{}, fmt.Errorf("migration name %q has no usable characters", name)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Pair{}, fmt.Errorf("create migrations directory: %w", err)
	}
	existing, err := List(FromDir(dir))
	if err != nil {
		return Pair{}, err
	}

	p := Pair{Version: 1, Slug: slug}
	if n := len(existing); n > 0 {
		p.Version = versionOf(existing[n-1]) + 1
	}
	base := filepath.Join(dir, p.VersionString()+"_"+slug)
	p.UpPath, p.DownPath = base+upSuffix, base+downSuffix

	header := struct {
		Name, Description string
		Created           time.Time
		Rollback          bool
	}{Name: name, Description: description, Created: now}
	if err := writeNew(p.UpPath, header); err != nil {
		return Pair{}, err
	}
	header.Rollback = true
	if err := writeNew(p.DownPath, header); err != nil {
		_ = os.Remove(p.UpPath)
		return Pair{}, err
	}
	return p, nil
}

// writeNew fails instead of overwriting an existing migration
func writeNew(path string, data any) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	if err := headerTmpl.Execute(f, data); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}

// slugify lowercases name and joins its words with single underscores.
// Spaces, hyphens and underscores separate words; other symbols are dropped.
func slugify(name string) string {
	words := strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return r == ' ' || r == '-' || r == '_'
	})
	kept := words[:0]
	for _, w := range words {
		w = strings.Map(func(r rune) rune {
			if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
				return r
			}
			return -1
		}, w)
		if w != "" {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, "_")
}

// List returns the base names of the up migrations of src ordered by
// version. A missing directory has no migrations.
func List(src Source) ([]string, error) {
	entries, err := fs.ReadDir(src.fsys, ".")
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read migrations %s: %w", src, err)
	}

	var names []string
	for _, e := range entries {
		if base, ok := strings.CutSuffix(e.Name(), upSuffix); ok && base != "" && !e.IsDir() {
			names = append(names, base)
		}
	}
	slices.SortStableFunc(names, func(a, b string) int {
		if d := versionOf(a) - versionOf(b); d != 0 {
			return d
		}
		return strings.Compare(a, b)
	})
	return names, nil
}

// versionOf parses the numeric prefix of a migration base name, 0 if absent
func versionOf(base string) int {
	prefix, _, _ := strings.Cut(base, "_")
	n, err := strconv.Atoi(prefix)
	if err != nil {
		return 0
	}
	return n
}
