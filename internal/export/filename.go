package export

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/Masterminds/sprig/v3"
)

// DefaultFilenameTemplate names exports after the time they were written.
const DefaultFilenameTemplate = `data_export_{{ .Now | date "20060102_150405" }}.{{ .Format }}`

// FilenameData is exposed to output filename templates.
type FilenameData struct {
	Now    time.Time
	Input  string // input file name without directory or extension
	RunID  string
	Format Format
}

// RenderFilename expands a filename template with Sprig functions.
func RenderFilename(tmpl string, data FilenameData) (string, error) {
	if tmpl == "" {
		tmpl = DefaultFilenameTemplate
	}

	t, err := template.New("filename").Funcs(sprig.TxtFuncMap()).Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("failed to parse filename template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute filename template: %w", err)
	}

	name := strings.TrimSpace(buf.String())
	if name == "" || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("invalid output filename %q", name)
	}
	return name, nil
}

// InputBase strips the directory and extension of an input path.
func InputBase(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
