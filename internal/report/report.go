// Package report renders analysed occupations as an HTML dashboard, JSON or
// a plain-text summary and writes them to disk.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"onetexplorer/internal/domain"
)

type Format string

const (
	FormatHTML     Format = "html"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "md"
)

// ParseFormat accepts the format names used by --format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "html":
		return FormatHTML, nil
	case "json":
		return FormatJSON, nil
	case "md", "markdown", "text":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("unknown report format %q (want html, json or md)", s)
}

// Render writes rep in the given format.
func Render(w io.Writer, rep domain.Report, f Format) error {
	switch f {
	case FormatHTML:
		return RenderHTML(w, rep)
	case FormatJSON:
		return RenderJSON(w, rep)
	case FormatMarkdown:
		return RenderMarkdown(w, rep)
	}
	return fmt.Errorf("unknown report format %q", f)
}

func RenderJSON(w io.Writer, rep domain.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("encode report json: %w", err)
	}
	return nil
}

// Filename is the default file name for an occupation code, e.g.
// onet_15_1252_00.html.
func Filename(code string, f Format) string {
	replacer := strings.NewReplacer(".", "_", "-", "_", "/", "_", "\\", "_", ":", "_")
	return fmt.Sprintf("onet_%s.%s", replacer.Replace(strings.TrimSpace(code)), f)
}

// WriteReportFile renders rep to outputPath, or to the default file name in
// outputDir when outputPath is empty, and returns the path written.
func WriteReportFile(rep domain.Report, f Format, outputPath, outputDir string) (string, error) {
	path := outputPath
	if path == "" {
		path = filepath.Join(outputDir, Filename(rep.Occupation.Code(), f))
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", err
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := Render(file, rep, f); err != nil {
		_ = file.Close()
		_ = os.Remove(path)
		return "", err
	}
	return path, file.Close()
}
