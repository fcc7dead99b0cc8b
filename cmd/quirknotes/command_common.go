package main

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"text/tabwriter"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"quirknotes/internal/app/sanitizer"
	"quirknotes/internal/types"
)

const version = "dev"

const (
	formatTable = "table"
	formatJSON  = "json"
	formatTOML  = "toml"
	formatYAML  = "yaml"

	maxTableContentWidth = 48
)

func printNotes(output io.Writer, notes []*types.Note) {
	writer := tabwriter.NewWriter(output, 0, 8, 2, ' ', 0)
	fmt.Fprintln(writer, "ID\tTITLE\tCONTENT")
	for _, note := range notes {
		fmt.Fprintf(writer, "%s\t%s\t%s\n", note.ID, sanitizer.Title(note.Title), previewContent(note.Content))
	}
	_ = writer.Flush()
}

func previewContent(content string) string {
	runes := []rune(sanitizer.Line(content))
	if len(runes) <= maxTableContentWidth {
		return string(runes)
	}
	return strings.TrimSpace(string(runes[:maxTableContentWidth-1])) + "…"
}

func resolveFormat(raw string, allowed ...string) (string, error) {
	format := strings.ToLower(strings.TrimSpace(raw))
	if format == "yml" {
		format = formatYAML
	}
	for _, candidate := range allowed {
		if format == candidate {
			return format, nil
		}
	}
	return "", fmt.Errorf("invalid format %q: must be one of %s", raw, strings.Join(allowed, ", "))
}

func writeStructured(out io.Writer, format string, payload any) error {
	switch format {
	case formatJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(payload)
	case formatTOML:
		data, err := toml.Marshal(payload)
		if err != nil {
			return err
		}
		return writeWithNewline(out, data)
	case formatYAML:
		data, err := yaml.Marshal(payload)
		if err != nil {
			return err
		}
		return writeWithNewline(out, data)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

func writeWithNewline(out io.Writer, data []byte) error {
	if len(data) == 0 || data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	_, err := out.Write(data)
	return err
}

func buildVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		var revision string
		var modified string
		for _, setting := range info.Settings {
			switch setting.Key {
			case "vcs.revision":
				revision = setting.Value
			case "vcs.modified":
				modified = setting.Value
			}
		}
		if revision != "" {
			if len(revision) > 7 {
				revision = revision[:7]
			}
			if modified == "true" {
				return revision + "-dirty"
			}
			return revision
		}
	}

	exe, err := os.Executable()
	if err == nil {
		file, err := os.Open(exe)
		if err == nil {
			defer file.Close()
			hasher := sha256.New()
			if _, err := io.Copy(hasher, file); err == nil {
				sum := hasher.Sum(nil)
				return fmt.Sprintf("bin-%x", sum[:6])
			}
		}
	}

	return version
}
