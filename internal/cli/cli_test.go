package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/c4export/pkg/errors"
	"github.com/matzehuels/c4export/pkg/pipeline"
)

const cliDoc = `{
  "workspaces": [
    {"name": "Context",
     "nodes": [
       {"id": "user", "position": {"x": 0, "y": 0}, "data": {"type": "client"}},
       {"id": "shop", "position": {"x": 300, "y": 0}, "data": {"type": "service"}}
     ],
     "edges": [
       {"id": "e1", "source": "user", "target": "shop", "data": {"connectionType": "rest"}},
       {"id": "e2", "source": "user", "target": "shop", "data": {"connectionType": "rest"}}
     ]},
    {"name": "Data Plane",
     "nodes": [{"id": "db", "position": {"x": 0, "y": 0}, "data": {"type": "database"}}],
     "edges": []}
  ]
}`

// isolate points every config and cache lookup at temp dirs and captures
// stdout. It returns the captured output buffer.
func isolate(t *testing.T) *bytes.Buffer {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	for _, k := range []string{"C4EXPORT_ADDR", "C4EXPORT_CACHE", "C4EXPORT_CACHE_DIR", "C4EXPORT_FILE_PREFIX", "C4EXPORT_WRAP_WIDTH", "REDIS_URL", "MONGO_URI"} {
		t.Setenv(k, "")
	}
	t.Chdir(t.TempDir())

	var buf bytes.Buffer
	prevOut, prevSpin := stdout, spinnerOut
	stdout, spinnerOut = &buf, io.Discard
	t.Cleanup(func() { stdout, spinnerOut = prevOut, prevSpin })
	return &buf
}

func runCLI(t *testing.T, args ...string) error {
	t.Helper()
	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func writeDoc(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRootCommand(t *testing.T) {
	root := New(io.Discard, log.InfoLevel).RootCommand()
	for _, name := range []string{"export", "preview", "serve", "cache", "completion"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	if root.PersistentFlags().Lookup("verbose") == nil {
		t.Error("--verbose flag missing")
	}
}

func TestExportCommand(t *testing.T) {
	out := isolate(t)
	doc := writeDoc(t, "model.json", cliDoc)
	dir := filepath.Join(t.TempDir(), "diagrams")

	if err := runCLI(t, "export", doc, "-o", dir, "--name", "shop", "--no-cache"); err != nil {
		t.Fatalf("export: %v", err)
	}

	want := filepath.Join(dir, "shop-"+time.Now().Format(pipeline.DateLayout)+".drawio")
	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("expected %s: %v", want, err)
	}
	if !bytes.Contains(data, []byte(`pages="2"`)) {
		t.Errorf("written file is not a two-page document")
	}
	for _, s := range []string{"Exported 2 pages", "1 edge retained", "1 removed", "Data Plane"} {
		if !strings.Contains(out.String(), s) {
			t.Errorf("output missing %q:\n%s", s, out)
		}
	}
}

func TestExportCommandToStdout(t *testing.T) {
	out := isolate(t)
	doc := writeDoc(t, "model.yaml", "nodes:\n  - id: a\n    data: {type: service}\n")

	if err := runCLI(t, "export", doc, "-o", "-"); err != nil {
		t.Fatalf("export: %v", err)
	}
	if got := out.String(); !strings.HasPrefix(got, "<?xml") || !strings.Contains(got, `pages="1"`) {
		t.Errorf("stdout = %.80q, want raw document", got)
	}
}

func TestExportCommandErrors(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"missing file", []string{"export", filepath.Join(dir, "nope.json")}, errors.ErrCodeFileNotFound},
		{"unsupported extension", []string{"export", writeDoc(t, "model.drawio", "<mxfile/>")}, errors.ErrCodeInvalidFormat},
		{"unknown page", []string{"export", writeDoc(t, "m.json", cliDoc), "-p", "Nope", "-o", dir}, errors.ErrCodePageNotFound},
		{"bad prefix", []string{"export", writeDoc(t, "m.json", cliDoc), "--name", "a/b", "-o", dir}, errors.ErrCodeInvalidPath},
		{"bad preview format", []string{"preview", writeDoc(t, "m.json", cliDoc), "-f", "gif"}, errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := runCLI(t, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestExportCommandUsesConfig(t *testing.T) {
	out := isolate(t)
	if err := os.WriteFile("c4export.toml", []byte("[export]\nfile_prefix = \"configured\"\noutput_dir = \"out\"\n\n[cache]\nbackend = \"none\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	doc := writeDoc(t, "model.json", cliDoc)

	if err := runCLI(t, "export", doc); err != nil {
		t.Fatalf("export: %v", err)
	}
	want := filepath.Join("out", "configured-"+time.Now().Format(pipeline.DateLayout)+".drawio")
	if _, err := os.Stat(want); err != nil {
		t.Errorf("config defaults not applied, %s missing (output %s)", want, out)
	}
}

func TestCachePathCommand(t *testing.T) {
	out := isolate(t)
	if err := runCLI(t, "cache", "path"); err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if got := strings.TrimSpace(out.String()); !strings.HasSuffix(got, appName) {
		t.Errorf("cache path = %q, want a %s directory", got, appName)
	}

	out.Reset()
	if err := runCLI(t, "cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if !strings.Contains(out.String(), "Cleared file cache") {
		t.Errorf("cache clear output = %q", out)
	}
}

func TestPreviewFilename(t *testing.T) {
	tests := []struct {
		page, format, want string
	}{
		{"Data Plane", "svg", "data-plane.svg"},
		{"  Payments / EU ", "png", "payments-eu.png"},
		{"Архитектура", "pdf", "preview.pdf"},
		{"v2", "svg", "v2.svg"},
	}
	for _, tt := range tests {
		if got := previewFilename(tt.page, tt.format); got != tt.want {
			t.Errorf("previewFilename(%q) = %q, want %q", tt.page, got, tt.want)
		}
	}
}

func TestFormatFromOutput(t *testing.T) {
	tests := map[string]string{
		"":          "svg",
		"out.png":   "png",
		"out.pdf":   "pdf",
		"out.svg":   "svg",
		"something": "svg",
	}
	for in, want := range tests {
		if got := formatFromOutput(in); got != want {
			t.Errorf("formatFromOutput(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRenderSummary(t *testing.T) {
	s := pipeline.Summary{
		Pages: []pipeline.PageSummary{{Name: "Context", Nodes: 2, Edges: 1}},
		Edges: 1,
	}
	fresh := renderSummary(s, false)
	for _, want := range []string{"1 page", "1 edge retained", "fresh", "Context", "2 nodes"} {
		if !strings.Contains(fresh, want) {
			t.Errorf("summary missing %q:\n%s", want, fresh)
		}
	}
	if strings.Contains(fresh, "removed") {
		t.Error("summary should omit a zero removed count")
	}
	if !strings.Contains(renderSummary(s, true), "cached") {
		t.Error("cached summary should say so")
	}
}

func TestReportError(t *testing.T) {
	var buf bytes.Buffer
	ReportError(&buf, errors.New(errors.ErrCodePageNotFound, "page %q not found", "Ops"))
	got := buf.String()
	if !strings.Contains(got, `page "Ops" not found`) || !strings.Contains(got, "(PAGE_NOT_FOUND)") {
		t.Errorf("coded error = %q", got)
	}
	if strings.Contains(got, "PAGE_NOT_FOUND: ") {
		t.Errorf("code prefix not trimmed: %q", got)
	}

	buf.Reset()
	ReportError(&buf, io.ErrUnexpectedEOF)
	if !strings.Contains(buf.String(), "unexpected EOF") {
		t.Errorf("plain error = %q", buf.String())
	}
}
