// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdfgen

import (
	"bytes"
	"compress/zlib"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/tetralith/mesh2pdf/internal/u3d"
	"github.com/tetralith/mesh2pdf/pkg/types"
)

// decodedStreams inflates every FlateDecode stream in the document and
// concatenates the results, so tests can assert on page content that
// is compressed on disk.
func decodedStreams(t *testing.T, doc []byte) string {
	t.Helper()
	var out strings.Builder
	rest := doc
	for {
		i := bytes.Index(rest, []byte("stream\n"))
		if i < 0 {
			break
		}
		rest = rest[i+len("stream\n"):]
		j := bytes.Index(rest, []byte("\nendstream"))
		if j < 0 {
			t.Fatal("stream without endstream")
		}
		if zr, err := zlib.NewReader(bytes.NewReader(rest[:j])); err == nil {
			io.Copy(&out, zr)
			zr.Close()
		}
		rest = rest[j+len("\nendstream"):]
	}
	return out.String()
}

func TestEmbedU3D(t *testing.T) {
	tmpDir := t.TempDir()
	u3dPath := filepath.Join(tmpDir, "bunny.u3d")
	if err := u3d.WritePlaceholder(u3dPath); err != nil {
		t.Fatalf("writing U3D fixture: %v", err)
	}

	pdfPath := filepath.Join(tmpDir, "out", "bunny_3d.pdf")
	var warnings bytes.Buffer
	if err := EmbedU3D(u3dPath, pdfPath, types.EmbedConfig{}, &warnings); err != nil {
		t.Fatalf("EmbedU3D: %v", err)
	}

	doc, err := os.ReadFile(pdfPath)
	if err != nil {
		t.Fatalf("reading PDF: %v", err)
	}

	text := string(doc)
	if !strings.HasPrefix(text, "%PDF-1.7") {
		t.Errorf("PDF does not start with version header: %q", text[:16])
	}
	for _, marker := range []string{
		"/Subtype /3D",
		"/Subtype /U3D",
		"/Type /3DView",
		"%%EOF",
	} {
		if !strings.Contains(text, marker) {
			t.Errorf("PDF missing %q", marker)
		}
	}
	if content := decodedStreams(t, doc); !strings.Contains(content, "(3D Model: bunny)") {
		t.Errorf("page content missing title, got:\n%s", content)
	}
	if warnings.Len() != 0 {
		t.Errorf("unexpected warnings: %s", warnings.String())
	}
}

func TestEmbedU3D_MissingInput(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.u3d")
	err := EmbedU3D(missing, filepath.Join(t.TempDir(), "out.pdf"), types.EmbedConfig{}, &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), missing) {
		t.Fatalf("error = %v, want reference to %s", err, missing)
	}
}

func TestEmbedU3D_Placeholder(t *testing.T) {
	pdfPath := filepath.Join(t.TempDir(), "demo_3d.pdf")
	var out bytes.Buffer

	cfg := types.EmbedConfig{Placeholder: true, Title: "Demo Scene"}
	if err := EmbedU3D("ignored.u3d", pdfPath, cfg, &out); err != nil {
		t.Fatalf("EmbedU3D: %v", err)
	}

	doc, err := os.ReadFile(pdfPath)
	if err != nil {
		t.Fatalf("reading PDF: %v", err)
	}
	if content := decodedStreams(t, doc); !strings.Contains(content, "(3D Model: Demo Scene)") {
		t.Error("PDF should carry the configured title")
	}
	if !strings.Contains(out.String(), "placeholder") {
		t.Errorf("expected placeholder notice, got %q", out.String())
	}
}

func TestEmbedU3D_WarnsOnSuspectPayload(t *testing.T) {
	tmpDir := t.TempDir()
	u3dPath := filepath.Join(tmpDir, "suspect.u3d")
	if err := os.WriteFile(u3dPath, make([]byte, 200), 0o644); err != nil {
		t.Fatal(err)
	}

	var warnings bytes.Buffer
	pdfPath := filepath.Join(tmpDir, "suspect_3d.pdf")
	if err := EmbedU3D(u3dPath, pdfPath, types.EmbedConfig{}, &warnings); err != nil {
		t.Fatalf("EmbedU3D should embed anyway: %v", err)
	}
	if !strings.Contains(warnings.String(), "warning") {
		t.Errorf("expected validation warning, got %q", warnings.String())
	}
	if _, err := os.Stat(pdfPath); err != nil {
		t.Errorf("PDF missing: %v", err)
	}
}

func TestEmbedU3D_ValidatePass(t *testing.T) {
	tmpDir := t.TempDir()
	u3dPath := filepath.Join(tmpDir, "model.u3d")
	if err := u3d.WritePlaceholder(u3dPath); err != nil {
		t.Fatalf("writing U3D fixture: %v", err)
	}

	// Validation problems surface as warnings only; the embed must
	// succeed either way.
	var out bytes.Buffer
	pdfPath := filepath.Join(tmpDir, "model_3d.pdf")
	cfg := types.EmbedConfig{Validate: true}
	if err := EmbedU3D(u3dPath, pdfPath, cfg, &out); err != nil {
		t.Fatalf("EmbedU3D with validation: %v", err)
	}
	if _, err := os.Stat(pdfPath); err != nil {
		t.Errorf("PDF missing: %v", err)
	}
}

func TestEscapeText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"a(b)c", `a\(b\)c`},
		{`back\slash`, `back\\slash`},
		{"line\nbreak", `line\nbreak`},
	}
	for _, tt := range tests {
		if got := escapeText(tt.in); got != tt.want {
			t.Errorf("escapeText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuild_XrefOffsets(t *testing.T) {
	doc, err := build(u3d.Placeholder(), "T")
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	text := string(doc)
	idx := strings.LastIndex(text, "startxref\n")
	if idx < 0 {
		t.Fatal("no startxref")
	}
	rest := strings.TrimSuffix(text[idx+len("startxref\n"):], "\n%%EOF\n")
	offset, err := strconv.Atoi(strings.TrimSpace(rest))
	if err != nil {
		t.Fatalf("parsing startxref offset %q: %v", rest, err)
	}
	if offset < 0 || offset >= len(doc) {
		t.Fatalf("startxref offset %d out of range", offset)
	}
	if !strings.HasPrefix(text[offset:], "xref\n") {
		t.Errorf("startxref does not point at the xref table: %q", text[offset:offset+8])
	}
}
