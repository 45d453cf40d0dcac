// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package u3d produces U3D files from IDTF input. The actual binary
// encoding is delegated to an external converter (the u3d gem or the
// IDTFConverter utility); this package finds the converter, runs it,
// and checks the result.
package u3d

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

const (
	binGem       = "u3d"
	binConverter = "IDTFConverter"
)

// Converter turns an IDTF file into a U3D file.
type Converter interface {
	// Name identifies the backend for status output.
	Name() string

	// Convert reads idtfPath and writes u3dPath.
	Convert(idtfPath, u3dPath string) error
}

// executor abstracts command execution and filesystem probes for
// testing.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(name string, args ...string) error
	Run(name string, args ...string) (stdout, stderr string, err error)
	Executable(path string) bool
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunSilent(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

func (o *osExecutor) Run(name string, args ...string) (string, string, error) {
	var out, errOut bytes.Buffer
	cmd := exec.Command(name, args...)
	cmd.Stdout = &out
	cmd.Stderr = &errOut
	err := cmd.Run()
	return out.String(), errOut.String(), err
}

func (o *osExecutor) Executable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	return info.Mode()&0o111 != 0
}

var defaultExec executor = &osExecutor{}

// external runs a located converter binary. The u3d gem and the
// IDTFConverter utility share the logic; they differ only in how the
// input and output paths are passed on the command line.
type external struct {
	bin  string
	args func(idtfPath, u3dPath string) []string
	exec executor
}

func (e *external) Name() string { return filepath.Base(e.bin) }

func (e *external) Convert(idtfPath, u3dPath string) error {
	if dir := filepath.Dir(u3dPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	_, stderr, err := e.exec.Run(e.bin, e.args(idtfPath, u3dPath)...)
	if err != nil {
		return fmt.Errorf("%s failed: %w (stderr: %s)", e.Name(), err, stderr)
	}

	info, err := os.Stat(u3dPath)
	if err != nil {
		return fmt.Errorf("%s reported success but %s was not created", e.Name(), u3dPath)
	}
	if info.Size() == 0 {
		return fmt.Errorf("%s produced an empty file at %s", e.Name(), u3dPath)
	}
	return nil
}

func newGemConverter(bin string, exec executor) *external {
	return &external{
		bin: bin,
		args: func(idtfPath, u3dPath string) []string {
			return []string{"convert", idtfPath, u3dPath}
		},
		exec: exec,
	}
}

func newBinaryConverter(bin string, exec executor) *external {
	return &external{
		bin: bin,
		args: func(idtfPath, u3dPath string) []string {
			return []string{idtfPath, u3dPath}
		},
		exec: exec,
	}
}

// wellKnownPaths lists filesystem locations probed for IDTFConverter
// when it is not on PATH.
func wellKnownPaths() []string {
	paths := []string{
		"/usr/local/bin/" + binConverter,
		"/usr/bin/" + binConverter,
		"/opt/homebrew/bin/" + binConverter,
		filepath.Join(".", "tools", binConverter),
		filepath.Join(".", binConverter),
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append([]string{filepath.Join(home, "bin", binConverter)}, paths...)
	}
	return paths
}

// Find locates an IDTF-to-U3D converter. Detection order: the u3d gem
// on PATH, then IDTFConverter on PATH, then well-known filesystem
// locations. overridePath, when non-empty, wins and is treated as an
// IDTFConverter-style binary.
func Find(overridePath string) (Converter, error) {
	return find(overridePath, defaultExec)
}

func find(overridePath string, exec executor) (Converter, error) {
	if overridePath != "" {
		if !exec.Executable(overridePath) {
			return nil, fmt.Errorf("converter %s is not an executable file", overridePath)
		}
		return newBinaryConverter(overridePath, exec), nil
	}

	if _, err := exec.LookPath(binGem); err == nil {
		if exec.RunSilent(binGem, "-version") == nil {
			return newGemConverter(binGem, exec), nil
		}
	}

	if path, err := exec.LookPath(binConverter); err == nil {
		return newBinaryConverter(path, exec), nil
	}

	for _, path := range wellKnownPaths() {
		if exec.Executable(path) {
			return newBinaryConverter(path, exec), nil
		}
	}

	return nil, fmt.Errorf(
		"no IDTF-to-U3D converter found: install the u3d gem or IDTFConverter (https://github.com/ningfei/u3d)",
	)
}
