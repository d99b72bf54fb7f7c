package cmd

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// smallCoil keeps the routed coil small and coarse so tests run quickly.
var smallCoil = []string{"--size", "50mm", "--radius", "20mm", "--inner-radius", "5mm", "--angle-step", "0.2"}

// run executes a fresh command tree with args and returns what it printed.
func run(t *testing.T, ctx context.Context, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	root := newRootCmd()
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)

	return buf.String(), err
}

func withCoil(args ...string) []string {
	return append(args, smallCoil...)
}

// TestGenerateE2E tests the generate command end-to-end
func TestGenerateE2E(t *testing.T) {
	dir := t.TempDir()
	footprintPath := filepath.Join(dir, "coil.kicad_mod")
	pngPath := filepath.Join(dir, "coil.png")

	tests := []struct {
		name        string
		args        []string
		wantErr     bool
		wantContain []string
		wantFiles   []string
	}{
		{
			name: "four layers with preview",
			args: withCoil("generate", "--layers", "4", "-o", footprintPath, "--png", pngPath),
			wantContain: []string{
				"Footprint written to " + footprintPath,
				"4 layers, 4 vias",
				"Preview written to " + pngPath,
			},
			wantFiles: []string{footprintPath, pngPath},
		},
		{
			name: "odd layer count rounds down",
			args: withCoil("generate", "--layers", "5", "-o", footprintPath),
			wantContain: []string{
				"4 layers, 4 vias",
			},
			wantFiles: []string{footprintPath},
		},
		{
			name:    "single layer",
			args:    withCoil("generate", "--layers", "1", "-o", footprintPath),
			wantErr: true,
		},
		{
			name:    "squareness out of range",
			args:    withCoil("generate", "--squareness", "1.5", "-o", footprintPath),
			wantErr: true,
		},
		{
			name:    "length flag with wrong unit",
			args:    withCoil("generate", "--min-width", "3V", "-o", footprintPath),
			wantErr: true,
		},
		{
			name:    "watch without config",
			args:    withCoil("generate", "--watch", "-o", footprintPath),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, f := range tt.wantFiles {
				os.Remove(f)
			}

			output, err := run(t, context.Background(), tt.args...)

			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("Unexpected error: %v\nOutput: %s", err, output)
				return
			}

			for _, want := range tt.wantContain {
				if !strings.Contains(output, want) {
					t.Errorf("Output missing expected string: %q\nGot:\n%s", want, output)
				}
			}
			for _, f := range tt.wantFiles {
				assert.FileExists(t, f)
			}
		})
	}
}

// TestConfigFileE2E tests loading settings from a TOML file
func TestConfigFileE2E(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "from-config.kicad_mod")

	good := filepath.Join(dir, "mtq.toml")
	require.NoError(t, os.WriteFile(good, []byte(fmt.Sprintf(`
[board]
width = 0.05
height = 0.05
layers = 2

[spiral]
x_radius = 0.02
y_radius = 0.02
inner_radius = 0.005
angle_step = 0.2

[output]
footprint = %q
name = "TestCoil"
`, out)), 0o644))

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[board]\nlayerz = 4\n"), 0o644))

	t.Run("settings from file", func(t *testing.T) {
		output, err := run(t, context.Background(), "--config", good, "generate")
		require.NoError(t, err, output)
		assert.Contains(t, output, "2 layers, 2 vias")
		assert.FileExists(t, out)

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), `(footprint "TestCoil"`))
	})

	t.Run("flag overrides file", func(t *testing.T) {
		output, err := run(t, context.Background(), "--config", good, "generate", "--layers", "4")
		require.NoError(t, err, output)
		assert.Contains(t, output, "4 layers, 4 vias")
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := run(t, context.Background(), "--config", bad, "generate")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown config keys")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := run(t, context.Background(), "--config", filepath.Join(dir, "nope.toml"), "report")
		assert.Error(t, err)
	})
}

// TestGenerateWatchE2E tests that --watch generates once and stops when its
// context ends.
func TestGenerateWatchE2E(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "watched.kicad_mod")
	cfgPath := filepath.Join(dir, "watch.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(fmt.Sprintf(`
[board]
width = 0.05
height = 0.05
layers = 2

[spiral]
x_radius = 0.02
y_radius = 0.02
inner_radius = 0.005
angle_step = 0.2

[output]
footprint = %q
`, out)), 0o644))

	// A run before the watched one must not pin the command context.
	_, err := run(t, context.Background(), "--config", cfgPath, "report")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	type result struct {
		output string
		err    error
	}
	done := make(chan result, 1)
	go func() {
		output, err := run(t, ctx, "--config", cfgPath, "generate", "--watch")
		done <- result{output, err}
	}()

	select {
	case res := <-done:
		require.NoError(t, res.err, res.output)
		assert.Contains(t, res.output, "Watching "+cfgPath)
		assert.Contains(t, res.output, "Footprint written to "+out)
		assert.FileExists(t, out)
	case <-time.After(10 * time.Second):
		t.Fatal("generate --watch did not stop after its context was cancelled")
	}
}

// TestReportE2E tests the report command end-to-end
func TestReportE2E(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		wantErr     bool
		wantContain []string
	}{
		{
			name: "text report",
			args: withCoil("report", "--layers", "4"),
			wantContain: []string{
				"Magnetorquer report",
				"Layers:",
				"Net coil",
				"Resistance:",
				"Moment:",
				"Torque:",
				"traces in series",
			},
		},
		{
			name: "clamped current",
			args: withCoil("report", "--layers", "2", "--max-current", "1mA"),
			wantContain: []string{
				"0.001 A at ",
				"clamped to max current",
			},
		},
		{
			name: "field with units",
			args: withCoil("report", "--layers", "2", "--field", "(0, 30uT, 0)"),
			wantContain: []string{
				"(0, 3e-05, 0) T",
			},
		},
		{
			name: "json output",
			args: withCoil("report", "--layers", "2", "--json"),
			wantContain: []string{
				`"layers": 2`,
				`"name": "coil"`,
				`"resistance_ohm"`,
				`"torque_nm"`,
			},
		},
		{
			name:    "field with wrong unit",
			args:    withCoil("report", "--field", "(0, 30mm, 0)"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := run(t, context.Background(), tt.args...)

			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("Unexpected error: %v\nOutput: %s", err, output)
				return
			}

			for _, want := range tt.wantContain {
				if !strings.Contains(output, want) {
					t.Errorf("Output missing expected string: %q\nGot:\n%s", want, output)
				}
			}
		})
	}
}

// TestRenderE2E tests the render command end-to-end
func TestRenderE2E(t *testing.T) {
	out := filepath.Join(t.TempDir(), "coil.png")

	output, err := run(t, context.Background(), withCoil("render", "--layers", "2", "-o", out, "--image-size", "128", "--layer", "0")...)
	require.NoError(t, err, output)
	assert.Contains(t, output, "Preview written to "+out)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 128, cfg.Width)
	assert.Equal(t, 128, cfg.Height)
}

// TestInfoE2E tests the info command end-to-end
func TestInfoE2E(t *testing.T) {
	dir := t.TempDir()
	footprintPath := filepath.Join(dir, "coil.kicad_mod")

	_, err := run(t, context.Background(), withCoil("generate", "--layers", "4", "-o", footprintPath)...)
	require.NoError(t, err)

	garbage := filepath.Join(dir, "garbage.kicad_mod")
	require.NoError(t, os.WriteFile(garbage, []byte("(footprint \"x\""), 0o644))

	tests := []struct {
		name        string
		args        []string
		wantErr     bool
		wantContain []string
	}{
		{
			name: "generated footprint",
			args: []string{"info", footprintPath},
			wantContain: []string{
				"Footprint Magnetorquer",
				"Pads:",
				"Vias:",
				"F.Cu:",
				"In1.Cu:",
				"In2.Cu:",
				"B.Cu:",
				"Copper:",
			},
		},
		{
			name: "json output",
			args: []string{"info", "--json", footprintPath},
			wantContain: []string{
				`"Name": "Magnetorquer"`,
				`"Pads": 2`,
				`"Vias": 4`,
			},
		},
		{
			name:    "missing file",
			args:    []string{"info", filepath.Join(dir, "missing.kicad_mod")},
			wantErr: true,
		},
		{
			name:    "truncated file",
			args:    []string{"info", garbage},
			wantErr: true,
		},
		{
			name:    "no argument",
			args:    []string{"info"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := run(t, context.Background(), tt.args...)

			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("Unexpected error: %v\nOutput: %s", err, output)
				return
			}

			for _, want := range tt.wantContain {
				if !strings.Contains(output, want) {
					t.Errorf("Output missing expected string: %q\nGot:\n%s", want, output)
				}
			}
		})
	}
}

// TestSweepE2E tests the sweep command end-to-end
func TestSweepE2E(t *testing.T) {
	t.Run("compares layer counts", func(t *testing.T) {
		output, err := run(t, context.Background(), withCoil("sweep", "--layers", "2,3,4", "-j", "2")...)
		require.NoError(t, err, output)

		assert.Contains(t, output, "LAYERS")
		assert.Contains(t, output, "ROUTED")
		for _, row := range [][2]int{{2, 2}, {3, 2}, {4, 4}} {
			prefix := fmt.Sprintf("%-7d %-9d ", row[0], row[1])
			assert.Contains(t, output, "\n"+prefix, "row for %d layers", row[0])
		}
	})

	t.Run("failing variant is listed", func(t *testing.T) {
		output, err := run(t, context.Background(), withCoil("sweep", "--layers", "1,2")...)
		require.NoError(t, err, output)
		assert.Contains(t, output, "error:")
	})

	t.Run("layer list is not carried over", func(t *testing.T) {
		_, err := run(t, context.Background(), withCoil("sweep", "--layers", "2,4")...)
		require.NoError(t, err)

		output, err := run(t, context.Background(), withCoil("sweep", "--layers", "2")...)
		require.NoError(t, err, output)
		assert.NotContains(t, output, "\n"+fmt.Sprintf("%-7d ", 4))
	})

	t.Run("all variants fail", func(t *testing.T) {
		_, err := run(t, context.Background(), withCoil("sweep", "--layers", "1")...)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "all 1 variants failed")
	})
}
