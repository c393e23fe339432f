package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeGenerateConfig(t *testing.T, dir string, width, height int) string {
	t.Helper()
	path := filepath.Join(dir, "map.jsonc")
	contents := `{
		"map": {
			"width": ` + itoa(width) + `,
			"height": ` + itoa(height) + `,
			"base_frequency": 440,
			"pitch_curve": "ErbRate",
			"overlap_curve": "ExponentialDissonance"
		},
		"format": {}
	}`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

func TestRunPrintDefaultsOutputsValidJSON(t *testing.T) {
	var out, errOut bytes.Buffer
	code := Run([]string{"print-defaults"}, &out, &errOut)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, errOut.String())
	}
	if !strings.Contains(out.String(), "\"width\"") {
		t.Fatalf("output missing expected JSON field: %s", out.String())
	}
}

func TestRunGenerateWritesTSVToStdout(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeGenerateConfig(t, dir, 4, 3)

	var out, errOut bytes.Buffer
	code := Run([]string{"--cache-dir", "-", "generate", cfgPath}, &out, &errOut)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, errOut.String())
	}
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 4 { // header + 3 rows
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), out.String())
	}
}

func TestRunGenerateWritesCSVFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeGenerateConfig(t, dir, 2, 2)
	outPath := filepath.Join(dir, "result.csv")

	var out, errOut bytes.Buffer
	code := Run([]string{"--cache-dir", "-", "generate", cfgPath, "--out", outPath}, &out, &errOut)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, errOut.String())
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), ",") {
		t.Fatalf("expected comma-delimited output, got: %s", data)
	}
}

func TestRunGenerateRejectsPNGOutput(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeGenerateConfig(t, dir, 2, 2)
	outPath := filepath.Join(dir, "result.png")

	var out, errOut bytes.Buffer
	code := Run([]string{"--cache-dir", "-", "generate", cfgPath, "--out", outPath}, &out, &errOut)
	if code == 0 {
		t.Fatalf("expected non-zero exit for unsupported PNG output")
	}
	if !strings.Contains(errOut.String(), "PNG") {
		t.Fatalf("expected PNG-related error, got: %s", errOut.String())
	}
}

func TestRunGenerateMissingConfigArgFails(t *testing.T) {
	var out, errOut bytes.Buffer
	code := Run([]string{"generate"}, &out, &errOut)
	if code == 0 {
		t.Fatalf("expected non-zero exit for missing config argument")
	}
}

func TestRunCleanIsNoOpWithoutCache(t *testing.T) {
	var out, errOut bytes.Buffer
	code := Run([]string{"--cache-dir", filepath.Join(t.TempDir(), "does-not-exist"), "clean"}, &out, &errOut)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, errOut.String())
	}
}

func TestRunGuiStubFails(t *testing.T) {
	var out, errOut bytes.Buffer
	code := Run([]string{"gui"}, &out, &errOut)
	if code == 0 {
		t.Fatalf("expected non-zero exit for gui stub")
	}
	if !strings.Contains(errOut.String(), "not available") {
		t.Fatalf("expected stub message, got: %s", errOut.String())
	}
}

func TestRunUnknownCommandFails(t *testing.T) {
	var out, errOut bytes.Buffer
	code := Run([]string{"bogus"}, &out, &errOut)
	if code == 0 {
		t.Fatalf("expected non-zero exit for unknown command")
	}
}

func TestRunWithNoArgsPrintsUsageAndFails(t *testing.T) {
	var out, errOut bytes.Buffer
	code := Run(nil, &out, &errOut)
	if code == 0 {
		t.Fatalf("expected non-zero exit with no command given")
	}
	if !strings.Contains(out.String(), "dissonmap") {
		t.Fatalf("expected usage banner, got: %s", out.String())
	}
}

func TestRunGenerateIsRepeatableAcrossCacheDir(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeGenerateConfig(t, dir, 3, 3)
	cacheDir := filepath.Join(dir, "cache")

	var first, second bytes.Buffer
	var errOut bytes.Buffer
	if code := Run([]string{"--cache-dir", cacheDir, "generate", cfgPath}, &first, &errOut); code != 0 {
		t.Fatalf("first run: exit %d, stderr %s", code, errOut.String())
	}
	errOut.Reset()
	if code := Run([]string{"--cache-dir", cacheDir, "generate", cfgPath}, &second, &errOut); code != 0 {
		t.Fatalf("second run: exit %d, stderr %s", code, errOut.String())
	}
	if first.String() != second.String() {
		t.Fatalf("cached run diverged from first run:\n%s\nvs\n%s", first.String(), second.String())
	}
}
