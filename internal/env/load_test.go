package env

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		key   string
		value string
		ok    bool
	}{
		{name: "plain", in: "A=1", key: "A", value: "1", ok: true},
		{name: "spaces", in: "  B = two  ", key: "B", value: "two", ok: true},
		{name: "double quotes", in: `C="x y"`, key: "C", value: "x y", ok: true},
		{name: "single quotes", in: "D='z'", key: "D", value: "z", ok: true},
		{name: "export prefix", in: "export E=5", key: "E", value: "5", ok: true},
		{name: "comment", in: "# F=1", ok: false},
		{name: "blank", in: "   ", ok: false},
		{name: "no equals", in: "G", ok: false},
		{name: "empty key", in: "=1", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, value, ok := parseLine(tt.in)
			if ok != tt.ok || key != tt.key || value != tt.value {
				t.Errorf("parseLine(%q) = (%q, %q, %v), want (%q, %q, %v)", tt.in, key, value, ok, tt.key, tt.value, tt.ok)
			}
		})
	}
}

func TestLoadSetsUnsetVariables(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "DRIVE_TEST_NEW=fromfile\nDRIVE_TEST_SET=fromfile\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DRIVE_TEST_SET", "fromenv")
	t.Setenv("DRIVE_TEST_NEW", "")
	os.Unsetenv("DRIVE_TEST_NEW")

	if err := Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := os.Getenv("DRIVE_TEST_NEW"); got != "fromfile" {
		t.Errorf("DRIVE_TEST_NEW = %q, want fromfile", got)
	}
	if got := os.Getenv("DRIVE_TEST_SET"); got != "fromenv" {
		t.Errorf("DRIVE_TEST_SET = %q, want the existing value", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if err := Load(filepath.Join(t.TempDir(), "nope.env")); err != nil {
		t.Errorf("Load(missing) = %v, want nil", err)
	}
}

func TestConfigPath(t *testing.T) {
	t.Setenv(ConfigPathVar, "")
	if got := ConfigPath("config/drive.yaml"); got != "config/drive.yaml" {
		t.Errorf("ConfigPath() = %q, want fallback", got)
	}
	t.Setenv(ConfigPathVar, "/tmp/other.yaml")
	if got := ConfigPath("config/drive.yaml"); got != "/tmp/other.yaml" {
		t.Errorf("ConfigPath() = %q, want override", got)
	}
}
