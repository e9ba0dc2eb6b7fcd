package env

import (
	"bufio"
	"os"
	"strings"
)

// ConfigPathVar names the variable that overrides where the YAML config is read from.
const ConfigPathVar = "DRIVE_CONFIG"

// Load reads KEY=VALUE lines from path (e.g. ".env") into the process environment.
// Blank lines and # comments are skipped, surrounding quotes are stripped, and variables
// already set in the real environment win. A missing file is not an error.
func Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		key, value, ok := parseLine(scanner.Text())
		if !ok {
			continue
		}
		if _, set := os.LookupEnv(key); set {
			continue
		}
		_ = os.Setenv(key, value)
	}
	return scanner.Err()
}

func parseLine(raw string) (key, value string, ok bool) {
	line := strings.TrimSpace(raw)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	line = strings.TrimPrefix(line, "export ")
	i := strings.Index(line, "=")
	if i <= 0 {
		return "", "", false
	}
	key = strings.TrimSpace(line[:i])
	value = strings.TrimSpace(line[i+1:])
	if key == "" {
		return "", "", false
	}
	if len(value) >= 2 && (value[0] == '"' && value[len(value)-1] == '"' || value[0] == '\'' && value[len(value)-1] == '\'') {
		value = value[1 : len(value)-1]
	}
	return key, value, true
}

// ConfigPath returns $DRIVE_CONFIG, or fallback when it is unset or empty.
func ConfigPath(fallback string) string {
	if p := strings.TrimSpace(os.Getenv(ConfigPathVar)); p != "" {
		return p
	}
	return fallback
}
