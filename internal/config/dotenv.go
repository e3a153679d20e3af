package config

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"shared-finance-go/pkg/logger"
)

const (
	dotenvFilename = ".env"
	dotenvPathEnv  = "DOTENV_PATH"
)

type dotenvEntry struct {
	key   string
	value string
}

// loadDotEnv copies .env entries into the process environment. Variables that
// are already set win over the file.
func loadDotEnv(log logger.Logger) error {
	path := os.Getenv(dotenvPathEnv)
	if path == "" {
		found, err := findUpward(dotenvFilename)
		if err != nil {
			return err
		}
		path = found
	}

	entries, err := readDotEnv(path)
	if err != nil {
		return err
	}

	loaded, skipped := 0, 0
	for _, entry := range entries {
		if _, exists := os.LookupEnv(entry.key); exists {
			skipped++
			continue
		}
		if err := os.Setenv(entry.key, entry.value); err != nil {
			return err
		}
		loaded++
	}

	log.Info("config.dotenv: loaded variables", "count", loaded, "skipped", skipped, "path", path)
	return nil
}

// findUpward looks for a regular file named filename in the working directory
// and its parents.
func findUpward(filename string) (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(dir, filename)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

func readDotEnv(path string) ([]dotenvEntry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var entries []dotenvEntry
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		if entry, ok := parseDotEnvLine(scanner.Text()); ok {
			entries = append(entries, entry)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func parseDotEnvLine(line string) (dotenvEntry, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return dotenvEntry{}, false
	}
	line = strings.TrimSpace(strings.TrimPrefix(line, "export "))

	key, value, found := strings.Cut(line, "=")
	key = strings.TrimSpace(key)
	if !found || key == "" {
		return dotenvEntry{}, false
	}

	return dotenvEntry{key: key, value: parseDotEnvValue(strings.TrimSpace(value))}, true
}

func parseDotEnvValue(value string) string {
	if len(value) >= 2 && (value[0] == '"' || value[0] == '\'') && value[0] == value[len(value)-1] {
		if value[0] == '"' {
			if unquoted, err := strconv.Unquote(value); err == nil {
				return unquoted
			}
		}
		return value[1 : len(value)-1]
	}

	// "KEY=value # note" drops the note; "KEY=a#b" keeps the hash.
	for i := 1; i < len(value); i++ {
		if value[i] == '#' && (value[i-1] == ' ' || value[i-1] == '\t') {
			return strings.TrimSpace(value[:i-1])
		}
	}
	return value
}
