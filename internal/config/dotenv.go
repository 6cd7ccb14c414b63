package config

import (
	"bufio"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"fitness-app-go/pkg/logger"
)

// Later files override earlier ones; real env vars always win.
var dotenvFilenames = []string{".env", ".env.local"}

func loadDotEnv(log logger.Logger) error {
	for _, name := range dotenvFilenames {
		path, err := findUpwards(name)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return err
		}

		values, err := readDotEnv(path)
		if err != nil {
			return err
		}

		loaded, skipped, err := applyDotEnv(values, name == ".env.local")
		if err != nil {
			return err
		}
		log.Info("dotenv: loaded variables", "count", loaded, "skipped", skipped, "path", path)
	}
	return nil
}

// dotenvOwned tracks keys set from a dotenv file so a later file may override them.
var dotenvOwned = map[string]struct{}{}

func applyDotEnv(values map[string]string, override bool) (int, int, error) {
	loaded, skipped := 0, 0
	for key, value := range values {
		_, exists := os.LookupEnv(key)
		_, owned := dotenvOwned[key]
		if exists && !(override && owned) {
			skipped++
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return loaded, skipped, err
		}
		dotenvOwned[key] = struct{}{}
		loaded++
	}
	return loaded, skipped, nil
}

func findUpwards(filename string) (string, error) {
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

func readDotEnv(path string) (map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return parseDotEnv(file)
}

func parseDotEnv(r io.Reader) (map[string]string, error) {
	values := make(map[string]string)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimSpace(strings.TrimPrefix(line, "export "))

		key, value, ok := strings.Cut(line, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			continue
		}
		values[key] = unquoteValue(strings.TrimSpace(value))
	}
	return values, scanner.Err()
}

func unquoteValue(value string) string {
	if len(value) >= 2 && (value[0] == '"' || value[0] == '\'') && value[0] == value[len(value)-1] {
		if value[0] == '"' {
			if unquoted, err := strconv.Unquote(value); err == nil {
				return unquoted
			}
		}
		return value[1 : len(value)-1]
	}

	// inline comments need leading whitespace: FOO=bar # note
	for i := 1; i < len(value); i++ {
		if value[i] == '#' && (value[i-1] == ' ' || value[i-1] == '\t') {
			return strings.TrimSpace(value[:i-1])
		}
	}
	return value
}
