package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File names kept under the mcqtest home directory.
const (
	HomeDirName     = ".mcqtest"
	ConfigFileName  = "config.yml"
	CredentialsFile = "credentials.json"
	StudentInfoFile = "student.json"
	HistoryDBFile   = "history.duckdb"
)

// HomeDir returns the directory that holds all locally persisted state.
// MCQTEST_HOME overrides the default location under the user home dir.
func HomeDir() (string, error) {
	if dir := strings.TrimSpace(os.Getenv("MCQTEST_HOME")); dir != "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return "", fmt.Errorf("resolve MCQTEST_HOME: %w", err)
		}
		return abs, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, HomeDirName), nil
}

// ConfigPath returns the config file path.
func ConfigPath() (string, error) {
	return homeFile(ConfigFileName)
}

// CredentialsPath returns the login credentials file path.
func CredentialsPath() (string, error) {
	return homeFile(CredentialsFile)
}

// StudentInfoPath returns the cached student identity file path.
func StudentInfoPath() (string, error) {
	return homeFile(StudentInfoFile)
}

// HistoryDBPath returns the local result history database path.
func HistoryDBPath() (string, error) {
	return homeFile(HistoryDBFile)
}

func homeFile(name string) (string, error) {
	dir, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}
