package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const defaultEnvFile = ".env"

// loadEnvFile loads a dotenv file into the process environment before the CLI
// resolves flags from it. Variables already set are not overridden. The file
// comes from --env-file, then ENV_FILE, then an optional .env in the working
// directory.
func loadEnvFile(args []string) error {
	path, explicit := envFilePath(args)
	if path == "" {
		path = defaultEnvFile
	}

	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func envFilePath(args []string) (string, bool) {
	for i, arg := range args {
		switch {
		case arg == "--env-file" && i+1 < len(args):
			return args[i+1], true
		case strings.HasPrefix(arg, "--env-file="):
			return strings.TrimPrefix(arg, "--env-file="), true
		}
	}
	if path := os.Getenv("ENV_FILE"); path != "" {
		return path, true
	}
	return "", false
}
