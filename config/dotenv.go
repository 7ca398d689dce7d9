package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
)

// LoadEnvFile reads a .env style file into a MapEnviron.
// The process environment is left untouched.
func LoadEnvFile(fs afero.Fs, filename string) (MapEnviron, error) {
	f, err := fs.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open env file: %w", err)
	}
	defer f.Close()

	m, err := godotenv.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse env file %q: %w", filename, err)
	}
	return MapEnviron(m), nil
}
