// Package cmd — optional TOML configuration.
// A config file supplies defaults for the convert command; flags given
// explicitly on the command line always win.
package cmd

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config mirrors the flag surface of the convert command.
type Config struct {
	Convert struct {
		GitHubCodeBlocks   bool   `toml:"github_code_blocks"`
		ImplicitCodeBlocks bool   `toml:"implicit_code_blocks"`
		ImplicitCodeLength int    `toml:"implicit_code_length"`
		Strict             bool   `toml:"strict"`
		LogLevel           string `toml:"log_level"`
	} `toml:"convert"`

	Output struct {
		Dir string `toml:"dir"`
	} `toml:"output"`

	Embeddings struct {
		Model     string `toml:"model"`
		ChunkSize int    `toml:"chunk_size"`
		URL       string `toml:"url"`
	} `toml:"embeddings"`

	Crawl struct {
		MaxPages int `toml:"max_pages"`
	} `toml:"crawl"`
}

// loadConfig reads and parses a TOML config file.
func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return &cfg, nil
}
