package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// parseJSON loads a StructuredConfig from a JSON file. The file shares the
// json struct tags of [StructuredConfig], so the document mirrors the
// config layout directly.
func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var cfg StructuredConfig
	if err := json.NewDecoder(jsonFile).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	return &cfg, nil
}
