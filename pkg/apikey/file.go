package apikey

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a YAML mapping of key names to secrets:
//
//	web: web_1234567890abcdef
//	android: android_9876543210fedcba
func LoadFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrLoadFile, err)
	}

	keys := make(map[string]string)
	if err := yaml.Unmarshal(data, &keys); err != nil {
		return nil, errors.Join(ErrLoadFile, err)
	}
	return keys, nil
}
