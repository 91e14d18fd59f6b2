package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
)

// template fixes the key order of the generated file; required keys are null.
type template struct {
	Verbose        bool    `json:"verbose"`
	Username       *string `json:"username"`
	B64Password    *string `json:"b64_password"`
	CachePath      string  `json:"cache_path"`
	Temperature    float64 `json:"temperature"`
	Cough          bool    `json:"cough"`
	SoreThroat     bool    `json:"sore_throat"`
	Dyspnea        bool    `json:"dyspnea"`
	Fever          bool    `json:"fever"`
	NoSmellOrTaste bool    `json:"no_smell_or_taste"`
	OtherSymptoms  bool    `json:"other_symptoms"`
	Note           string  `json:"note"`
}

func Template() ([]byte, error) {
	data, err := json.MarshalIndent(template{
		Verbose:     true,
		CachePath:   "~/" + DefaultCacheName,
		Temperature: 36.5,
	}, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("encode config template: %w", err)
	}
	return append(data, '\n'), nil
}

// WriteTemplate writes the default config to path, or to stdout for "-".
func WriteTemplate(path string, stdout io.Writer, home string) error {
	data, err := Template()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}

	if path == StdioPath {
		if _, err := stdout.Write(data); err != nil {
			return fmt.Errorf("%w: stdout: %w", ErrWrite, err)
		}
		return nil
	}

	target := ExpandHome(path, home)
	if dir := filepath.Dir(target); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("%w: create directory: %w", ErrWrite, err)
		}
	}
	if err := os.WriteFile(target, data, 0o600); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}

	return nil
}
