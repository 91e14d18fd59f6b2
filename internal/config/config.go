// Package config loads the JSON run configuration through viper.
package config

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-json"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/bnema/emetic/internal/domain"
)

const (
	DefaultFileName  = ".emetic_config"
	DefaultCacheName = ".emetic_cache"
	DefaultBaseURL   = "https://zeus.gist.ac.kr"
	EnvPrefix        = "EMETIC"

	// StdioPath selects stdin for reading and stdout for writing.
	StdioPath = "-"
)

var (
	ErrInvalid = errors.New("invalid config")
	ErrWrite   = errors.New("write config")
)

type kind string

const (
	kindBool   kind = "boolean"
	kindString kind = "string"
	kindNumber kind = "number"
)

type entry struct {
	key      string
	kind     kind
	required bool
}

var symptomKeys = [domain.SymptomCount]string{
	"cough", "sore_throat", "dyspnea", "fever", "no_smell_or_taste", "other_symptoms",
}

var schema = func() map[string]entry {
	entries := []entry{
		{key: "verbose", kind: kindBool},
		{key: "username", kind: kindString, required: true},
		{key: "b64_password", kind: kindString},
		{key: "password_ref", kind: kindString},
		{key: "cache_path", kind: kindString},
		{key: "temperature", kind: kindNumber},
		{key: "note", kind: kindString},
		{key: "base_url", kind: kindString},
		{key: "log_path", kind: kindString},
		{key: "log_level", kind: kindString},
	}
	for _, key := range symptomKeys {
		entries = append(entries, entry{key: key, kind: kindBool})
	}

	byKey := make(map[string]entry, len(entries))
	for _, e := range entries {
		byKey[e.key] = e
	}
	return byKey
}()

type Config struct {
	Verbose     bool
	Username    string
	Password    string
	PasswordRef string
	CachePath   string
	Temperature float64
	Symptoms    domain.Symptoms
	Note        string
	BaseURL     string
	LogPath     string
	LogLevel    string
}

// DefaultPath is where the config lives when no path argument is given.
func DefaultPath(home string) string {
	return filepath.Join(home, DefaultFileName)
}

// LoadDotEnv reads KEY=VALUE pairs from path into the environment when the file exists.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Load reads path ("-" for stdin), validates it and applies EMETIC_* overrides.
func Load(path string, stdin io.Reader, home string) (Config, error) {
	data, err := read(path, stdin, home)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	if err := validate(data); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	v := viper.New()
	v.SetConfigType("json")
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetDefault("verbose", true)
	v.SetDefault("cache_path", filepath.Join("~", DefaultCacheName))
	v.SetDefault("temperature", 36.5)
	v.SetDefault("base_url", DefaultBaseURL)
	v.SetDefault("log_level", "info")
	for _, key := range symptomKeys {
		v.SetDefault(key, false)
	}
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return Config{}, fmt.Errorf("%w: parse: %w", ErrInvalid, err)
	}

	cfg, err := fromViper(v, home)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	return cfg, nil
}

func read(path string, stdin io.Reader, home string) ([]byte, error) {
	if path == StdioPath {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(ExpandHome(path, home))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// validate checks the raw document against the schema before viper lowercases
// and coerces anything.
func validate(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	if raw == nil {
		return errors.New("config must be a JSON object")
	}

	var unknown []string
	for key := range raw {
		if _, ok := schema[key]; !ok {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		noun := "entry"
		if len(unknown) > 1 {
			noun = "entries"
		}
		return fmt.Errorf("unrecognized config %s: '%s'", noun, strings.Join(unknown, "', '"))
	}

	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		value := raw[key]
		if value == nil {
			continue
		}
		if !matches(schema[key].kind, value) {
			return fmt.Errorf("config entry %q must be a %s", key, schema[key].kind)
		}
	}

	return nil
}

func matches(k kind, value any) bool {
	switch value.(type) {
	case bool:
		return k == kindBool
	case string:
		return k == kindString
	case float64:
		return k == kindNumber
	default:
		return false
	}
}

func fromViper(v *viper.Viper, home string) (Config, error) {
	cfg := Config{
		Verbose:     v.GetBool("verbose"),
		Username:    v.GetString("username"),
		PasswordRef: v.GetString("password_ref"),
		CachePath:   ExpandHome(v.GetString("cache_path"), home),
		Temperature: v.GetFloat64("temperature"),
		Note:        v.GetString("note"),
		BaseURL:     strings.TrimRight(v.GetString("base_url"), "/"),
		LogPath:     ExpandHome(v.GetString("log_path"), home),
		LogLevel:    v.GetString("log_level"),
	}
	for i, key := range symptomKeys {
		cfg.Symptoms[i] = v.GetBool(key)
	}

	for _, e := range schema {
		if e.required && !v.IsSet(e.key) {
			return Config{}, fmt.Errorf("missing required config entry %q", e.key)
		}
	}

	encoded := v.GetString("b64_password")
	switch {
	case encoded != "":
		password, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return Config{}, fmt.Errorf("config entry \"b64_password\" is not valid base64: %w", err)
		}
		cfg.Password = string(password)
	case cfg.PasswordRef == "":
		return Config{}, errors.New("missing required config entry \"b64_password\" (or \"password_ref\")")
	}

	return cfg, nil
}

// ExpandHome replaces a leading "~" with home.
func ExpandHome(path, home string) string {
	if path == "~" {
		return home
	}
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		return filepath.Join(home, rest)
	}
	return path
}
