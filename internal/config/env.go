package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

type envKind uint8

const (
	envString envKind = iota
	envBool
	envInt
	envList
)

type envSetting struct {
	key  string
	kind envKind
}

// envMapping maps environment variables to settings file keys.
var envMapping = map[string]envSetting{
	"FACEGRID_THEME":                 {"theme", envString},
	"FACEGRID_WATCH_THEME":           {"watch_theme", envBool},
	"FACEGRID_ENGINE":                {"engine", envString},
	"FACEGRID_OVERLAYS":              {"overlays", envList},
	"FACEGRID_LINE_NUMBERS":          {"line_numbers", envBool},
	"FACEGRID_STATUS_LINE":           {"status_line", envBool},
	"FACEGRID_MIN_LINE_NUMBER_WIDTH": {"min_line_number_width", envInt},
	"FACEGRID_LOG_LEVEL":             {"log_level", envString},
	"FACEGRID_LOG_FILE":              {"log_file", envString},
	"FACEGRID_HIGHLIGHT_TIMEOUT":     {"highlight_timeout", envString},
}

// EnvVars returns the sorted names of the environment variables ApplyEnv
// reads.
func EnvVars() []string {
	names := make([]string, 0, len(envMapping))
	for name := range envMapping {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ApplyEnv overrides c with the FACEGRID_* variables that lookup finds.
// Empty values are treated as set.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	overrides := make(map[string]any)
	for env, s := range envMapping {
		raw, ok := lookup(env)
		if !ok {
			continue
		}
		v, err := parseEnvValue(raw, s.kind)
		if err != nil {
			return &ValidationError{Key: env, Value: raw, Message: err.Error()}
		}
		overrides[s.key] = v
	}
	if len(overrides) == 0 {
		return nil
	}

	data, err := toml.Marshal(overrides)
	if err != nil {
		return fmt.Errorf("encoding environment overrides: %w", err)
	}
	return c.Parse("environment", data)
}

func parseEnvValue(s string, kind envKind) (any, error) {
	switch kind {
	case envBool:
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true", "yes", "on", "1":
			return true, nil
		case "false", "no", "off", "0", "":
			return false, nil
		}
		return nil, fmt.Errorf("not a boolean")
	case envInt:
		i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("not an integer")
		}
		return i, nil
	case envList:
		var list []string
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				list = append(list, part)
			}
		}
		if list == nil {
			list = []string{}
		}
		return list, nil
	default:
		return s, nil
	}
}
