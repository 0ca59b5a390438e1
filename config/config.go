package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const EnvFile = ".env"

func New() map[string]string {
	environ := os.Environ()
	envAsMap := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry != "" {
			key, value := split(entry)
			envAsMap[key] = value
		}
	}
	return envAsMap
}

// assumes entry is not the empty string
func split(entry string) (key, value string) {
	parts := strings.SplitN(entry, "=", 2)
	if len(parts) < 2 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}

/*
Load builds the configuration map. It loads .env into the process environment
(a missing file is not an error), then reads the optional YAML file at path and
overlays the environment on top of it, so environment variables always win.

Nested YAML keys are joined with underscores and upper-cased:

	db:
	  host: localhost

becomes DB_HOST=localhost.
*/
func Load(path string) (map[string]string, []string, error) {
	var warnings []string
	if err := godotenv.Load(EnvFile); err != nil {
		warnings = append(warnings, fmt.Sprintf("could not load %s: %v", EnvFile, err))
	}

	c := map[string]string{}
	if path != "" {
		fromFile, err := ReadFile(path)
		if err != nil {
			return nil, warnings, err
		}
		c = fromFile
	}

	for key, value := range New() {
		c[key] = value
	}
	return c, warnings, nil
}

// ReadFile parses a YAML configuration file into flattened keys.
func ReadFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	var tree map[string]interface{}
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}

	flat := make(map[string]string)
	flatten("", tree, flat)
	return flat, nil
}

func flatten(prefix string, node map[string]interface{}, out map[string]string) {
	for key, value := range node {
		name := strings.ToUpper(key)
		if prefix != "" {
			name = prefix + "_" + name
		}

		switch v := value.(type) {
		case map[string]interface{}:
			flatten(name, v, out)
		case []interface{}:
			items := make([]string, 0, len(v))
			for _, item := range v {
				items = append(items, fmt.Sprint(item))
			}
			out[name] = strings.Join(items, ",")
		case nil:
			out[name] = ""
		default:
			out[name] = fmt.Sprint(v)
		}
	}
}

func GetString(config map[string]string, key string, defaultValue string) string {
	if config == nil {
		return defaultValue
	}

	if val, ok := config[key]; ok {
		return val
	}
	return defaultValue
}

func GetInt(config map[string]string, key string, defaultValue int) int {
	if config == nil {
		return defaultValue
	}

	s, ok := config[key]
	if !ok {
		return defaultValue
	}

	asInt, err := strconv.Atoi(s)
	if err != nil {
		return defaultValue
	}

	return asInt
}

// GetList splits a comma separated value, dropping empty items
func GetList(config map[string]string, key string, defaultValue []string) []string {
	raw := GetString(config, key, "")
	if strings.TrimSpace(raw) == "" {
		return defaultValue
	}

	var items []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}

// DatabaseDSN returns DATABASE_URL when set, otherwise a URL assembled from the DB_* keys.
func DatabaseDSN(config map[string]string) string {
	if dsn := GetString(config, "DATABASE_URL", ""); dsn != "" {
		return dsn
	}

	u := url.URL{
		Scheme: "postgres",
		User: url.UserPassword(
			GetString(config, "DB_USER", "postgres"),
			GetString(config, "DB_PASSWORD", ""),
		),
		Host: GetString(config, "DB_HOST", "localhost") + ":" + GetString(config, "DB_PORT", "5432"),
		Path: "/" + GetString(config, "DB_NAME", "blog"),
	}
	query := url.Values{}
	query.Set("sslmode", GetString(config, "DB_SSLMODE", "disable"))
	u.RawQuery = query.Encode()
	return u.String()
}
