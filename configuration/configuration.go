// Package configuration loads tagged structs from the process environment.
//
// Values are resolved in increasing priority: defaults registered with SetDefault, the
// ".env" file in the working directory, then the OS environment. The file and the
// environment are read once, on the first Load. Fields are matched by
// their `env` tag and validated with their `validate` tag after decoding.
package configuration

import (
	"os"
	"strings"
	"sync"

	"github.com/thanhminhmr/go-exception/internal"

	"github.com/go-viper/mapstructure/v2"
)

var (
	globalMutex        sync.RWMutex
	globalDefaults     = make(map[string]string)
	globalEnvironments = make(map[string]string)
)

// readEnvironments reads the .env file and the OS environment once, on the first Load.
var readEnvironments = sync.OnceFunc(func() {
	globalMutex.Lock()
	defer globalMutex.Unlock()

	// .env file have higher priority than defaults
	bytes, err := os.ReadFile(".env")
	if err == nil {
		saveEnvironments(strings.Split(string(bytes), "\n"))
	}

	// os.Environ() have the highest priority
	saveEnvironments(os.Environ())
})

func saveEnvironments(lines []string) {
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		split := strings.SplitN(line, "=", 2)
		if len(split) == 2 {
			globalEnvironments[strings.TrimSpace(split[0])] = strings.TrimSpace(split[1])
		}
	}
}

// SetDefault registers the value used for key when neither the .env file nor the OS
// environment defines it. Packages usually call it from init.
func SetDefault(key string, value string) {
	globalMutex.Lock()
	defer globalMutex.Unlock()
	globalDefaults[key] = value
}

// Load decodes every environment key starting with the joined prefixes (separated and
// terminated by "_") into config, then validates it.
func Load[T any](config *T, prefixes ...string) error {
	prefix := ""
	if len(prefixes) > 0 {
		prefix = strings.Join(prefixes, "_") + "_"
	}
	return Decode(config, getEnvironment(prefix))
}

// Loader returns a constructor suitable for dependency injection that loads config.
func Loader[T any](config *T, prefixes ...string) func() (*T, error) {
	return func() (*T, error) {
		err := Load(config, prefixes...)
		return config, err
	}
}

// Decode decodes environments into config and validates it. Keys must already have their
// prefix removed.
func Decode[T any](config *T, environments map[string]string) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "env",
		DecodeHook:       internal.DefaultDecodeHookFunc,
		ZeroFields:       true,
		WeaklyTypedInput: true,
		Result:           config,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(environments); err != nil {
		return err
	}
	return internal.Validator.Struct(config)
}

func getEnvironment(prefix string) map[string]string {
	readEnvironments()
	globalMutex.RLock()
	defer globalMutex.RUnlock()
	environments := make(map[string]string)
	for key, value := range globalDefaults {
		if fixedKey, hasPrefix := strings.CutPrefix(key, prefix); hasPrefix {
			environments[fixedKey] = value
		}
	}
	for key, value := range globalEnvironments {
		if fixedKey, hasPrefix := strings.CutPrefix(key, prefix); hasPrefix {
			environments[fixedKey] = value
		}
	}
	return environments
}
