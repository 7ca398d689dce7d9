package config

import "os"

// Environ looks up environment variables.
type Environ interface {
	LookupEnv(key string) (string, bool)
}

// OsEnviron is the process environment.
type OsEnviron struct{}

func (OsEnviron) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

// MapEnviron is an Environ backed by a map, e.g. a parsed .env file.
type MapEnviron map[string]string

func (m MapEnviron) LookupEnv(key string) (string, bool) {
	v, found := m[key]
	return v, found
}

// LayeredEnviron looks a key up in each Environ in turn; the first hit wins.
type LayeredEnviron []Environ

func (l LayeredEnviron) LookupEnv(key string) (string, bool) {
	for _, e := range l {
		if e == nil {
			continue
		}
		if v, found := e.LookupEnv(key); found {
			return v, true
		}
	}
	return "", false
}

// EnvBinding copies the environment variable Env into the config key Key.
type EnvBinding struct {
	Env string
	Key string
}

// DefaultEnvBindings are the bindings applied on every build.
var DefaultEnvBindings = []EnvBinding{
	{Env: "GA_TRACKING_CODE", Key: "ga_tracking_code"},
}

// InjectEnv writes the value of each bound environment variable into cfg,
// replacing whatever the config files set for that key. An unset variable
// writes nil, which reads back as "" from GetString; it is not an error.
// Values are taken as-is.
//
// The default bindings are used when none are given.
func InjectEnv(cfg Provider, env Environ, bindings ...EnvBinding) {
	if len(bindings) == 0 {
		bindings = DefaultEnvBindings
	}
	for _, b := range bindings {
		v, found := env.LookupEnv(b.Env)
		if !found {
			cfg.Set(b.Key, nil)
			continue
		}
		cfg.Set(b.Key, v)
	}
}
