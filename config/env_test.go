package config

import (
	"testing"

	"github.com/sunwei/blogsite/common/maps"
)

func TestInjectEnvSet(t *testing.T) {
	cfg := New()
	InjectEnv(cfg, MapEnviron{"GA_TRACKING_CODE": "UA-12345"})

	if got := cfg.GetString("ga_tracking_code"); got != "UA-12345" {
		t.Fatalf("got %q, want %q", got, "UA-12345")
	}
}

func TestInjectEnvUnset(t *testing.T) {
	cfg := New()
	InjectEnv(cfg, MapEnviron{})

	if v := cfg.Get("ga_tracking_code"); v != nil {
		t.Fatalf("expected absent value, got %v", v)
	}
	if got := cfg.GetString("ga_tracking_code"); got != "" {
		t.Fatalf("got %q", got)
	}
}

func TestInjectEnvOverwritesStaticValue(t *testing.T) {
	for _, test := range []struct {
		name string
		env  MapEnviron
		want any
	}{
		{"set", MapEnviron{"GA_TRACKING_CODE": "UA-2"}, "UA-2"},
		{"unset", MapEnviron{}, nil},
		{"empty", MapEnviron{"GA_TRACKING_CODE": ""}, ""},
	} {
		t.Run(test.name, func(t *testing.T) {
			cfg := NewFrom(maps.Params{"ga_tracking_code": "UA-from-config"})
			InjectEnv(cfg, test.env)
			if got := cfg.Get("ga_tracking_code"); got != test.want {
				t.Fatalf("got %#v, want %#v", got, test.want)
			}
		})
	}
}

func TestInjectEnvAcceptsAnyValue(t *testing.T) {
	cfg := New()
	InjectEnv(cfg, MapEnviron{"GA_TRACKING_CODE": "  not a <tracking> code  "})
	if got := cfg.GetString("ga_tracking_code"); got != "  not a <tracking> code  " {
		t.Fatalf("value must be taken as-is, got %q", got)
	}
}

func TestInjectEnvIdempotent(t *testing.T) {
	for _, env := range []MapEnviron{{"GA_TRACKING_CODE": "UA-12345"}, {}} {
		once := NewFrom(maps.Params{"title": "Blog"})
		InjectEnv(once, env)

		twice := NewFrom(maps.Params{"title": "Blog"})
		InjectEnv(twice, env)
		InjectEnv(twice, env)

		sc1, err := DecodeSiteConfig(once)
		if err != nil {
			t.Fatal(err)
		}
		sc2, err := DecodeSiteConfig(twice)
		if err != nil {
			t.Fatal(err)
		}
		h1, err := Fingerprint(sc1)
		if err != nil {
			t.Fatal(err)
		}
		h2, err := Fingerprint(sc2)
		if err != nil {
			t.Fatal(err)
		}
		if h1 != h2 {
			t.Fatalf("fingerprints differ: %d != %d", h1, h2)
		}
		if once.Get("ga_tracking_code") != twice.Get("ga_tracking_code") {
			t.Fatal("mappings differ")
		}
	}
}

func TestInjectEnvCustomBinding(t *testing.T) {
	cfg := New()
	InjectEnv(cfg, MapEnviron{"SITE_URL": "https://example.org/"}, EnvBinding{Env: "SITE_URL", Key: "baseURL"})
	if got := cfg.GetString("baseurl"); got != "https://example.org/" {
		t.Fatalf("got %q", got)
	}
	if cfg.IsSet("ga_tracking_code") {
		t.Fatal("default bindings should not apply when bindings are given")
	}
}

func TestLayeredEnviron(t *testing.T) {
	env := LayeredEnviron{
		MapEnviron{"A": "process"},
		nil,
		MapEnviron{"A": "file", "B": "file"},
	}
	if v, _ := env.LookupEnv("A"); v != "process" {
		t.Errorf("A: got %q", v)
	}
	if v, _ := env.LookupEnv("B"); v != "file" {
		t.Errorf("B: got %q", v)
	}
	if _, found := env.LookupEnv("C"); found {
		t.Error("C should not be found")
	}
}

func TestOsEnviron(t *testing.T) {
	t.Setenv("GA_TRACKING_CODE", "UA-OS")
	cfg := New()
	InjectEnv(cfg, OsEnviron{})
	if got := cfg.GetString("ga_tracking_code"); got != "UA-OS" {
		t.Fatalf("got %q", got)
	}
}
