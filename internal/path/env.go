package path

import (
	"os"
	"runtime"
)

// Environment provides the environment lookups the locators depend on.
type Environment interface {
	// LookupEnv returns the value of an environment variable and whether it is set.
	LookupEnv(key string) (string, bool)
	// GOOS returns the operating system name (runtime.GOOS values).
	GOOS() string
}

// OSEnvironment reads the real process environment.
type OSEnvironment struct{}

// LookupEnv implements Environment.
func (OSEnvironment) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

// GOOS implements Environment.
func (OSEnvironment) GOOS() string {
	return runtime.GOOS
}

// StaticEnvironment is a fixed Environment, mostly for tests.
type StaticEnvironment struct {
	Vars map[string]string
	OS   string
}

// LookupEnv implements Environment.
func (e StaticEnvironment) LookupEnv(key string) (string, bool) {
	v, ok := e.Vars[key]
	return v, ok
}

// GOOS implements Environment. Defaults to linux.
func (e StaticEnvironment) GOOS() string {
	if e.OS == "" {
		return "linux"
	}
	return e.OS
}

// HomeDir resolves the user's home directory.
// HOME wins when set; windows falls back to USERPROFILE.
func HomeDir(env Environment) string {
	if home, ok := env.LookupEnv("HOME"); ok {
		return home
	}
	if env.GOOS() == "windows" {
		profile, _ := env.LookupEnv("USERPROFILE")
		return profile
	}
	home, _ := env.LookupEnv("HOME")
	return home
}
