package config

import "github.com/spf13/cast"

func panicOnErr(err error) {
	if err != nil {
		panic(err)
	}
}

// String reads a configuration value from c by name and casts it to
// string. Panics if the value cannot be cast.
func String(c *Config, name string) string {
	x, err := cast.ToStringE(c.Value(name))
	panicOnErr(err)
	return x
}

// StringSafe behaves like String but returns "" instead of panicking.
func StringSafe(c *Config, name string) string {
	return cast.ToString(c.Value(name))
}

// Int reads a configuration value from c by name and casts it to int.
// Panics if the value cannot be cast.
func Int(c *Config, name string) int {
	x, err := cast.ToIntE(c.Value(name))
	panicOnErr(err)
	return x
}

// IntSafe behaves like Int but returns 0 instead of panicking.
func IntSafe(c *Config, name string) int {
	return cast.ToInt(c.Value(name))
}

// BoolSafe reads a configuration value from c by name and casts it to
// bool, returning false if the value is absent or cannot be cast.
func BoolSafe(c *Config, name string) bool {
	return cast.ToBool(c.Value(name))
}
