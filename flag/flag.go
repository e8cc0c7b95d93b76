// Package flag provides typed access to command line options bound to viper.
package flag

import (
	"github.com/spf13/viper"
)

// Verbose returns option "--verbose".
func Verbose() int {
	return viper.GetInt("verbose")
}

// Quiet returns option "--quiet".
func Quiet() int {
	return viper.GetInt("quiet")
}

// ConfigFile returns option "--config".
func ConfigFile() string {
	return viper.GetString("config")
}

// LanguagesDir returns option "--dir" of the compile command.
func LanguagesDir() string {
	return viper.GetString("compile--dir")
}

// IncludeHeader returns option "--include-header" of the compile command.
func IncludeHeader() bool {
	return viper.GetBool("compile--include-header")
}

// Verify returns option "--verify" of the compile command.
func Verify() bool {
	return viper.GetBool("compile--verify")
}

// FallbackCharset returns option "--fallback-charset" of the compile command.
func FallbackCharset() string {
	return viper.GetString("compile--fallback-charset")
}
