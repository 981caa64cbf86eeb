// Package cli provides command-line interface setup and configuration
// for bgrhyme. It handles flag parsing, subcommand creation, and
// configuration management using cobra and viper.
package cli
