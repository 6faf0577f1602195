// Package cli provides command-line interface setup and configuration
// for the glyphswap application. It handles flag parsing, command
// creation, and configuration management using cobra and viper.
//
// Configuration is layered: command-line flags win over GLYPHSWAP_*
// environment variables (a .env file in the working directory is loaded
// first), which win over the YAML config file (~/.glyphswap.yaml or
// ./.glyphswap.yaml), which wins over the built-in defaults.
package cli
