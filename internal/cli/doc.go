// Package cli provides command-line interface setup and configuration
// for the zhuyinaudio application. It handles flag parsing, command
// creation, logging setup and configuration management using cobra,
// viper and logrus.
package cli
