// Package config provides configuration structures and utilities for byteprobe.
// It defines the options of an interpret run, the .byteprobe configuration
// file and the translation of both into action invocations.
package config
