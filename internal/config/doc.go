// Package config resolves the settings that drive project creation: which
// template package to install, which package manager and runtime to invoke,
// and how noisy to be. Values come from built-in defaults, then the optional
// ~/.create-miles/config.yaml, then CREATE_MILES_* environment variables.
package config
