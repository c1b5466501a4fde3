// Package testsupport provides shared helpers for package tests: temp-dir
// backed configs, fixture files, and store setup.
package testsupport
