// Package utils provides shared utility functions for triflow.
//
// This package contains general-purpose helpers used across multiple packages.
//
// # Filesystem Utilities
//
// Functions for replacing files without leaving partial writes behind:
//   - WriteFileAtomic: temp file, fsync, rename over the target
//   - CreateFileExclusive: temp file, fsync, hard link that fails if the target exists
//   - FileExists: distinguishes "absent" from other stat errors
//
// # System Utilities
//
//   - GetUsername: returns the current system username
//
// # Terminal Utilities
//
//   - IsTerminal, IsStdoutTerminal: terminal detection for prompts and spinners
package utils
