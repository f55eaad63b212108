package main

import (
	"io"
	"os"
	"time"

	moodle2pdf "github.com/alnah/moodle2pdf"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time and the browser backend.
type Environment struct {
	Now        func() time.Time
	Stdout     io.Writer
	Stderr     io.Writer
	NewBrowser moodle2pdf.BrowserFactory // nil = resolved from the engine setting
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}
