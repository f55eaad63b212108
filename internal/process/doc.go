// Package process terminates browser process trees left behind by a run.
package process
