//go:build !windows

package process

import "syscall"

// KillProcessGroup sends SIGKILL to the process group led by pid, taking
// Chrome's renderer and GPU children down with it. pid <= 1 is ignored:
// -0 would target our own group and -1 every process we may signal.
func KillProcessGroup(pid int) {
	if pid <= 1 {
		return
	}
	// Best-effort; the launcher's own Kill runs afterwards
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
