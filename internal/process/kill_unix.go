//go:build !windows

package process

import "syscall"

// KillTree kills pid and every process in its group with SIGKILL.
// Non-positive PIDs are ignored: they would address the caller's own group.
func KillTree(pid int) {
	if pid <= 0 {
		return
	}
	_ = syscall.Kill(-pid, syscall.SIGKILL) // launcher.Kill is the fallback
}
