//go:build unix

package instance

import (
	"os"
	"syscall"
)

func (l *Lock) tryLock() error {
	return syscall.Flock(int(l.file.Fd()), syscall.LOCK_EX|syscall.LOCK_NB)
}

func (l *Lock) unlock() {
	syscall.Flock(int(l.file.Fd()), syscall.LOCK_UN)
}

func isProcessAlive(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	// signal 0 only checks that the process exists
	return process.Signal(syscall.Signal(0)) == nil
}
