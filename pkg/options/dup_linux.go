package options

import "golang.org/x/sys/unix"

// dup2 duplicates oldfd onto newfd. Linux on arm64 has no dup2 system call, so dup3 is used everywhere.
func dup2(oldfd, newfd int) error {
	return unix.Dup3(oldfd, newfd, 0)
}
