// Package tfs holds types shared across the filesystem: errno-style
// errors, mode-bit constants, and the stat record returned by getattr.
package tfs

import (
	"fmt"
	"syscall"
)

// Error is a wrapper around a POSIX errno code with a human-readable
// message, the same shape the kernel dispatcher boundary expects
// (negative return codes mapping to an errno).
type Error struct {
	Errno   syscall.Errno
	message string
}

func (e *Error) Error() string {
	if e.message != "" {
		return e.message
	}
	return e.Errno.Error()
}

// NewError creates an Error with a default message derived from errno.
func NewError(errno syscall.Errno) *Error {
	return &Error{Errno: errno, message: errno.Error()}
}

// NewErrorf creates an Error with a custom, formatted message.
func NewErrorf(errno syscall.Errno, format string, args ...any) *Error {
	return &Error{Errno: errno, message: fmt.Sprintf(format, args...)}
}

// Sentinel errors for the error kinds enumerated in the core's error
// handling design: not-found, exists, not-a-directory,
// not-a-regular-file, no-space, bad-offset.
var (
	ErrNotFound      = NewError(syscall.ENOENT)
	ErrExists        = NewError(syscall.EEXIST)
	ErrNotDirectory  = NewError(syscall.ENOTDIR)
	ErrNotRegular    = NewError(syscall.EISDIR)
	ErrNoSpace       = NewError(syscall.ENOSPC)
	ErrBadOffset     = NewError(syscall.EINVAL)
	ErrIO            = NewError(syscall.EIO)
)

// Is lets errors.Is match against the sentinel Error values above by
// comparing errno codes rather than pointer identity, since NewErrorf
// constructs a distinct *Error per call site.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Errno == other.Errno
}
