//go:build !unix

package options

import "errors"

// ExecWithPassingOptionsToStdin is not supported on this platform.
func (o *Options) ExecWithPassingOptionsToStdin() error {
	return errors.ErrUnsupported
}
