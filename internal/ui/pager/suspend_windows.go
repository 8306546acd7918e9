//go:build windows

package pager

import "context"

// No SIGTSTP on Windows; Ctrl+Z is ignored.
func (p *Pager) suspendToShell(ctx context.Context) {
}
