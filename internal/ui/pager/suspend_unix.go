//go:build !windows

package pager

import (
	"context"
	"syscall"
)

func (p *Pager) suspendToShell(ctx context.Context) {
	// Hand the terminal back to the shell before stopping.
	if err := p.screen.Suspend(); err != nil {
		p.logger.Error(ctx, "failed to suspend screen", err)
		return
	}
	// Stop only this process, not the whole process group.
	_ = syscall.Kill(syscall.Getpid(), syscall.SIGTSTP)

	if err := p.screen.Resume(); err != nil {
		p.logger.Error(ctx, "failed to resume screen", err)
		return
	}
	p.screen.Sync()
	w, h := p.screen.Size()
	p.state.Resize(w, h)
}
