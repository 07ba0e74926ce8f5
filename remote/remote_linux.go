//go:build linux

package remote

import (
	"fmt"
	"os"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
	"golang.org/x/sys/unix"

	"github.com/schwarper/cs2helper/mem"
)

// Process reads another process's memory through process_vm_readv. It
// serves the probe tooling; the helper itself runs in-process and uses
// mem.Local.
type Process struct {
	pid int
	log *logger.Logger
}

var _ mem.Reader = (*Process)(nil)

func Open(pid int) (*Process, error) {
	if _, err := os.Stat(fmt.Sprintf("/proc/%d", pid)); err != nil {
		return nil, fmt.Errorf("remote: process %d: %w", pid, err)
	}

	p := &Process{
		pid: pid,
		log: logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, fmt.Sprintf("remote-%d", pid))),
	}
	p.log.Infoln("Process opened")
	return p, nil
}

func (p *Process) Close() error {
	p.log.Infoln("Process closed")
	return nil
}

func (p *Process) PID() int {
	return p.pid
}

func (p *Process) ReadBytes(addr mem.Address, size mem.Size) ([]byte, error) {
	if addr == 0 {
		return nil, mem.ErrNullAddress
	}
	if size == 0 {
		return nil, nil
	}

	buf := make([]byte, size)
	local := []unix.Iovec{{Base: &buf[0], Len: uint64(size)}}
	remote := []unix.RemoteIovec{{Base: uintptr(addr), Len: int(size)}}

	n, err := unix.ProcessVMReadv(p.pid, local, remote, 0)
	if err != nil {
		return nil, fmt.Errorf("remote: process_vm_readv at %s: %w", addr.ToString(), err)
	}
	if n != int(size) {
		return nil, fmt.Errorf("remote: partial read at %s: %d of %s", addr.ToString(), n, size.ToString())
	}
	return buf, nil
}
