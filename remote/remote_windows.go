//go:build windows

package remote

import (
	"fmt"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
	"golang.org/x/sys/windows"

	"github.com/schwarper/cs2helper/mem"
)

// Process reads another process's memory through ReadProcessMemory. It
// serves the probe tooling; the helper itself runs in-process and uses
// mem.Local.
type Process struct {
	pid    int
	handle windows.Handle
	log    *logger.Logger
}

var _ mem.Reader = (*Process)(nil)

func Open(pid int) (*Process, error) {
	handle, err := windows.OpenProcess(windows.PROCESS_QUERY_INFORMATION|windows.PROCESS_VM_READ, false, uint32(pid))
	if err != nil {
		return nil, fmt.Errorf("remote: open process %d: %w", pid, err)
	}

	p := &Process{
		pid:    pid,
		handle: handle,
		log:    logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, fmt.Sprintf("remote-%d", pid))),
	}
	p.log.Infoln("Process opened")
	return p, nil
}

func (p *Process) Close() error {
	p.log.Infoln("Process closed")
	return windows.CloseHandle(p.handle)
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
	var done uintptr
	err := windows.ReadProcessMemory(p.handle, uintptr(addr), &buf[0], uintptr(size), &done)
	if err != nil {
		return nil, fmt.Errorf("remote: ReadProcessMemory at %s: %w", addr.ToString(), err)
	}
	if done != uintptr(size) {
		return nil, fmt.Errorf("remote: partial read at %s: %d of %s", addr.ToString(), done, size.ToString())
	}
	return buf, nil
}
