package chain

import (
	"fmt"

	"github.com/Moonlight-Companies/gologger/logger"

	"github.com/schwarper/cs2helper/mem"
)

// NavigateTrace does the same walk as Navigate but logs the hop trace,
// for diagnosing layout mismatches after a host update.
func NavigateTrace(r mem.Reader, root mem.Address, c Chain, log *logger.Logger) (mem.Address, error) {
	if root == 0 {
		log.Debugln("chain: root is NULL")
		return 0, mem.ErrNullAddress
	}

	current := root
	log.Debugln("chain: root", root.ToString())

	for i, step := range c {
		addr := current + mem.Address(step.Offset)
		if !step.Deref {
			log.Debugln("chain: step", i, "advance to", addr.ToString())
			current = addr
			continue
		}

		ptr, err := mem.ReadPointer(r, addr)
		if err != nil {
			log.Debugln("chain: step", i, "read at", addr.ToString(), "failed:", err)
			return 0, fmt.Errorf("chain: read pointer at step %d (addr=%#x + off=%#x): %w",
				i, uint64(current), uint64(step.Offset), err)
		}
		log.Debugln("chain: step", i, fmt.Sprintf("*(%#x + %#x) => %#x",
			uint64(current), uint64(step.Offset), uint64(ptr)))
		if ptr == 0 {
			return 0, fmt.Errorf("chain: NULL pointer at step %d (addr=%#x + off=%#x): %w",
				i, uint64(current), uint64(step.Offset), mem.ErrNullAddress)
		}
		current = ptr
	}

	log.Debugln("chain: final", current.ToString())
	return current, nil
}
