//go:build linux || windows

// chainprobe attaches to a running process, walks a pointer chain and
// dumps the bytes at its destination. It exists to verify offset tables
// against a live server after a host update.
//
// Every offset except the last is followed as a pointer; the last is a
// raw byte offset into the final structure.
//
//	chainprobe -pid 1234 -base 0x7f00deadbeef -offsets 0x40,0x38,0x18 -size 0x10
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"

	"github.com/schwarper/cs2helper/chain"
	"github.com/schwarper/cs2helper/gamedata"
	"github.com/schwarper/cs2helper/mem"
	"github.com/schwarper/cs2helper/remote"
)

func main() {
	pidFlag := flag.Int("pid", 0, "Process ID to attach to")
	baseFlag := flag.String("base", "", "Root address of the chain (e.g., '0x7f00deadbeef')")
	offsetsFlag := flag.String("offsets", "", "Comma-separated offsets (e.g., '0x40,0x38,0x18')")
	sizeFlag := flag.Uint("size", 16, "Bytes to dump at the destination")
	gamedataFlag := flag.String("gamedata", "", "Walk the view-angles chain from this gamedata file instead of -offsets")
	flag.Parse()

	if *pidFlag == 0 {
		fmt.Println("Error: --pid is required")
		flag.Usage()
		os.Exit(1)
	}
	if *baseFlag == "" {
		fmt.Println("Error: --base is required")
		flag.Usage()
		os.Exit(1)
	}

	base, err := strconv.ParseUint(*baseFlag, 0, 64)
	if err != nil {
		fmt.Printf("Error parsing base address: %v\n", err)
		os.Exit(1)
	}

	c, err := buildChain(*offsetsFlag, *gamedataFlag)
	if err != nil {
		fmt.Printf("Error building chain: %v\n", err)
		os.Exit(1)
	}

	proc, err := remote.Open(*pidFlag)
	if err != nil {
		fmt.Printf("Error attaching to process %d: %v\n", *pidFlag, err)
		os.Exit(1)
	}
	defer proc.Close()

	log := logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, "chainprobe"))

	dest, err := chain.NavigateTrace(proc, mem.Address(base), c, log)
	if err != nil {
		fmt.Printf("Chain walk failed: %v\n", err)
		os.Exit(1)
	}

	data, err := proc.ReadBytes(dest, mem.Size(*sizeFlag))
	if err != nil {
		fmt.Printf("Error reading %d bytes at %s: %v\n", *sizeFlag, dest.ToString(), err)
		os.Exit(1)
	}

	fmt.Printf("Destination: %s\n", dest.ToString())
	fmt.Println(hex.Dump(data))
}

func buildChain(offsets, gamedataPath string) (chain.Chain, error) {
	if gamedataPath != "" {
		t, err := gamedata.Load(gamedataPath)
		if err != nil {
			return nil, err
		}
		return t.ViewAngles, nil
	}
	if offsets == "" {
		return nil, fmt.Errorf("--offsets or --gamedata is required")
	}

	parts := strings.Split(offsets, ",")
	c := make(chain.Chain, 0, len(parts))
	for i, part := range parts {
		off, err := strconv.ParseUint(strings.TrimSpace(part), 0, 64)
		if err != nil {
			return nil, fmt.Errorf("offset %q: %w", part, err)
		}
		if i == len(parts)-1 {
			c = append(c, chain.At(mem.Size(off)))
		} else {
			c = append(c, chain.Deref(mem.Size(off)))
		}
	}
	return c, nil
}
