// Package gamedata holds the layout knowledge for the host build:
// structure offsets and virtual table slot indices. The values are
// externally validated constants; nothing here discovers layout.
package gamedata

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/schwarper/cs2helper/chain"
	"github.com/schwarper/cs2helper/mem"
)

const (
	// Slot of INetworkGameServer::GetAddons, platform-independent.
	workshopAddonsSlot = 25

	// Slot of the network service method returning the netadr buffer,
	// platform-independent.
	serverAddressSlot = 27

	// netadr layout: 4-byte type word, then the four IP octets.
	netAddrIPOffset = 4

	// Upper bound for the addons text buffer.
	addonsTextMax = 256
)

// Table is the complete offset/slot set for one host build.
type Table struct {
	// WorkshopGameServerSlot is the INetworkServerService slot that
	// returns the active game server. It differs between POSIX and
	// Windows builds of the host.
	WorkshopGameServerSlot int

	// WorkshopAddonsSlot returns the comma-separated addons text.
	WorkshopAddonsSlot int

	// ServerAddressSlot returns a pointer to the server's netadr buffer.
	ServerAddressSlot int

	// NetAddrIPOffset is where the four IP octets start inside that
	// buffer.
	NetAddrIPOffset mem.Size

	// AddonsTextMax bounds the addons string read.
	AddonsTextMax mem.Size

	// ViewAngles walks from the input-command structure to the current
	// view angle triple.
	ViewAngles chain.Chain
}

// Default returns the compiled-in table for the current platform.
func Default() *Table {
	return &Table{
		WorkshopGameServerSlot: workshopGameServerSlot,
		WorkshopAddonsSlot:     workshopAddonsSlot,
		ServerAddressSlot:      serverAddressSlot,
		NetAddrIPOffset:        netAddrIPOffset,
		AddonsTextMax:          addonsTextMax,
		ViewAngles: chain.Chain{
			chain.Deref(0x40),
			chain.Deref(0x38),
			chain.At(0x18),
		},
	}
}

type fileSlot struct {
	Linux   int `yaml:"linux"`
	Windows int `yaml:"windows"`
}

func (s fileSlot) forPlatform() int {
	if runtime.GOOS == "windows" {
		return s.Windows
	}
	return s.Linux
}

type fileStep struct {
	Offset uint64 `yaml:"offset"`
	Deref  bool   `yaml:"deref"`
}

type fileTable struct {
	WorkshopGameServerSlot fileSlot   `yaml:"workshop_game_server_slot"`
	WorkshopAddonsSlot     int        `yaml:"workshop_addons_slot"`
	ServerAddressSlot      int        `yaml:"server_address_slot"`
	ViewAngles             []fileStep `yaml:"view_angles"`
}

// Load reads a YAML override file and applies it on top of the defaults,
// so a host update can be tracked without rebuilding the helper. Absent
// keys keep their compiled-in values.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("gamedata: read %s: %w", path, err)
	}

	var ft fileTable
	if err := yaml.Unmarshal(data, &ft); err != nil {
		return nil, fmt.Errorf("gamedata: parse %s: %w", path, err)
	}

	t := Default()
	if slot := ft.WorkshopGameServerSlot.forPlatform(); slot != 0 {
		t.WorkshopGameServerSlot = slot
	}
	if ft.WorkshopAddonsSlot != 0 {
		t.WorkshopAddonsSlot = ft.WorkshopAddonsSlot
	}
	if ft.ServerAddressSlot != 0 {
		t.ServerAddressSlot = ft.ServerAddressSlot
	}
	if len(ft.ViewAngles) > 0 {
		c := make(chain.Chain, 0, len(ft.ViewAngles))
		for _, s := range ft.ViewAngles {
			c = append(c, chain.Step{Offset: mem.Size(s.Offset), Deref: s.Deref})
		}
		t.ViewAngles = c
	}
	return t, nil
}
