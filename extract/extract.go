// Package extract recovers values the host exposes no API for: the
// current input view direction, the active workshop identifier and the
// server's public address. Each routine composes pointer-chain
// navigation with lazily bound virtual table calls and returns a typed
// result, never an intermediate address.
package extract

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"

	"github.com/schwarper/cs2helper/chain"
	"github.com/schwarper/cs2helper/gamedata"
	"github.com/schwarper/cs2helper/mem"
	"github.com/schwarper/cs2helper/vtable"
)

// ErrWorkshopUnavailable is returned when the workshop identifier cannot
// be recovered. It is terminal: it means a binding or layout mismatch,
// not a transient absence, so callers must not retry.
var ErrWorkshopUnavailable = errors.New("extract: workshop identifier unavailable")

// QAngle is a view direction in degrees.
type QAngle struct {
	Pitch float32
	Yaw   float32
	Roll  float32
}

// Binding site keys for the process-wide call registry.
const (
	bindGameServer = "network-server-service.game-server"
	bindAddons     = "game-server.addons"
	bindNetAddr    = "network-server-service.address"
)

// Config wires an Extractor. Reader and Invoker are injectable so the
// routines can run against a captured image and a fake dispatcher.
type Config struct {
	Reader  mem.Reader
	Invoker vtable.Invoker

	// Data overrides the compiled-in offset table when non-nil.
	Data *gamedata.Table

	// Registry overrides the call registry when non-nil; routines
	// sharing one registry share resolved bindings.
	Registry *vtable.Registry

	// HostPort reads the server port from host configuration state. It
	// is consulted once; the result is cached for the process lifetime.
	HostPort func() uint16
}

type Extractor struct {
	r    mem.Reader
	inv  vtable.Invoker
	data *gamedata.Table
	reg  *vtable.Registry
	log  *logger.Logger

	portOnce sync.Once
	port     uint16
	portFn   func() uint16
}

func New(cfg Config) *Extractor {
	data := cfg.Data
	if data == nil {
		data = gamedata.Default()
	}
	reg := cfg.Registry
	if reg == nil {
		reg = vtable.NewRegistry()
	}
	return &Extractor{
		r:      cfg.Reader,
		inv:    cfg.Invoker,
		data:   data,
		reg:    reg,
		log:    logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, "extract")),
		portFn: cfg.HostPort,
	}
}

// ViewAngles walks the input-command structure at cmd and returns the
// current view angle triple. The second result is false when cmd or any
// intermediate pointer is absent; no partial value is ever returned.
func (e *Extractor) ViewAngles(cmd mem.Address) (QAngle, bool) {
	addr, err := chain.Navigate(e.r, cmd, e.data.ViewAngles)
	if err != nil {
		return QAngle{}, false
	}

	pitch, err := mem.ReadFloat32(e.r, addr)
	if err != nil {
		return QAngle{}, false
	}
	yaw, err := mem.ReadFloat32(e.r, addr+4)
	if err != nil {
		return QAngle{}, false
	}
	roll, err := mem.ReadFloat32(e.r, addr+8)
	if err != nil {
		return QAngle{}, false
	}
	return QAngle{Pitch: pitch, Yaw: yaw, Roll: roll}, true
}

// WorkshopID returns the identifier of the active workshop content. svc
// is the network server service singleton supplied by the host.
//
// The addons text is comma-separated; only the first field is the
// identifier. An empty or unreadable text means the binding no longer
// matches the host build and is surfaced as ErrWorkshopUnavailable.
func (e *Extractor) WorkshopID(svc mem.Address) (string, error) {
	if svc == 0 {
		return "", fmt.Errorf("extract: network server service: %w", mem.ErrNullAddress)
	}

	getServer, err := e.reg.Resolve(bindGameServer, e.r, e.inv, svc, e.data.WorkshopGameServerSlot)
	if err != nil {
		return "", err
	}
	ret, err := getServer.Invoke(uintptr(svc))
	if err != nil {
		return "", fmt.Errorf("extract: get game server: %w", err)
	}
	server := mem.Address(ret)
	if server == 0 {
		e.log.Debugln("workshop: no active game server")
		return "", ErrWorkshopUnavailable
	}

	getAddons, err := e.reg.Resolve(bindAddons, e.r, e.inv, server, e.data.WorkshopAddonsSlot)
	if err != nil {
		return "", err
	}
	ret, err = getAddons.Invoke(uintptr(server))
	if err != nil {
		return "", fmt.Errorf("extract: get addons: %w", err)
	}

	text, err := mem.ReadNTS(e.r, mem.Address(ret), e.data.AddonsTextMax)
	if err != nil {
		e.log.Debugln("workshop: addons text unreadable:", err)
		return "", ErrWorkshopUnavailable
	}
	id, _, _ := strings.Cut(text, ",")
	if id == "" {
		return "", ErrWorkshopUnavailable
	}
	return id, nil
}

// ServerAddress returns the server's public IPv4 address in dotted
// decimal form. svc is the network server service singleton.
func (e *Extractor) ServerAddress(svc mem.Address) (string, error) {
	if svc == 0 {
		return "", fmt.Errorf("extract: network server service: %w", mem.ErrNullAddress)
	}

	getAddr, err := e.reg.Resolve(bindNetAddr, e.r, e.inv, svc, e.data.ServerAddressSlot)
	if err != nil {
		return "", err
	}
	ret, err := getAddr.Invoke(uintptr(svc))
	if err != nil {
		return "", fmt.Errorf("extract: get address buffer: %w", err)
	}
	buf := mem.Address(ret)
	if buf == 0 {
		return "", fmt.Errorf("extract: address buffer: %w", mem.ErrNullAddress)
	}

	octets, err := e.r.ReadBytes(buf+mem.Address(e.data.NetAddrIPOffset), 4)
	if err != nil {
		return "", fmt.Errorf("extract: read address octets: %w", err)
	}
	return fmt.Sprintf("%d.%d.%d.%d", octets[0], octets[1], octets[2], octets[3]), nil
}

// ServerPort returns the server port from host configuration state,
// read on first use and cached for the process lifetime.
func (e *Extractor) ServerPort() uint16 {
	e.portOnce.Do(func() {
		if e.portFn != nil {
			e.port = e.portFn()
		}
	})
	return e.port
}

// ServerAddressPort combines ServerAddress and ServerPort into one
// "ip:port" string.
func (e *Extractor) ServerAddressPort(svc mem.Address) (string, error) {
	ip, err := e.ServerAddress(svc)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:%d", ip, e.ServerPort()), nil
}
