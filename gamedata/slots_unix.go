//go:build unix

package gamedata

// POSIX builds of the host lay the service table out with one extra
// leading entry.
const workshopGameServerSlot = 24
