//go:build windows

package gamedata

const workshopGameServerSlot = 23
