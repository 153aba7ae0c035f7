package pinger

import (
	"os"

	"golang.org/x/sys/unix"
)

const (
	// ping sockets hand us the bare ICMP message
	dgramHasIPHeader = false
	dgramIdentIsPort = true
)

func bindToDevice(fd int, iface string) error {
	return os.NewSyscallError("setsockopt", unix.BindToDevice(fd, iface))
}
