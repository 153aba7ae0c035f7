//go:build darwin || dragonfly || freebsd || netbsd || openbsd

package pinger

const (
	dgramHasIPHeader = true
	dgramIdentIsPort = false
)

func bindToDevice(fd int, iface string) error {
	return ErrNotSupported
}
