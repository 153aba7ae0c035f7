package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math"
	"net"
	"net/netip"
	"os"
	"time"

	oneping "github.com/drgkaleda/go-oneping"
	"github.com/drgkaleda/go-oneping/pinger"
	log "github.com/sirupsen/logrus"
)

func resolve(host string) (netip.Addr, error) {
	if addr, err := netip.ParseAddr(host); err == nil {
		return addr, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	addrs, err := net.DefaultResolver.LookupNetIP(ctx, "ip", host)
	if err != nil {
		return netip.Addr{}, err
	}
	if len(addrs) == 0 {
		return netip.Addr{}, fmt.Errorf("no address for %s", host)
	}
	return addrs[0], nil
}

// parseIdent validates the -id flag. Negative means random.
func parseIdent(v int) (ident uint16, set bool, err error) {
	if v < 0 {
		return 0, false, nil
	}
	if v > math.MaxUint16 {
		return 0, false, fmt.Errorf("identifier %d out of range 0-%d", v, math.MaxUint16)
	}
	return uint16(v), true, nil
}

// parseSeq validates the -seq flag.
func parseSeq(v uint) (uint16, error) {
	if v > math.MaxUint16 {
		return 0, fmt.Errorf("sequence %d out of range 0-%d", v, math.MaxUint16)
	}
	return uint16(v), nil
}

func main() {
	iface := flag.String("I", "", "Egress interface name.")
	bind := flag.String("S", "", "Source address.")
	timeout := flag.Duration("W", oneping.DefaultTimeout, "Time to wait for a reply.")
	ttl := flag.Int("t", oneping.DefaultTTL, "IPv4 TTL or IPv6 hop limit.")
	ident := flag.Int("id", -1, "Echo identifier 0-65535 (0 only with -raw on Linux), random when negative.")
	seq := flag.Uint("seq", oneping.DefaultSeq, "Sequence number of the first probe.")
	raw := flag.Bool("raw", false, "Use a raw socket (needs privileges) instead of a ping socket.")
	count := flag.Int("c", 1, "Number of probes, sent one after another.")
	verbose := flag.Bool("v", false, "Debug logging.")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] host\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	addr, err := resolve(flag.Arg(0))
	if err != nil {
		log.WithError(err).Fatal("cannot resolve host")
	}

	p := oneping.New(addr).
		Interface(*iface).
		Timeout(*timeout).
		TTL(*ttl)
	if *raw {
		p.SocketKind(pinger.SocketRaw)
	}
	if *bind != "" {
		src, err := netip.ParseAddr(*bind)
		if err != nil {
			log.WithError(err).Fatal("invalid source address")
		}
		p.Bind(src)
	}
	id, set, err := parseIdent(*ident)
	if err != nil {
		log.WithError(err).Fatal("invalid identifier")
	}
	if set {
		p.Ident(id)
	}
	first, err := parseSeq(*seq)
	if err != nil {
		log.WithError(err).Fatal("invalid sequence number")
	}

	failed := 0
	for i := 0; i < *count; i++ {
		p.Seq(first + uint16(i))

		res, err := p.Ping()
		if err != nil {
			failed++
			entry := log.WithFields(log.Fields{"addr": addr, "seq": first + uint16(i)})
			if errors.Is(err, oneping.ErrTimedOut) {
				entry.Warn("request timed out")
				continue
			}
			entry.WithError(err).Error("ping failed")
			if !errors.Is(err, oneping.ErrTransport) {
				continue
			}
			// socket level faults will not go away on their own
			break
		}

		log.WithFields(log.Fields{
			"addr":  res.Addr,
			"ident": res.Ident,
			"seq":   res.Seq,
			"rtt":   res.RTT,
		}).Info("echo reply")
	}

	if failed > 0 {
		os.Exit(1)
	}
}
