package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"v6recon/internal/addr"
	"v6recon/internal/logging"
	"v6recon/internal/scan"
)

func runScan(args []string) error {
	fs := flag.NewFlagSet("scan", flag.ExitOnError)
	cidr := fs.String("cidr", "", "CIDR to scan, e.g. 2001:db8::/120")
	family := fs.Int("family", 6, "address family: 4 or 6")
	rate := fs.Float64("rate", 0, "packets/sec (0 = default 20ms spacing)")
	discover := fs.Bool("discover", false, "discover responding link-local neighbors instead of scanning a CIDR")
	iface := fs.String("iface", "", "restrict discovery to this interface (default: all eligible)")
	logLevel := fs.String("log-level", "info", "debug|info|warn|error")
	if err := fs.Parse(args); err != nil {
		return err
	}

	log := logging.New(os.Stderr, logging.ParseLevel(*logLevel))

	if *discover {
		return runDiscover(log, *iface)
	}

	if *cidr == "" {
		return errors.New("scan: -cidr is required (or pass -discover)")
	}
	prefix, err := addr.ParseCIDR(*cidr)
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}

	cfg := scan.Config{RateLimit: *rate, Logger: log}

	var results []scan.ProbeResult
	var session *scan.Session
	switch *family {
	case 4:
		results, session, err = scan.ScanICMP4(prefix, cfg)
	case 6:
		results, session, err = scan.ScanICMP6(prefix, cfg)
	default:
		return fmt.Errorf("scan: unsupported -family %d", *family)
	}
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}

	for _, r := range results {
		fmt.Printf("%s\t%s\n", r.Source, r.RTT)
	}

	stats := session.Stats()
	log.Info("scan complete", "sent", stats.Sent, "received", stats.Received, "loss", stats.Loss)
	return nil
}

func runDiscover(log *slog.Logger, iface string) error {
	var lister scan.InterfaceLister = scan.NetInterfaceLister{}
	if iface == "" {
		found, err := scan.DiscoverAll(lister, log)
		if err != nil {
			return fmt.Errorf("scan: discover: %w", err)
		}
		for _, a := range found {
			fmt.Println(a.String())
		}
		return nil
	}

	ifaces, err := lister.Interfaces()
	if err != nil {
		return fmt.Errorf("scan: discover: %w", err)
	}
	for _, ifc := range ifaces {
		if ifc.Name != iface {
			continue
		}
		found, err := scan.DiscoverLinkLocal(ifc, log)
		if err != nil {
			return fmt.Errorf("scan: discover %s: %w", iface, err)
		}
		for _, a := range found {
			fmt.Println(a.String())
		}
		return nil
	}
	return fmt.Errorf("scan: interface %q not found", iface)
}
