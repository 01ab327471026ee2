// Command v6recon wires the target generation, scan, and classify
// subsystems together for manual operation.
package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "generate":
		err = runGenerate(os.Args[2:])
	case "scan":
		err = runScan(os.Args[2:])
	case "analyze":
		err = runAnalyze(os.Args[2:])
	case "-h", "-help", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "v6recon: unknown subcommand %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "v6recon: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `v6recon is an IPv6 network reconnaissance toolkit.

Usage:
  v6recon generate -seeds FILE -count N [-model entropy|random] [-out FILE]
  v6recon scan -cidr CIDR [-family 4|6] [-rate PPS]
  v6recon scan -discover [-iface NAME]
  v6recon analyze -in FILE [-format auto|list|csv] [-active-only] [-predicate NAME] [-op count|filter|stats|subnets|entropy|tally]`)
}
