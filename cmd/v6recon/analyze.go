package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"v6recon/internal/addr"
	"v6recon/internal/classify"
	"v6recon/internal/source"
)

func runAnalyze(args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	inPath := fs.String("in", "", "path to a plain IPv6 address list or scan-result CSV")
	format := fs.String("format", "auto", "input format: auto|list|csv")
	activeOnly := fs.Bool("active-only", false, "with a scan-result CSV, keep only rows whose type column marks them active")
	op := fs.String("op", "count", "count|filter|stats|subnets|entropy|tally")
	predicate := fs.String("predicate", "", "predicate name (required for filter; optional restriction for count)")
	prefixLen := fs.Int("prefix", 64, "prefix length for subnets")
	maxK := fs.Int("top", 10, "max groups for subnets")
	bitStart := fs.Int("bit-start", 0, "bit range start for entropy")
	bitEnd := fs.Int("bit-end", 64, "bit range end for entropy")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *inPath == "" {
		return errors.New("analyze: -in is required")
	}
	f, err := os.Open(*inPath)
	if err != nil {
		return fmt.Errorf("analyze: open input: %w", err)
	}
	defer f.Close()

	addrs, err := readAnalyzeInput(f, *format, *activeOnly)
	if err != nil {
		return fmt.Errorf("analyze: read input: %w", err)
	}

	switch *op {
	case "count":
		var names []string
		if *predicate != "" {
			names = []string{*predicate}
		}
		rows, err := classify.Count(addrs, names...)
		if err != nil {
			return fmt.Errorf("analyze: %w", err)
		}
		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Predicate", "Count", "Percentage"})
		for _, r := range rows {
			table.Append([]string{r.Predicate, strconv.Itoa(r.Count), fmt.Sprintf("%.2f%%", r.Percentage)})
		}
		table.Render()

	case "filter":
		if *predicate == "" {
			return errors.New("analyze: -predicate is required for filter")
		}
		matched, err := classify.Filter(addrs, *predicate)
		if err != nil {
			return fmt.Errorf("analyze: %w", err)
		}
		for _, a := range matched {
			fmt.Println(a.String())
		}

	case "stats":
		stats := classify.ComputeStatistics(addrs)
		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Total", "Unique", "Duplicates", "Duplicate Ratio"})
		table.Append([]string{
			strconv.Itoa(stats.Total),
			strconv.Itoa(stats.Unique),
			strconv.Itoa(stats.Duplicates),
			fmt.Sprintf("%.4f", stats.DuplicateRatio),
		})
		table.Render()

	case "subnets":
		rows := classify.Subnets(addrs, *prefixLen, *maxK)
		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Prefix", "Count"})
		for _, r := range rows {
			table.Append([]string{fmt.Sprintf("%s/%d", r.Prefix, r.Bits), strconv.Itoa(r.Count)})
		}
		table.Render()

	case "tally":
		rows := classify.SpecialBlockTally(addrs)
		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Block", "Count", "Description"})
		for _, r := range rows {
			table.Append([]string{r.Name, strconv.Itoa(r.Count), r.Description})
		}
		table.Render()

	case "entropy":
		mean, err := classify.Entropy(addrs, *bitStart, *bitEnd)
		if err != nil {
			return fmt.Errorf("analyze: %w", err)
		}
		fmt.Printf("bit-mean[%d:%d] = %.6f\n", *bitStart, *bitEnd, mean)

	default:
		return fmt.Errorf("analyze: unknown -op %q", *op)
	}
	return nil
}

// readAnalyzeInput loads addresses from r in the given format ("list",
// "csv", or "auto" to sniff the header row). For a scan-result CSV,
// activeOnly restricts the result to rows whose "type" column marked
// them active (ICMPv6 reply type 129).
func readAnalyzeInput(r *os.File, format string, activeOnly bool) ([]addr.Address, error) {
	br := bufio.NewReader(r)
	if format == "auto" {
		format = sniffFormat(br)
	}

	switch format {
	case "csv":
		rows, err := source.ReadAllScanResults(br)
		if err != nil {
			return nil, err
		}
		addrs := make([]addr.Address, 0, len(rows))
		for _, row := range rows {
			if activeOnly && !row.IsActive {
				continue
			}
			addrs = append(addrs, row.Address)
		}
		return addrs, nil
	case "list":
		return source.ReadAll(br)
	default:
		return nil, fmt.Errorf("unknown -format %q", format)
	}
}

// sniffFormat peeks the first line of br to tell a scan-result CSV (a
// header row naming a "saddr" column) apart from a plain address list.
func sniffFormat(br *bufio.Reader) string {
	peek, _ := br.Peek(512)
	line := string(peek)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	line = strings.TrimSuffix(strings.TrimSpace(line), "\r")
	for _, field := range strings.Split(line, ",") {
		if strings.TrimSpace(field) == "saddr" {
			return "csv"
		}
	}
	return "list"
}
