// Command fhestringdemo drives the oblivious string operations in
// package fhestring from the command line, encrypting the operands,
// running the requested module's operation(s), and decrypting the
// result(s) for display — mirroring the --module demo harness of the
// reference implementation this package is modeled on.
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/klauspost/cpuid/v2"
	"github.com/montanaflynn/stats"
	"github.com/urfave/cli"

	"github.com/Lcressot/fhe-string-bounty/fhestring"
	"github.com/Lcressot/fhe-string-bounty/internal/tfhe"
)

func main() {
	app := cli.NewApp()
	app.Name = "fhestringdemo"
	app.Usage = "run oblivious FHE string operations from the command line"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "string", Value: "hello world", Usage: "the primary operand string"},
		cli.StringFlag{Name: "pattern", Value: "wor", Usage: "the pattern/from operand string"},
		cli.StringFlag{Name: "pattern_to", Value: "", Usage: "the replacement/to operand string"},
		cli.IntFlag{Name: "padding_string", Value: 0, Usage: "trailing zero padding to add to --string"},
		cli.IntFlag{Name: "padding_pattern", Value: 0, Usage: "trailing zero padding to add to --pattern"},
		cli.IntFlag{Name: "padding_to", Value: 0, Usage: "trailing zero padding to add to --pattern_to"},
		cli.IntFlag{Name: "n", Value: 2, Usage: "count argument for n-bounded operations (splitn, replacen, repeat)"},
		cli.StringFlag{Name: "module", Value: "all", Usage: "which module to demo: mod, partial_ordering, case, contains, find, trim, strip, split, replace, repeat, all"},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	fmt.Printf("CPU: %s (%d logical cores)\n", cpuid.CPU.BrandName, cpuid.CPU.LogicalCores)

	params, err := tfhe.NewParameters(tfhe.DefaultParametersLiteral())
	if err != nil {
		return err
	}
	ck := fhestring.NewClientKey(params)
	sk := fhestring.NewServerKey(params, ck.GenEvaluationKey())

	s := ck.EncryptString(c.String("string"), c.Int("padding_string"))
	pattern := ck.EncryptString(c.String("pattern"), c.Int("padding_pattern"))
	to := ck.EncryptString(c.String("pattern_to"), c.Int("padding_to"))
	n := c.Int("n")

	var timings []float64
	demo := func(label string, f func()) {
		start := timeNow()
		f()
		elapsed := timeNow() - start
		timings = append(timings, elapsed)
		fmt.Printf("  [%8.3fms] %s\n", elapsed, label)
	}

	module := c.String("module")
	fmt.Printf("string=%q pattern=%q pattern_to=%q module=%s\n", c.String("string"), c.String("pattern"), c.String("pattern_to"), module)

	runModule := func(name string) error {
		switch name {
		case "mod":
			demo("mod", func() {
				fmt.Printf("    len      = %d\n", ck.DecryptUint(sk.Len(s)))
				fmt.Printf("    is_empty = %v\n", ck.DecryptBool(sk.IsEmpty(s)))
			})
		case "partial_ordering":
			demo("partial_ordering", func() {
				fmt.Printf("    eq = %v, lt = %v\n", ck.DecryptBool(sk.Eq(s, pattern)), ck.DecryptBool(sk.Lt(s, pattern)))
			})
		case "case":
			demo("case", func() {
				fmt.Printf("    lower = %q\n", ck.DecryptString(sk.ToLowercase(s)))
				fmt.Printf("    upper = %q\n", ck.DecryptString(sk.ToUppercase(s)))
			})
		case "contains":
			demo("contains", func() {
				fmt.Printf("    contains    = %v\n", ck.DecryptBool(sk.Contains(s, pattern)))
				fmt.Printf("    starts_with = %v\n", ck.DecryptBool(sk.StartsWith(s, pattern)))
				fmt.Printf("    ends_with   = %v\n", ck.DecryptBool(sk.EndsWith(s, pattern)))
			})
		case "find":
			demo("find/rfind", func() {
				idx, found := sk.Find(s, pattern)
				ridx, rfound := sk.Rfind(s, pattern)
				fmt.Printf("    find  = %d, found=%v\n", ck.DecryptUint(idx), ck.DecryptBool(found))
				fmt.Printf("    rfind = %d, found=%v\n", ck.DecryptUint(ridx), ck.DecryptBool(rfound))
			})
		case "trim":
			demo("trim", func() {
				fmt.Printf("    trim = %q\n", ck.DecryptString(sk.TrimReusable(s)))
			})
		case "strip":
			demo("strip", func() {
				prefixed, prefixFound := sk.StripPrefixReusable(s, pattern)
				suffixed, suffixFound := sk.StripSuffixReusable(s, pattern)
				fmt.Printf("    strip_prefix = %q, found=%v\n", ck.DecryptString(prefixed), ck.DecryptBool(prefixFound))
				fmt.Printf("    strip_suffix = %q, found=%v\n", ck.DecryptString(suffixed), ck.DecryptBool(suffixFound))
			})
		case "split":
			demo("split", func() {
				fields, numeric := sk.Split(s, pattern)
				count := ck.DecryptUint(numeric)
				for i := uint64(0); i < count && i < uint64(len(fields)); i++ {
					fmt.Printf("    field[%d] = %q\n", i, ck.DecryptString(fields[i]))
				}
			})
		case "replace":
			demo("replace", func() {
				fmt.Printf("    replace  = %q\n", ck.DecryptString(sk.Replace(s, pattern, to)))
				fmt.Printf("    replacen = %q\n", ck.DecryptString(sk.Replacen(s, pattern, to, n)))
			})
		case "repeat":
			demo("repeat", func() {
				fmt.Printf("    repeat(%d) = %q\n", n, ck.DecryptString(sk.Repeat(s, n)))
			})
		default:
			return fmt.Errorf("fhestringdemo: unrecognized module %q", name)
		}
		return nil
	}

	if module == "all" {
		for _, m := range []string{"mod", "partial_ordering", "case", "contains", "find", "trim", "strip", "split", "replace", "repeat"} {
			if err := runModule(m); err != nil {
				return err
			}
		}
		if len(timings) > 0 {
			mean, _ := stats.Mean(timings)
			median, _ := stats.Median(timings)
			max, _ := stats.Max(timings)
			fmt.Printf("\nsummary over %d operations: mean=%.3fms median=%.3fms max=%.3fms\n", len(timings), mean, median, max)
		}
		return nil
	}
	return runModule(module)
}

func timeNow() float64 {
	return float64(time.Now().UnixNano()) / 1e6
}
