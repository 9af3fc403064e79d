package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/dfam-consortium/teidx/teidx"
)

func main() {
	logger := log.New(os.Stderr, "", log.Ldate|log.Ltime)

	if len(os.Args) < 2 {
		helptext := `Usage: teidx [COMMAND] [ARGS]

Building an index:
teidx build [-tilesize N] [-suffix .bgz] PROJECT_ROOT DATA_KIND

Querying a range:
teidx query [-family ACC] [-nrph] PROJECT_ROOT DATA_KIND CONTIG START END

Querying a family:
teidx query-family [-nrph] PROJECT_ROOT DATA_KIND FAMILY

Flags must come before the positional arguments.

Verifying consistency:
teidx verify PROJECT_ROOT DATA_KIND`
		fmt.Println(helptext)
		os.Exit(1)
	}

	switch os.Args[1] {
	case "build":
		buildCmd := flag.NewFlagSet("build", flag.ExitOnError)
		tileSize := buildCmd.Uint("tilesize", 0, "tile size in base pairs (0 selects the default)")
		suffix := buildCmd.String("suffix", "", "data file suffix to enumerate (default .bgz)")
		buildCmd.Parse(os.Args[2:])
		projectRoot := buildCmd.Arg(0)
		dataKind := buildCmd.Arg(1)
		if projectRoot == "" || dataKind == "" {
			logger.Println("USAGE: build [-tilesize N] [-suffix .bgz] PROJECT_ROOT DATA_KIND")
			os.Exit(1)
		}

		opts := teidx.BuildOptions{TileSize: uint32(*tileSize), Suffix: *suffix}
		if err := teidx.Build(logger, projectRoot, dataKind, opts); err != nil {
			logger.Fatalf("failed to build index: %v", err)
		}
	case "query":
		queryCmd := flag.NewFlagSet("query", flag.ExitOnError)
		family := queryCmd.String("family", "", "restrict results to this family accession")
		nrph := queryCmd.Bool("nrph", false, "restrict results to NRPH==1 records")
		queryCmd.Parse(os.Args[2:])
		args := queryCmd.Args()
		if len(args) < 5 {
			logger.Println("USAGE: query [-family ACC] [-nrph] PROJECT_ROOT DATA_KIND CONTIG START END")
			os.Exit(1)
		}
		projectRoot, dataKind, contig := args[0], args[1], args[2]
		start, err := strconv.ParseUint(args[3], 10, 64)
		if err != nil {
			logger.Fatalf("invalid start position %q: %v", args[3], err)
		}
		end, err := strconv.ParseUint(args[4], 10, 64)
		if err != nil {
			logger.Fatalf("invalid end position %q: %v", args[4], err)
		}

		var familyPtr *string
		if *family != "" {
			familyPtr = family
		}

		lines, err := teidx.Query(logger, projectRoot, dataKind, contig, start, end, familyPtr, *nrph)
		if err != nil {
			logger.Fatalf("query failed: %v", err)
		}
		for _, line := range lines {
			fmt.Println(line)
		}
	case "query-family":
		familyCmd := flag.NewFlagSet("query-family", flag.ExitOnError)
		nrph := familyCmd.Bool("nrph", false, "restrict results to NRPH==1 records")
		familyCmd.Parse(os.Args[2:])
		args := familyCmd.Args()
		if len(args) < 3 {
			logger.Println("USAGE: query-family [-nrph] PROJECT_ROOT DATA_KIND FAMILY")
			os.Exit(1)
		}

		lines, err := teidx.QueryFamilyByKind(logger, args[0], args[1], args[2], *nrph)
		if err != nil {
			logger.Fatalf("query-family failed: %v", err)
		}
		for _, line := range lines {
			fmt.Println(line)
		}
	case "verify":
		verifyCmd := flag.NewFlagSet("verify", flag.ExitOnError)
		verifyCmd.Parse(os.Args[2:])
		args := verifyCmd.Args()
		if len(args) < 2 {
			logger.Println("USAGE: verify PROJECT_ROOT DATA_KIND")
			os.Exit(1)
		}

		warnings, err := teidx.VerifyKind(logger, args[0], args[1])
		if err != nil {
			logger.Fatalf("verify failed: %v", err)
		}
		if warnings > 0 {
			logger.Printf("%d consistency warnings", warnings)
		}
	default:
		fmt.Printf("unrecognized command %q\n", os.Args[1])
		os.Exit(1)
	}
}
