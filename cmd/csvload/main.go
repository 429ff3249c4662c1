// Command csvload bulk-loads a delimited text file into a SQL table.
//
// Usage:
//
//	csvload [flags] <csv-file> <table-name>
//
// Credentials come from --username/--password, from CSVLOAD_USERNAME and
// CSVLOAD_PASSWORD in the environment, or from a .env file in the working
// directory; there are no baked-in defaults.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"unicode/utf8"

	"github.com/joho/godotenv"

	"csvload/internal/config"
	"csvload/internal/ingest"
	"csvload/internal/metrics"
	"csvload/internal/metrics/prompush"
	"csvload/internal/storage"
	_ "csvload/internal/storage/all"
)

func main() {
	os.Exit(run(os.Args[1:], os.Getenv))
}

// options are CLI concerns that sit outside the load job itself.
type options struct {
	metricsBackend string
	pushgatewayURL string
	verbose        bool
}

func run(args []string, getenv func(string) string) int {
	// A .env file is optional; absence is not an error.
	_ = godotenv.Load()

	job, opts, err := parseArgs(args, getenv)
	if err != nil {
		if err == flag.ErrHelp {
			return ingest.ExitOK
		}
		fmt.Fprintln(os.Stderr, err)
		return ingest.ExitUsage
	}

	log.SetFlags(0)
	if opts.verbose {
		log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	}

	if opts.metricsBackend == "pushgateway" {
		b, err := prompush.NewBackend(job.Table, opts.pushgatewayURL)
		if err != nil {
			log.Printf("error: %v", err)
			return ingest.ExitInvalidConfig
		}
		metrics.SetBackend(b)
		defer func() {
			if err := metrics.Flush(); err != nil {
				log.Printf("warning: push metrics: %v", err)
			}
		}()
	}

	res, err := ingest.Run(context.Background(), job)
	if err != nil {
		log.Printf("error: %v", err)
		return ingest.ExitCode(err)
	}
	printSummary(res)
	return ingest.ExitOK
}

// printSummary writes the operator-facing result line to stdout; diagnostics
// stay on stderr via log.
func printSummary(res *ingest.Result) {
	switch {
	case res.Rows == 0:
		fmt.Printf("%s: no data rows, nothing loaded\n", res.Table)
	case !res.Verified:
		fmt.Printf("%s: loaded %d rows (count not verified)\n", res.Table, res.Loaded)
	case res.Estimated:
		fmt.Printf("%s: loaded %d rows, table holds ~%d\n", res.Table, res.Loaded, res.VerifiedCount)
	default:
		fmt.Printf("%s: loaded %d rows, table holds %d\n", res.Table, res.Loaded, res.VerifiedCount)
	}
}

// parseArgs turns CLI arguments into a load job. Credentials fall back to the
// CSVLOAD_USERNAME and CSVLOAD_PASSWORD environment variables when the flags
// are not given.
func parseArgs(args []string, getenv func(string) string) (config.Job, options, error) {
	fs := flag.NewFlagSet("csvload", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: csvload [flags] <csv-file> <table-name>\n\nSupported drivers: %v\n\nFlags:\n", storage.ListKinds())
		fs.PrintDefaults()
	}

	var (
		driver    = fs.String("driver", "mssql", "storage backend kind")
		server    = fs.String("server", "127.0.0.1", "database server address")
		database  = fs.String("database", "", "database name (file path for sqlite)")
		username  = fs.String("username", "", "database username (default $CSVLOAD_USERNAME)")
		password  = fs.String("password", "", "database password (default $CSVLOAD_PASSWORD)")
		trusted   = fs.Bool("trusted-connection", false, "use integrated authentication instead of credentials")
		delimiter = fs.String("delimiter", ",", "CSV field delimiter (single character)")
		encoding  = fs.String("encoding", "utf-8", "input text encoding (IANA name)")
		ifExists  = fs.String("if-exists", "replace", "behavior when the table exists: fail, replace, or append")

		metricsBackend = fs.String("metrics-backend", "none", "metrics backend: none or pushgateway")
		pushgatewayURL = fs.String("pushgateway-url", "", "Prometheus Pushgateway URL (required with -metrics-backend=pushgateway)")
		verbose        = fs.Bool("v", false, "verbose logging with timestamps")
	)

	if err := fs.Parse(args); err != nil {
		return config.Job{}, options{}, err
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return config.Job{}, options{}, fmt.Errorf("expected exactly 2 arguments: <csv-file> <table-name>")
	}

	comma, err := parseDelimiter(*delimiter)
	if err != nil {
		return config.Job{}, options{}, err
	}
	policy, err := config.ParsePolicy(*ifExists)
	if err != nil {
		return config.Job{}, options{}, err
	}
	switch *metricsBackend {
	case "none", "pushgateway":
	default:
		return config.Job{}, options{}, fmt.Errorf("invalid metrics backend %q (want none or pushgateway)", *metricsBackend)
	}

	user := *username
	if user == "" {
		user = getenv("CSVLOAD_USERNAME")
	}
	pass := *password
	if pass == "" {
		pass = getenv("CSVLOAD_PASSWORD")
	}

	job := config.Job{
		CSVPath:   fs.Arg(0),
		Table:     fs.Arg(1),
		Driver:    *driver,
		Server:    *server,
		Database:  *database,
		Username:  user,
		Password:  pass,
		Trusted:   *trusted,
		Delimiter: comma,
		Encoding:  *encoding,
		IfExists:  policy,
	}
	opts := options{
		metricsBackend: *metricsBackend,
		pushgatewayURL: *pushgatewayURL,
		verbose:        *verbose,
	}
	return job, opts, nil
}

// parseDelimiter accepts exactly one character, with \t spelled out for
// shells where a literal tab is awkward.
func parseDelimiter(s string) (rune, error) {
	if s == `\t` {
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", s)
	}
	return r, nil
}
