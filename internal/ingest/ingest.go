// Package ingest orchestrates a single load run: validate the input file,
// parse it into a dataset, open exactly one database connection, prepare the
// destination table under the configured conflict policy, bulk-load the rows,
// and verify the resulting row count. The connection is released on every
// path once it has been opened.
package ingest

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/dustin/go-humanize"

	"csvload/internal/config"
	"csvload/internal/dataset"
	"csvload/internal/datasource/file"
	"csvload/internal/metrics"
	csvparser "csvload/internal/parser/csv"
	"csvload/internal/storage"
)

// previewRows is how many leading rows are echoed after parsing.
const previewRows = 3

// Result summarizes a completed run.
type Result struct {
	// Table is the destination table name.
	Table string

	// Rows and Columns are the parsed dataset shape.
	Rows    int64
	Columns int

	// Loaded is the number of rows the backend reported inserted.
	Loaded int64

	// Verified reports whether a post-load row count was obtained.
	// VerifiedCount holds that count; Estimated marks it as coming from
	// catalog statistics rather than an exact scan.
	Verified      bool
	VerifiedCount int64
	Estimated     bool
}

// Run executes one load described by job. The returned error, when non-nil,
// wraps one of the sentinel kinds in this package. An unavailable post-load
// verification is logged as a warning, not returned as an error.
func Run(ctx context.Context, job config.Job) (*Result, error) {
	// step wraps a pipeline stage with duration and outcome metrics.
	step := func(name string, fn func() error) error {
		start := time.Now()
		err := fn()
		metrics.RecordStep(job.Table, name, err, time.Since(start))
		return err
	}

	if err := step("validate", func() error { return job.Validate() }); err != nil {
		return nil, classify(ErrInvalidConfig, err)
	}

	src := file.NewLocal(job.CSVPath)
	if err := step("stat", src.Stat); err != nil {
		return nil, classify(ErrFileNotFound, err)
	}

	var ds *dataset.Dataset
	if err := step("parse", func() error {
		r, err := src.Open(ctx)
		if err != nil {
			return err
		}
		defer r.Close()

		p := csvparser.NewParser(csvparser.Options{
			Comma:     job.Delimiter,
			Encoding:  job.Encoding,
			TrimSpace: true,
		})
		ds, err = p.Parse(r)
		return err
	}); err != nil {
		return nil, classify(ErrParse, err)
	}

	res := &Result{
		Table:   job.Table,
		Rows:    int64(ds.RowCount()),
		Columns: ds.ColumnCount(),
	}
	metrics.RecordRows(job.Table, "parsed", res.Rows)
	logPreview(ds)

	if ds.RowCount() == 0 {
		log.Printf("warning: %s has a header but no data rows; nothing to load", job.CSVPath)
		return res, nil
	}

	kinds := ds.InferKinds()
	ds.Coerce(kinds)

	dsn, err := storage.BuildDSN(job.Driver, storage.ConnSettings{
		Server:   job.Server,
		Database: job.Database,
		Username: job.Username,
		Password: job.Password,
		Trusted:  job.Trusted,
	})
	if err != nil {
		return nil, classify(ErrInvalidConfig, err)
	}

	var repo storage.Repository
	if err := step("connect", func() error {
		repo, err = storage.New(ctx, storage.Config{
			Kind:  job.Driver,
			DSN:   dsn,
			Table: job.Table,
		})
		return err
	}); err != nil {
		return nil, classify(ErrLoad, err)
	}
	defer repo.Close()

	def := storage.NewTableDef(job.Table, ds.Columns, kinds)
	if err := step("prepare", func() error {
		return storage.EnsureTable(ctx, job.Driver, repo, def, job.IfExists)
	}); err != nil {
		return nil, classify(ErrLoad, err)
	}

	if err := step("load", func() error {
		n, err := repo.CopyFrom(ctx, ds.Columns, ds.Rows)
		if err != nil {
			return err
		}
		res.Loaded = n
		return nil
	}); err != nil {
		return nil, classify(ErrLoad, err)
	}
	metrics.RecordRows(job.Table, "loaded", res.Loaded)
	log.Printf("loaded %s rows into %s", humanize.Comma(res.Loaded), job.Table)

	if err := step("verify", func() error {
		count, estimated, err := verifyCount(ctx, repo, job.Table)
		if err != nil {
			return err
		}
		res.Verified = true
		res.VerifiedCount = count
		res.Estimated = estimated
		return nil
	}); err != nil {
		log.Printf("warning: could not verify row count of %s: %v", job.Table, err)
		return res, nil
	}

	if res.Estimated {
		log.Printf("%s now holds approximately %s rows (catalog statistics)",
			job.Table, humanize.Comma(res.VerifiedCount))
	} else {
		log.Printf("%s now holds %s rows", job.Table, humanize.Comma(res.VerifiedCount))
	}
	metrics.RecordRows(job.Table, "verified", res.VerifiedCount)
	return res, nil
}

// logPreview echoes the dataset shape and the first few rows so an operator
// can eyeball that the delimiter and encoding were right.
func logPreview(ds *dataset.Dataset) {
	log.Printf("parsed %s rows x %d columns", humanize.Comma(int64(ds.RowCount())), ds.ColumnCount())
	log.Printf("columns: %v", ds.Columns)
	for i, row := range ds.Head(previewRows) {
		log.Printf("row %d: %s", i+1, formatRow(row))
	}
}

func formatRow(row []any) string {
	return fmt.Sprintf("%v", row)
}
