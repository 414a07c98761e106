package schemagen

import (
	"context"
	"os"
	"slices"
	"strings"

	"github.com/hlop3z/schemagen/internal/alerr"
	"github.com/hlop3z/schemagen/internal/lockfile"
)

// VerifyReport describes how the files on disk compare with a fresh run.
type VerifyReport struct {
	Lock     *lockfile.VerificationResult // Fresh lock against the recorded one
	Missing  []string                     // Expected outputs absent from disk
	Modified []string                     // Outputs on disk that differ from a fresh run
}

// Stale returns every path that is out of date, sorted.
func (r *VerifyReport) Stale() []string {
	out := r.Lock.Stale()
	out = append(out, r.Missing...)
	out = append(out, r.Modified...)
	slices.Sort(out)
	return slices.Compact(out)
}

// OK reports whether every output is current.
func (r *VerifyReport) OK() bool {
	return len(r.Stale()) == 0
}

// lockfileFor computes the lock recorded for res.
func lockfileFor(res *Result) (*lockfile.LockFile, error) {
	return lockfile.Compute(res.files())
}

// Verify regenerates inputs in memory and compares the result with the lock
// file and the outputs on disk. Nothing is written.
//
// A stale output returns the report together with an ErrStaleOutput error
// listing every mismatching path.
func (g *Generator) Verify(ctx context.Context, inputs []string) (*VerifyReport, error) {
	res, err := g.Generate(ctx, inputs)
	if err != nil {
		return nil, err
	}

	expected, err := lockfileFor(res)
	if err != nil {
		return nil, err
	}
	recorded, err := lockfile.Read(g.outputPath(g.config.LockFile))
	if err != nil {
		return nil, err
	}

	report := &VerifyReport{}
	if recorded == nil && res.Empty() {
		// Nothing generated and nothing recorded.
		report.Lock = lockfile.Compare(expected, expected)
	} else {
		report.Lock = lockfile.Compare(expected, recorded)
	}

	for _, f := range res.Files {
		data, err := os.ReadFile(g.outputPath(f.Path))
		switch {
		case os.IsNotExist(err):
			report.Missing = append(report.Missing, f.Path)
		case err != nil:
			return nil, alerr.Wrap(alerr.ErrReadInput, err, "failed to read generated file").
				WithFile(g.outputPath(f.Path), 0)
		case string(data) != f.Content:
			report.Modified = append(report.Modified, f.Path)
		}
	}

	g.log("verified %d files, %d stale", len(res.Files), len(report.Stale()))

	if !report.OK() {
		e := alerr.New(alerr.ErrStaleOutput, "generated files are out of date").
			With("stale", strings.Join(report.Stale(), ", ")).
			WithHelp("run `schemagen generate` to refresh them")
		if !report.Lock.LockFileExists {
			e.WithNote("no lock file found at " + g.outputPath(g.config.LockFile))
		}
		return report, e
	}
	return report, nil
}
