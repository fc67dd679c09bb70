package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/xid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/Beastly713/hashira/pkg/compression"
	"github.com/Beastly713/hashira/pkg/format"
	"github.com/Beastly713/hashira/pkg/shamir"
)

// PipelineConfig holds the parameters for solving share documents
type PipelineConfig struct {
	// Verify cross-checks the secret over other k-subsets of the shares.
	Verify bool

	// MaxSubsets bounds the cross-check; zero or less means every subset.
	MaxSubsets int

	// Workers bounds how many documents SolveFiles handles at once.
	Workers int
}

// SolvePipeline orchestrates the flow: Decompress -> Parse -> Decode -> Interpolate.
// The returned report is filled in as far as the pipeline got, even on error.
func SolvePipeline(name string, input io.Reader, config PipelineConfig) (*format.Report, error) {
	report := &format.Report{File: name}

	// 1. Decompress
	r, err := compression.NewGzipDecompressor().NewReader(input)
	if err != nil {
		return fail(report, fmt.Errorf("decompression failed: %w", err))
	}
	defer r.Close()

	// 2. Parse
	doc, err := format.Parse(r, format.SyntaxFor(name))
	if err != nil {
		return fail(report, fmt.Errorf("parse failed: %w", err))
	}
	report.N, report.K = doc.Keys.N, doc.Keys.K

	if len(doc.Entries) != doc.Keys.N {
		log.Warn().Str("file", name).Msgf("document declares n=%d but carries %d shares", doc.Keys.N, len(doc.Entries))
	}

	// 3. Decode share values
	shares, err := doc.Shares()
	if err != nil {
		return fail(report, fmt.Errorf("decode failed: %w", err))
	}
	if len(shares) < doc.Keys.K {
		return fail(report, fmt.Errorf("interpolation failed: %w", &shamir.InsufficientSharesError{Have: len(shares), Threshold: doc.Keys.K}))
	}

	for _, s := range shares[:doc.Keys.K] {
		report.Shares = append(report.Shares, format.ReportShare{X: s.X.String(), Y: s.Y.String()})
	}

	// 4. Interpolate at zero with the first k shares
	secret, err := shamir.InterpolateAtZero(shares, doc.Keys.K)
	if err != nil {
		return fail(report, fmt.Errorf("interpolation failed: %w", err))
	}
	report.Secret = secret.String()

	log.Debug().Str("file", name).Int("k", doc.Keys.K).Int("bits", secret.BitLen()).Msg("recovered constant")

	// 5. Optional cross-check over other subsets
	if config.Verify {
		agreement, err := shamir.Consensus(shares, doc.Keys.K, config.MaxSubsets)
		if err != nil {
			return fail(report, fmt.Errorf("verification failed: %w", err))
		}
		report.Agreement = toReport(doc, agreement)

		if agreement.Secret.Cmp(secret) != 0 {
			log.Warn().Str("file", name).Msgf("first %d shares give %s but most subsets give %s", doc.Keys.K, secret, agreement.Secret)
		}
	}

	return report, nil
}

// SolveFile opens path and runs SolvePipeline on it.
func SolveFile(path string, config PipelineConfig) (*format.Report, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fail(&format.Report{File: path}, fmt.Errorf("file not found: %s", path))
		}
		return fail(&format.Report{File: path}, fmt.Errorf("failed to open file: %w", err))
	}
	defer file.Close()

	return SolvePipeline(path, file, config)
}

// SolveFiles solves every path independently and returns one report per
// path, in input order. A failing document never stops its siblings; its
// error is recorded in the report. Cancelling ctx stops new documents
// from starting and marks them as cancelled.
func SolveFiles(ctx context.Context, paths []string, config PipelineConfig) []*format.Report {
	runID := xid.New().String()
	logger := log.With().Str("run", runID).Logger()

	workers := config.Workers
	if workers < 1 {
		workers = 1
	}

	reports := make([]*format.Report, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	logger.Info().Int("files", len(paths)).Int("workers", workers).Msg("solving share documents")

	for i, path := range paths {
		if gctx.Err() != nil {
			reports[i] = &format.Report{File: path, Error: gctx.Err().Error()}
			continue
		}

		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				reports[i] = &format.Report{File: path, Error: err.Error()}
				return nil
			}

			report, err := SolveFile(path, config)
			if err != nil {
				logger.Error().Err(err).Str("file", path).Msg("failed to solve document")
			}
			reports[i] = report
			return nil
		})
	}

	_ = g.Wait()

	for _, r := range reports {
		r.RunID = runID
	}
	return reports
}

// fail records err on the report and hands both back.
func fail(report *format.Report, err error) (*format.Report, error) {
	report.Error = err.Error()
	return report, err
}

func toReport(doc *format.Document, a *shamir.Agreement) *format.ReportAgreement {
	out := &format.ReportAgreement{
		Secret:     a.Secret.String(),
		Votes:      a.Votes,
		Tried:      a.Tried,
		Failed:     a.Failed,
		Distinct:   a.Distinct,
		Unanimous:  a.Unanimous(),
		Exhaustive: a.Exhaustive,
	}
	for _, i := range a.Suspects {
		out.Suspects = append(out.Suspects, doc.Entries[i].Label)
	}
	for _, i := range a.Untested {
		out.Untested = append(out.Untested, doc.Entries[i].Label)
	}
	return out
}
