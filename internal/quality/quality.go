// Package quality measures how often each codec notices random bit errors.
//
// For every codec and flip count k it encodes random payloads, flips k
// distinct bits of the frame and verifies the result. Rates are averaged over
// batches. A Golay(24,12) run reports how often the same damage is
// corrected, for comparison with detection-only codes.
package quality

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"github.com/yyyoichi/errdetect"
	"github.com/yyyoichi/errdetect/internal/bitstr"
)

type Options struct {
	Seed        int64
	PayloadBits int
	Trials      int
	Batches     int
	Flips       []int
}

// Rate summarises the per-batch success rates for one flip count.
type Rate struct {
	Flips  int
	Mean   float64
	StdDev float64
}

type Result struct {
	Name  string
	Rates []Rate
}

type Report struct {
	// Detection holds one result per codec, in input order.
	Detection []Result
	// Correction is the Golay baseline.
	Correction Result
}

// Run evaluates codecs concurrently. The report is deterministic for a seed.
func Run(ctx context.Context, codecs []errdetect.Codec, opts Options) (*Report, error) {
	if opts.PayloadBits <= 0 || opts.Trials <= 0 || opts.Batches <= 0 {
		return nil, fmt.Errorf("%w: payload bits, trials and batches must be positive", errdetect.ErrInvalidConfig)
	}
	for _, k := range opts.Flips {
		if k <= 0 {
			return nil, fmt.Errorf("%w: flip count %d", errdetect.ErrInvalidConfig, k)
		}
	}

	var (
		report = &Report{Detection: make([]Result, len(codecs))}
		errs   = make([]error, len(codecs)+1)
		wg     sync.WaitGroup
	)
	wg.Add(len(codecs) + 1)
	for i, c := range codecs {
		go func(i int, c errdetect.Codec) {
			defer wg.Done()
			report.Detection[i], errs[i] = run(ctx, c.Name(), opts, func(rd *rand.Rand, k int) (bool, error) {
				return detectTrial(rd, c, opts.PayloadBits, k)
			})
		}(i, c)
	}
	go func() {
		defer wg.Done()
		report.Correction, errs[len(codecs)] = run(ctx, golayName, opts, func(rd *rand.Rand, k int) (bool, error) {
			return correctTrial(rd, golayCode{}, opts.PayloadBits, k)
		})
	}()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return report, nil
}

type trialFunc func(rd *rand.Rand, flips int) (bool, error)

func run(ctx context.Context, name string, opts Options, trial trialFunc) (Result, error) {
	res := Result{Name: name, Rates: make([]Rate, 0, len(opts.Flips))}
	for _, k := range opts.Flips {
		// the same seed per flip count gives every codec the same payloads
		rd := rand.New(rand.NewSource(opts.Seed + int64(k)))
		rates := make([]float64, opts.Batches)
		for b := range rates {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
			var hits int
			for range opts.Trials {
				ok, err := trial(rd, k)
				if err != nil {
					return Result{}, fmt.Errorf("%s: %w", name, err)
				}
				if ok {
					hits++
				}
			}
			rates[b] = float64(hits) / float64(opts.Trials)
			Logger().Debug("batch done",
				zap.String("codec", name),
				zap.Int("flips", k),
				zap.Int("batch", b),
				zap.Float64("rate", rates[b]))
		}
		mean, std := stat.MeanStdDev(rates, nil)
		if opts.Batches == 1 {
			std = 0
		}
		res.Rates = append(res.Rates, Rate{Flips: k, Mean: mean, StdDev: std})
		Logger().Info("rate measured",
			zap.String("codec", name),
			zap.Int("flips", k),
			zap.Float64("mean", mean),
			zap.Float64("stddev", std))
	}
	return res, nil
}

// detectTrial reports whether c noticed k random flips in one frame.
func detectTrial(rd *rand.Rand, c errdetect.Codec, payloadBits, k int) (bool, error) {
	payload := randomBits(rd, payloadBits)
	_, _, valid, err := errdetect.Transmit(c, payload, func(frame string) string {
		return bitstr.Flip(frame, positions(rd, len(frame), k)...)
	})
	if err != nil {
		return false, err
	}
	return !valid, nil
}

// correctTrial reports whether g restored the payload after k random flips.
func correctTrial(rd *rand.Rand, g golayCode, payloadBits, k int) (bool, error) {
	payload := randomBits(rd, payloadBits)
	frame, err := g.encode(payload)
	if err != nil {
		return false, err
	}
	if n := g.encodedLen(payloadBits); len(frame) != n {
		return false, fmt.Errorf("golay frame has %d bits, want %d", len(frame), n)
	}
	damaged := bitstr.Flip(frame, positions(rd, len(frame), k)...)
	return g.decode(damaged, payloadBits) == payload, nil
}

func randomBits(rd *rand.Rand, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = '0' + byte(rd.Intn(2))
	}
	return string(b)
}

// positions picks k distinct indexes below n; k is capped at n.
func positions(rd *rand.Rand, n, k int) []int {
	return rd.Perm(n)[:min(k, n)]
}
