package otel

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MrEthical07/trnnut"
	"github.com/MrEthical07/trnnut/metrics/export/internaldefs"
	"github.com/MrEthical07/trnnut/wire"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Instrument names.
const (
	DecodeCounterName   = "trnnut.decode"
	DecodeDurationName  = "trnnut.decode.duration"
	EncodeCounterName   = "trnnut.encode"
	CooldownCounterName = "trnnut.cooldown.decisions"
)

const (
	attrOutcome = "outcome"
	attrVersion = "version"
	attrDomain  = "domain"

	outcomeOK       = "ok"
	outcomeFailed   = "error"
	outcomeAllowed  = "allowed"
	outcomeRejected = "rejected"
)

var ErrNilMeter = errors.New("nil meter")

// Recorder records codec and cooldown events as OTel instruments. Attach it with
// trnnut.WithCodecObserver and trnnut.WithVerifierObserver.
type Recorder struct {
	decodes   metric.Int64Counter
	duration  metric.Float64Histogram
	encodes   metric.Int64Counter
	cooldowns metric.Int64Counter

	// cooldown attribute sets, indexed by domain then allowed.
	decisions map[trnnut.Domain][2]metric.AddOption
}

var _ trnnut.Observer = (*Recorder)(nil)

// NewRecorder creates the instruments on meter.
func NewRecorder(meter metric.Meter) (*Recorder, error) {
	if meter == nil {
		return nil, ErrNilMeter
	}
	r := &Recorder{decisions: make(map[trnnut.Domain][2]metric.AddOption, 3)}

	var err error
	if r.decodes, err = meter.Int64Counter(DecodeCounterName,
		metric.WithDescription("Decode calls by outcome and format version."),
	); err != nil {
		return nil, fmt.Errorf("create counter %s: %w", DecodeCounterName, err)
	}
	if r.duration, err = meter.Float64Histogram(DecodeDurationName,
		metric.WithDescription("Decode latency."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(internaldefs.LatencyBoundsSeconds...),
	); err != nil {
		return nil, fmt.Errorf("create histogram %s: %w", DecodeDurationName, err)
	}
	if r.encodes, err = meter.Int64Counter(EncodeCounterName,
		metric.WithDescription("Encode calls by outcome and format version."),
	); err != nil {
		return nil, fmt.Errorf("create counter %s: %w", EncodeCounterName, err)
	}
	if r.cooldowns, err = meter.Int64Counter(CooldownCounterName,
		metric.WithDescription("Charged uses by cooldown domain and outcome."),
	); err != nil {
		return nil, fmt.Errorf("create counter %s: %w", CooldownCounterName, err)
	}

	for _, d := range []trnnut.Domain{trnnut.DomainModule, trnnut.DomainMethod, trnnut.DomainContract} {
		r.decisions[d] = [2]metric.AddOption{
			metric.WithAttributeSet(attribute.NewSet(
				attribute.String(attrDomain, string(d)),
				attribute.String(attrOutcome, outcomeRejected),
			)),
			metric.WithAttributeSet(attribute.NewSet(
				attribute.String(attrDomain, string(d)),
				attribute.String(attrOutcome, outcomeAllowed),
			)),
		}
	}
	return r, nil
}

// ObserveDecode counts one decode under its outcome: "ok" with the token version, or
// the codec error kind.
func (r *Recorder) ObserveDecode(t *trnnut.TRNNut, elapsed time.Duration, err error) {
	attrs := metric.WithAttributeSet(outcomeSet(t, err))
	ctx := context.Background()
	r.decodes.Add(ctx, 1, attrs)
	r.duration.Record(ctx, elapsed.Seconds(), attrs)
}

// ObserveEncode counts one encode the way ObserveDecode does.
func (r *Recorder) ObserveEncode(t *trnnut.TRNNut, err error) {
	if err != nil {
		t = nil
	}
	r.encodes.Add(context.Background(), 1, metric.WithAttributeSet(outcomeSet(t, err)))
}

// ObserveCooldown counts one cooldown decision under its domain.
func (r *Recorder) ObserveCooldown(domain trnnut.Domain, allowed bool) {
	opts, ok := r.decisions[domain]
	if !ok {
		return
	}
	i := 0
	if allowed {
		i = 1
	}
	r.cooldowns.Add(context.Background(), 1, opts[i])
}

func outcomeSet(t *trnnut.TRNNut, err error) attribute.Set {
	if err != nil {
		outcome := outcomeFailed
		if kind := wire.KindOf(err); kind != "" {
			outcome = string(kind)
		}
		return attribute.NewSet(attribute.String(attrOutcome, outcome))
	}
	return attribute.NewSet(
		attribute.String(attrOutcome, outcomeOK),
		attribute.Int64(attrVersion, int64(t.Version())),
	)
}
