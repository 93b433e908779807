package trnnut

import (
	"fmt"
	"time"

	"github.com/MrEthical07/trnnut/permission"
	"github.com/MrEthical07/trnnut/wire"
)

// Codec encodes and decodes tokens under a fixed Config.
//
// A Codec is safe for concurrent use.
type Codec struct {
	limits   LimitsConfig
	metrics  *Metrics
	observer Observer
}

// NewCodec validates cfg and returns a codec bound to it.
func NewCodec(cfg Config, opts ...CodecOption) (*Codec, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Codec{
		limits:  cfg.Limits,
		metrics: NewMetrics(cfg.Metrics),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

var defaultCodec = func() *Codec {
	c, err := NewCodec(defaultConfig())
	if err != nil {
		panic(err)
	}
	return c
}()

// Encode serializes t with the default codec.
func Encode(t *TRNNut) ([]byte, error) {
	return defaultCodec.Encode(t)
}

// Decode parses data with the default codec.
func Decode(data []byte) (*TRNNut, error) {
	return defaultCodec.Decode(data)
}

// Metrics exposes the codec counters.
func (c *Codec) Metrics() *Metrics {
	return c.metrics
}

/*
====================================
ENCODE
====================================
*/

// Encode serializes t in its own format version. Tokens over the codec's limits are
// refused, so the output always decodes with the same codec.
func (c *Codec) Encode(t *TRNNut) ([]byte, error) {
	out, err := c.encode(t)
	if c.observer != nil {
		c.observer.ObserveEncode(t, err)
	}
	if err != nil {
		c.metrics.Inc(MetricEncodeFailure)
		return nil, err
	}
	c.metrics.Inc(MetricEncodeSuccess)
	return out, nil
}

func (c *Codec) encode(t *TRNNut) ([]byte, error) {
	if t == nil {
		return nil, ErrNilToken
	}
	format, err := LookupFormat(t.version)
	if err != nil {
		return nil, err
	}
	if err := checkLimits(t, format.Layout, c.limits); err != nil {
		return nil, err
	}
	return encode(t)
}

func encode(t *TRNNut) ([]byte, error) {
	if t == nil {
		return nil, ErrNilToken
	}
	format, err := LookupFormat(t.version)
	if err != nil {
		return nil, err
	}
	l := format.Layout

	var w wire.Writer
	if err := w.Uint(uint64(t.version), versionWidth); err != nil {
		return nil, wire.Within(err, "version")
	}

	if err := w.Uint(uint64(t.modules.Len()), l.CountWidth); err != nil {
		return nil, wire.Within(err, "modules")
	}
	i := 0
	for _, m := range t.modules.All() {
		if err := permission.EncodeModule(&w, l, m); err != nil {
			return nil, wire.Within(err, wire.Indexed("modules", i))
		}
		i++
	}

	if err := w.Uint(uint64(t.contracts.Len()), l.CountWidth); err != nil {
		return nil, wire.Within(err, "contracts")
	}
	i = 0
	for _, ct := range t.contracts.All() {
		if err := permission.EncodeContract(&w, l, ct); err != nil {
			return nil, wire.Within(err, wire.Indexed("contracts", i))
		}
		i++
	}

	return w.Bytes(), nil
}

/*
====================================
DECODE
====================================
*/

// Decode parses data. It never returns a partially decoded token.
func (c *Codec) Decode(data []byte) (*TRNNut, error) {
	start := time.Now()
	t, err := c.decode(data)
	elapsed := time.Since(start)
	c.metrics.Observe(MetricDecodeLatency, elapsed)
	if c.observer != nil {
		c.observer.ObserveDecode(t, elapsed, err)
	}
	if err != nil {
		c.metrics.Inc(MetricDecodeFailure)
		return nil, err
	}
	c.metrics.Inc(MetricDecodeSuccess)
	return t, nil
}

func (c *Codec) decode(data []byte) (*TRNNut, error) {
	if len(data) > c.limits.MaxTokenSize {
		return nil, &wire.Error{
			Kind:   wire.KindLimitExceeded,
			Offset: 0,
			Detail: fmt.Sprintf("token is %d bytes, limit %d", len(data), c.limits.MaxTokenSize),
		}
	}

	r := wire.NewReader(data)

	version, err := r.Uint(versionWidth)
	if err != nil {
		return nil, wire.Within(err, "version")
	}
	format, err := LookupFormat(uint32(version))
	if err != nil {
		return nil, wire.Within(&wire.Error{
			Kind:   wire.KindUnknownVersion,
			Offset: 0,
			Detail: fmt.Sprintf("unsupported format version %d", version),
		}, "version")
	}
	l := format.Layout

	limits := permission.DecodeLimits{
		MaxMethods:        c.limits.MaxMethodsPerModule,
		MaxConstraintsLen: c.limits.MaxConstraintsLen,
	}

	t := &TRNNut{version: format.Version}

	moduleCount, err := c.count(r, l, c.limits.MaxModules, l.MinModuleSize(), "modules")
	if err != nil {
		return nil, err
	}
	for i := uint64(0); i < moduleCount; i++ {
		path := wire.Indexed("modules", int(i))
		start := r.Offset()
		m, err := permission.DecodeModule(r, l, limits)
		if err != nil {
			return nil, wire.Within(err, path)
		}
		if !t.modules.Put(m.Name, m) {
			return nil, wire.Within(&wire.Error{
				Kind:   wire.KindDuplicateKey,
				Offset: start,
				Detail: fmt.Sprintf("module key %q repeated", m.Name),
			}, path)
		}
	}

	contractCount, err := c.count(r, l, c.limits.MaxContracts, l.ContractSize(), "contracts")
	if err != nil {
		return nil, err
	}
	for i := uint64(0); i < contractCount; i++ {
		path := wire.Indexed("contracts", int(i))
		start := r.Offset()
		ct, err := permission.DecodeContract(r, l)
		if err != nil {
			return nil, wire.Within(err, path)
		}
		if !t.contracts.Put(ct.Address, ct) {
			return nil, wire.Within(&wire.Error{
				Kind:   wire.KindDuplicateKey,
				Offset: start,
				Detail: fmt.Sprintf("contract %s repeated", ct.Address),
			}, path)
		}
	}

	if r.Remaining() > 0 && !format.AllowTrailing {
		return nil, &wire.Error{
			Kind:   wire.KindTrailingData,
			Offset: r.Offset(),
			Detail: fmt.Sprintf("%d bytes after the last section", r.Remaining()),
		}
	}

	return t, nil
}

// count reads a section count and rejects it before any allocation when it exceeds
// max or cannot fit in the remaining input.
func (c *Codec) count(r *wire.Reader, l wire.Layout, max uint64, each int, section string) (uint64, error) {
	off := r.Offset()
	n, err := r.Uint(l.CountWidth)
	if err != nil {
		return 0, wire.Within(err, section)
	}
	if n > max {
		return 0, wire.Within(&wire.Error{
			Kind:   wire.KindLimitExceeded,
			Offset: off,
			Detail: fmt.Sprintf("%d %s exceed configured limit %d", n, section, max),
		}, section)
	}
	if err := r.Require(n, each); err != nil {
		return 0, wire.Within(err, section)
	}
	return n, nil
}
