package trnnut

import "time"

// Observer receives per-event detail that the fixed Metrics counters drop: the format
// version of each decoded token, the failure of each rejected one and the domain of each
// cooldown decision. Implementations must be safe for concurrent use and must not block.
type Observer interface {
	// ObserveDecode is called once per Codec.Decode. t is nil when err is not.
	ObserveDecode(t *TRNNut, elapsed time.Duration, err error)
	// ObserveEncode is called once per Codec.Encode.
	ObserveEncode(t *TRNNut, err error)
	// ObserveCooldown is called when a Use call is admitted or refused by its cooldown.
	ObserveCooldown(domain Domain, allowed bool)
}

// CodecOption configures a Codec.
type CodecOption func(*Codec)

// WithCodecObserver reports every encode and decode to o.
func WithCodecObserver(o Observer) CodecOption {
	return func(c *Codec) {
		c.observer = o
	}
}

// WithVerifierObserver reports every cooldown decision to o.
func WithVerifierObserver(o Observer) VerifierOption {
	return func(v *CooldownVerifier) {
		v.observer = o
	}
}
