package summarize

// Options tunes a single summary request. Zero values fall back to the
// defaults below; Model overrides the provider's configured model.
type Options struct {
	MaxSentences int
	MaxTokens    int
	Temperature  float64
	Model        string
	MaxLength    int
}

const (
	defaultMaxSentences = 3
	defaultMaxTokens    = 256
	defaultTemperature  = 0.3
	defaultMaxLength    = 150
)

func (o Options) withDefaults() Options {
	if o.MaxSentences <= 0 {
		o.MaxSentences = defaultMaxSentences
	}
	if o.MaxTokens <= 0 {
		o.MaxTokens = defaultMaxTokens
	}
	if o.Temperature <= 0 {
		o.Temperature = defaultTemperature
	}
	if o.MaxLength <= 0 {
		o.MaxLength = defaultMaxLength
	}
	return o
}
