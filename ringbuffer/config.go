package ringbuffer

type ElasticConfig struct {
	// MaxSize is the maximum number of items the buffer can hold.
	MaxSize int
	// InitialCapacity is the number of slots allocated upfront.
	InitialCapacity int

	// Name enables logging and metrics for the buffer when not empty.
	Name string
}

func NewDefaultElasticConfig() *ElasticConfig {
	return &ElasticConfig{
		MaxSize:         4096,
		InitialCapacity: 0,
	}
}
