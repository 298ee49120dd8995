package connector

type Config struct {
	// MaxSize is the maximum number of items queued in the connector.
	MaxSize int

	// Name enables logging and metrics for the connector when not empty.
	Name string
}

func NewDefaultConfig() *Config {
	return &Config{
		MaxSize: 2048,
	}
}
