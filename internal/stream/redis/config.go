package redis

const (
	DefaultStream = "analysis-requests"
	DefaultGroup  = "analysis-group"

	resultsSuffix = ":results"
)

type RedisStreamConfig struct {
	RedisAddr     string
	RedisPassword string
	Stream        string
	Group         string
	ConsumerName  string
	MaxRetries    int
}

func NewRedisStreamConfig(redisAddr string, redisPassword string, stream string, group string, consumerName string) *RedisStreamConfig {
	if stream == "" {
		stream = DefaultStream
	}
	if group == "" {
		group = DefaultGroup
	}
	if consumerName == "" {
		consumerName = "analyzer"
	}
	return &RedisStreamConfig{
		RedisAddr:     redisAddr,
		RedisPassword: redisPassword,
		Stream:        stream,
		Group:         group,
		ConsumerName:  consumerName,
		MaxRetries:    5,
	}
}

// ResultsStream is where answers to inline requests are published.
func ResultsStream(stream string) string {
	return stream + resultsSuffix
}
