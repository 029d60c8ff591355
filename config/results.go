package config

import (
	"time"

	"github.com/spf13/viper"
)

// Results result reader config struct
type Results struct {
	Reader   string
	Endpoint string
	Timeout  time.Duration
}

func getResultsConfig(v *viper.Viper) *Results {
	return &Results{
		Reader:   v.GetString("results.reader"),
		Endpoint: v.GetString("results.endpoint"),
		Timeout:  durationOr(v, "results.timeout", 30*time.Second),
	}
}
