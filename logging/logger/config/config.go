// Package config holds the logger settings read from the logger.* keys.
package config

import (
	"github.com/spf13/viper"
)

// Config is the logger section. Level is a logrus level (1 fatal .. 6
// trace), Format is json or text and Output is stdout, stderr or file.
type Config struct {
	Level      int    `json:"level" yaml:"level"`
	Format     string `json:"format" yaml:"format"`
	Output     string `json:"output" yaml:"output"`
	OutputFile string `json:"output_file" yaml:"output_file"`
}

// GetConfig reads the logger section of v.
func GetConfig(v *viper.Viper) *Config {
	return &Config{
		Level:      v.GetInt("logger.level"),
		Format:     v.GetString("logger.format"),
		Output:     v.GetString("logger.output"),
		OutputFile: v.GetString("logger.output_file"),
	}
}
