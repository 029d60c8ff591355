package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Server http server config struct
type Server struct {
	Host   string
	Port   int
	Domain string
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

func getServerConfig(v *viper.Viper) *Server {
	return &Server{
		Host:   v.GetString("server.host"),
		Port:   v.GetInt("server.port"),
		Domain: v.GetString("server.domain"),
	}
}
