package logger

import (
	"github.com/google/wire"
	"github.com/ncobase/calcgate/logging/logger/config"
	"github.com/ncobase/calcgate/version"
)

// ProviderSet is the wire provider set for the logger package
var ProviderSet = wire.NewSet(ProvideLogger)

// ProvideLogger configures the standard logger and tags its entries with
// the build version.
func ProvideLogger(cfg *config.Config) (*Logger, func(), error) {
	l := StdLogger()
	cleanup, err := l.Init(cfg)
	if err != nil {
		return nil, nil, err
	}
	l.SetVersion(version.GetVersionInfo().Version)
	return l, cleanup, nil
}
