// Package version reports the build of the running binary.
//
// Values are set with ldflags:
//
//	go build -ldflags "\
//	  -X github.com/ncobase/calcgate/version.Version=1.2.3 \
//	  -X github.com/ncobase/calcgate/version.Revision=abc1234 \
//	  -X 'github.com/ncobase/calcgate/version.BuiltAt=$(date -u +%FT%TZ)'" \
//	  ./cmd/calcgate
//
// Unset values fall back to the VCS information embedded by the go tool.
package version
