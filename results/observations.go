package results

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ObservationFile is the head observation output of a calculation.
const ObservationFile = "mf.hob.out"

var (
	// ErrNoObservations is returned when a calculation has no observation output.
	ErrNoObservations = errors.New("head observations not found")
	// ErrMalformedObservations is returned when the observation output cannot be parsed.
	ErrMalformedObservations = errors.New("error converting head observation output file")
)

// Observation is one simulated/observed head pair.
type Observation struct {
	Simulated float64 `json:"simulated"`
	Observed  float64 `json:"observed"`
	Name      string  `json:"name"`
}

// Observations returns the head observation table of a calculation.
func (s *Service) Observations(ctx context.Context, id string) ([]Observation, error) {
	if err := s.exists(id); err != nil {
		return nil, err
	}
	f, err := os.Open(filepath.Join(s.dirs.Dir(id), ObservationFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoObservations
		}
		return nil, err
	}
	defer f.Close()

	obs, err := ParseObservations(f)
	if err != nil {
		s.logger.Warnf(ctx, "calculation %s: %v", id, err)
		return nil, err
	}
	return obs, nil
}

// ParseObservations parses whitespace separated "simulated observed name"
// rows. The first line is a header and is skipped.
func ParseObservations(r io.Reader) ([]Observation, error) {
	sc := bufio.NewScanner(r)
	out := []Observation{}

	line := 0
	for sc.Scan() {
		line++
		if line == 1 {
			continue
		}
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 3 {
			return nil, fmt.Errorf("%w: line %d has %d fields", ErrMalformedObservations, line, len(fields))
		}
		sim, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedObservations, line, err)
		}
		obs, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedObservations, line, err)
		}
		out = append(out, Observation{Simulated: sim, Observed: obs, Name: fields[2]})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedObservations, err)
	}
	return out, nil
}
