package locations

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
)

//go:embed data/service_area.txt
var dataFS embed.FS

const defaultListPath = "data/service_area.txt"

var (
	defaultOnce   sync.Once
	defaultPlaces []string
	defaultErr    error
)

// DefaultPlaces returns the embedded service-area list, loaded once.
func DefaultPlaces() ([]string, error) {
	defaultOnce.Do(func() {
		f, err := dataFS.Open(defaultListPath)
		if err != nil {
			defaultErr = err
			return
		}
		defer func() { _ = f.Close() }()

		places, err := LoadPlaces(f)
		if err != nil {
			defaultErr = err
			return
		}
		defaultPlaces = places
	})

	if defaultErr != nil {
		return nil, defaultErr
	}
	return append([]string{}, defaultPlaces...), nil
}

// LoadPlaces reads a place list, one entry per line. Blank lines and lines
// starting with # are skipped, duplicates collapse, and the result is sorted.
func LoadPlaces(r io.Reader) ([]string, error) {
	if r == nil {
		return nil, fmt.Errorf("locations: missing reader")
	}

	scanner := bufio.NewScanner(r)
	places := make([]string, 0, 128)
	seen := map[string]struct{}{}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		places = append(places, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	sort.Strings(places)
	return places, nil
}
