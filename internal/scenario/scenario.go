// Package scenario loads scripted shot sequences from YAML files, runs them
// against a fresh engine and compares the outcome with the expected regions.
package scenario

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/plus3/blockie/partition"
	"gopkg.in/yaml.v3"
)

// Grid is the engine size used by a scenario.
type Grid struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Expect lists what the engine should hold after every shot. Nil fields are
// not checked.
type Expect struct {
	// Regions as [x, y, width, height] in engine order.
	Regions [][]int `yaml:"regions,omitempty"`

	// Largest as [x, y, width, height].
	Largest []int `yaml:"largest,omitempty"`

	// Empty expects every region to have been split away.
	Empty bool `yaml:"empty,omitempty"`

	// Rejected is the number of duplicate shots.
	Rejected *int `yaml:"rejected,omitempty"`
}

// Scenario is one scripted run. Path is the file it was loaded from and is
// never encoded.
type Scenario struct {
	Name   string  `yaml:"name"`
	Grid   Grid    `yaml:"grid"`
	Bounds string  `yaml:"bounds,omitempty"`
	Shots  [][]int `yaml:"shots"`
	Expect Expect  `yaml:"expect"`
	Path   string  `yaml:"-"`
}

// Result is the engine state after running a scenario.
type Result struct {
	Regions  []partition.Region
	Largest  *partition.Region
	Rejected []partition.Shot
}

// Load reads one scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	s := Scenario{Path: path}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse scenario file %s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = filepath.Base(path)
	}
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
	}
	return &s, nil
}

// LoadDir reads every .yaml and .yml file in dir, sorted by file name.
func LoadDir(dir string) ([]*Scenario, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario dir: %w", err)
	}

	var out []*Scenario
	for _, e := range entries {
		ext := filepath.Ext(e.Name())
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		s, err := Load(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (s *Scenario) validate() error {
	for i, shot := range s.Shots {
		if len(shot) != 2 {
			return fmt.Errorf("shot %d: want [x, y], got %v", i, shot)
		}
	}
	for i, r := range s.Expect.Regions {
		if len(r) != 4 {
			return fmt.Errorf("expected region %d: want [x, y, width, height], got %v", i, r)
		}
	}
	if len(s.Expect.Largest) != 0 && len(s.Expect.Largest) != 4 {
		return fmt.Errorf("expected largest: want [x, y, width, height], got %v", s.Expect.Largest)
	}
	if _, err := partition.ParseBounds(s.Bounds); err != nil {
		return err
	}
	return nil
}

// Run plays the scenario's shots on a new engine. Duplicate shots are
// collected in the result rather than failing the run.
func (s *Scenario) Run() (*Result, error) {
	bounds, err := partition.ParseBounds(s.Bounds)
	if err != nil {
		return nil, err
	}
	engine, err := partition.New(s.Grid.Width, s.Grid.Height, partition.WithBounds(bounds))
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
	}

	res := &Result{}
	for _, shot := range s.Shots {
		_, err := engine.PlaceShot(shot[0], shot[1])
		if errors.Is(err, partition.ErrDuplicateShot) {
			res.Rejected = append(res.Rejected, partition.Shot{X: shot[0], Y: shot[1]})
			continue
		}
		if err != nil {
			return nil, err
		}
	}

	res.Regions = engine.Regions()
	if largest, err := engine.LargestRegion(); err == nil {
		res.Largest = &largest
	}
	return res, nil
}

// Verify compares a result with the scenario's expectations and returns
// every mismatch joined into one error.
func (s *Scenario) Verify(res *Result) error {
	var errs []error
	exp := s.Expect

	if exp.Regions != nil {
		got := RectsOf(res.Regions)
		if !slices.EqualFunc(got, exp.Regions, slices.Equal[[]int, int]) {
			errs = append(errs, fmt.Errorf("regions: want %v, got %v", exp.Regions, got))
		}
	}

	if exp.Empty && res.Largest != nil {
		errs = append(errs, fmt.Errorf("want no regions, largest is %s", res.Largest.Rect))
	}
	if exp.Largest != nil {
		switch {
		case res.Largest == nil:
			errs = append(errs, fmt.Errorf("largest: want %v, partition is empty", exp.Largest))
		case !slices.Equal(rectOf(res.Largest.Rect), exp.Largest):
			errs = append(errs, fmt.Errorf("largest: want %v, got %v", exp.Largest, rectOf(res.Largest.Rect)))
		}
	}

	if exp.Rejected != nil && *exp.Rejected != len(res.Rejected) {
		errs = append(errs, fmt.Errorf("rejected: want %d, got %d", *exp.Rejected, len(res.Rejected)))
	}

	if len(errs) > 0 {
		return fmt.Errorf("scenario %s: %w", s.Name, errors.Join(errs...))
	}
	return nil
}

// Record fills the scenario's expectations from a result so that a run can
// be saved as a new scenario.
func (s *Scenario) Record(res *Result) {
	rejected := len(res.Rejected)
	s.Expect = Expect{
		Regions:  RectsOf(res.Regions),
		Empty:    res.Largest == nil,
		Rejected: &rejected,
	}
	if res.Largest != nil {
		s.Expect.Largest = rectOf(res.Largest.Rect)
	}
}

// Marshal encodes the scenario as YAML.
func (s *Scenario) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}

// RectsOf converts regions to [x, y, width, height] lists.
func RectsOf(regions []partition.Region) [][]int {
	if len(regions) == 0 {
		return nil
	}
	out := make([][]int, len(regions))
	for i, r := range regions {
		out[i] = rectOf(r.Rect)
	}
	return out
}

func rectOf(r partition.Rect) []int {
	return []int{r.X, r.Y, r.Width, r.Height}
}
