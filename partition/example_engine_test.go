package partition_test

import (
	"errors"
	"fmt"

	"github.com/plus3/blockie/partition"
)

// ExampleEngine places a shot in the middle of a grid and shows the four
// regions that replace the whole-grid region.
func ExampleEngine() {
	engine, err := partition.New(10, 10)
	if err != nil {
		panic(err)
	}

	if _, err := engine.PlaceShot(5, 5); err != nil {
		panic(err)
	}

	for _, r := range engine.Regions() {
		fmt.Println(r.Rect)
	}

	largest, _ := engine.LargestRegion()
	fmt.Println("largest:", largest.Rect)

	_, err = engine.PlaceShot(5, 5)
	fmt.Println(errors.Is(err, partition.ErrDuplicateShot))

	// Output:
	// {0,0 10x5}
	// {0,6 10x4}
	// {0,0 5x10}
	// {6,0 4x10}
	// largest: {0,0 10x5}
	// true
}

// ExampleEngine_LargestRegion shows a 1x1 grid emptied by its only shot.
func ExampleEngine_LargestRegion() {
	engine, _ := partition.New(1, 1)
	engine.PlaceShot(0, 0)

	_, err := engine.LargestRegion()
	fmt.Println(err)

	// Output:
	// partition has no regions
}
