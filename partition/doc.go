// Package partition splits a rectangular grid into candidate regions around
// placed shots.
//
// An Engine starts with one region covering the grid. Each accepted shot
// removes every region it lands on and replaces it with up to four children:
// the rows above the shot, the rows below it, the columns to its left and the
// columns to its right, each spanning the parent's full extent on the other
// axis. Regions therefore overlap; together they describe the largest
// shot-free rectangles left on the grid.
//
//	engine, _ := partition.New(10, 10)
//	engine.PlaceShot(5, 5)
//	largest, _ := engine.LargestRegion()
package partition
