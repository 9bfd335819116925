// Package fixture reads and writes the CSV fixture tables and discovers them
// on disk.
//
// A fixture is a header row of argument columns (arg0, arg1, ...) followed by
// the expectedresult column. Only expectedresult is ever rewritten; every other
// cell, the column order and the line ending style survive a round trip.
package fixture
