// Package field holds the editing state behind the admin panel's colour,
// size and opacity inputs, independent of any UI toolkit.
package field
