// Package report presents pipeline results: it prints object records,
// serializes them to JSON, renders annotated contour images and asks the
// user for confirmation before anything is written to disk.
//
// # Output Files
//
// SaveResults writes two files into the output directory:
//
//   - contours.png: every contour drawn on a black canvas in its own color,
//     with a 2 pixel stroke, labelled with its object index
//   - object_props.json: the ObjectProperties records as a JSON array
//
// The directory is created when it does not exist.
//
// # Confirmation
//
// A Confirmer blocks until the user presses a key. TerminalConfirmer puts
// the terminal into raw mode so a single key press is enough; when stdin is
// not a terminal it reads a line instead. StaticConfirmer answers without
// reading input and backs the -yes flag and tests.
package report
