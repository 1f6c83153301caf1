// Package connectors provides implementations of the FileSource interface
// for document sources. The filesystem connector walks and watches a
// local directory tree; it is the only source the pipeline reads from.
package connectors
