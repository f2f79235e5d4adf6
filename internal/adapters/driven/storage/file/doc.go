// Package file provides filesystem-backed implementations of the dataset
// and index store ports. Datasets are human-diffable JSON; the index is a
// compact binary matrix with a JSON metadata sidecar. All writes go through
// a temp-file-then-rename so readers never observe a partial artifact.
package file
