package domain

import "github.com/docker/go-units"

// SizeReport carries the two advisory measurements of a packaging run: the
// uncompressed on-disk footprint of the assembled prefix and the byte size of
// the produced archive. It is observational only; no size ceiling is enforced.
type SizeReport struct {
	TreeBytes    int64
	ArchiveBytes int64
}

// HumanTree renders the uncompressed tree size in human-readable units.
func (r SizeReport) HumanTree() string {
	return units.HumanSize(float64(r.TreeBytes))
}

// HumanArchive renders the compressed archive size in human-readable units.
func (r SizeReport) HumanArchive() string {
	return units.HumanSize(float64(r.ArchiveBytes))
}

// Ratio returns compressed/uncompressed, or 0 when the tree is empty.
func (r SizeReport) Ratio() float64 {
	if r.TreeBytes == 0 {
		return 0
	}
	return float64(r.ArchiveBytes) / float64(r.TreeBytes)
}
