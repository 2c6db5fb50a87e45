package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// BuildPlan is the resolved set of inputs and outputs for one packaging run.
// All paths are as given by the build configuration, relative to the working
// directory unless absolute. The plan is immutable once loaded.
type BuildPlan struct {
	// EntryPoint is the first-party source file copied into the prefix root.
	EntryPoint InternedString

	// ManifestPath is the dependency manifest file, one constraint per line.
	ManifestPath InternedString

	// IgnoreFile is the ignore-pattern file, one glob per line. A missing or
	// empty file means nothing is excluded.
	IgnoreFile InternedString

	// Prefix is the isolated installation prefix owned by this build run.
	Prefix InternedString

	// ArchivePath is where the compressed artifact is written.
	ArchivePath InternedString

	// Python is the interpreter used to drive the installer tool.
	Python InternedString

	// ReportInterimSize reports the uncompressed prefix size between assembly
	// and archiving, in addition to the final report.
	ReportInterimSize bool
}

// GenerateBuildID creates a deterministic hash identifying the plan, used as
// the key for recorded build runs.
func GenerateBuildID(plan *BuildPlan) string {
	var builder strings.Builder
	for _, field := range []string{
		plan.EntryPoint.String(),
		plan.ManifestPath.String(),
		plan.IgnoreFile.String(),
		plan.Prefix.String(),
		plan.ArchivePath.String(),
		plan.Python.String(),
		strconv.FormatBool(plan.ReportInterimSize),
	} {
		builder.WriteString(field)
		builder.WriteString(";")
	}

	hash := sha256.Sum256([]byte(builder.String()))
	return hex.EncodeToString(hash[:])
}
