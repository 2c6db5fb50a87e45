package domain

import "time"

// BuildInfo records the outcome of one successful packaging run.
type BuildInfo struct {
	BuildID      string    `json:"build_id,omitzero"`
	Archive      string    `json:"archive,omitzero"`
	TreeBytes    int64     `json:"tree_bytes,omitzero"`
	ArchiveBytes int64     `json:"archive_bytes,omitzero"`
	Fingerprint  string    `json:"fingerprint,omitzero"`
	Timestamp    time.Time `json:"timestamp,omitzero"`
}
