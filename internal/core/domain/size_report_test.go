package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/fnpack/internal/core/domain"
)

func TestSizeReport_Human(t *testing.T) {
	r := domain.SizeReport{TreeBytes: 52_430_000, ArchiveBytes: 13_100_000}

	assert.Equal(t, "52.43MB", r.HumanTree())
	assert.Equal(t, "13.1MB", r.HumanArchive())
}

func TestSizeReport_Ratio(t *testing.T) {
	r := domain.SizeReport{TreeBytes: 100, ArchiveBytes: 25}
	assert.InDelta(t, 0.25, r.Ratio(), 1e-9)

	empty := domain.SizeReport{}
	assert.Zero(t, empty.Ratio())
}
