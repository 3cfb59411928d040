package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppBuildInfo_String(t *testing.T) {
	info := NewAppBuildInfo("1.2.0", "", "abc123")

	assert.Equal(t, "1.2.0", info.BuildVersion())
	assert.Equal(t, "Build version: 1.2.0\nBuild date: N/A\nBuild commit: abc123", info.String())
	assert.Equal(t, "Build version: N/A\nBuild date: N/A\nBuild commit: N/A", AppBuildInfo{}.String())
}
