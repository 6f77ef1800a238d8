package publish

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShellQuote(t *testing.T) {
	assert.Equal(t, `'plain'`, shellQuote("plain"))
	assert.Equal(t, `'it'\''s'`, shellQuote("it's"))
}

func TestScript_WriteTo(t *testing.T) {
	s := newScript("/storage/xbmc", LinkSymlink, true)
	s.mkdir("de/Filme/Heat (1995)")
	s.mkdir("de/Filme/Heat (1995)")
	s.copyGenerated("de/Filme/Heat (1995)/Heat (1995).nfo")
	s.video("nfs://b/heat.mkv", "de/Filme/Heat (1995)/Heat (1995).mkv")
	s.image("http://img/heat.jpg", "de/Filme/Heat (1995)/Heat (1995)-poster.jpg")
	s.image("/mnt/b/fanart.jpg", "de/Filme/Heat (1995)/Heat (1995)-fanart.jpg")

	var b strings.Builder
	n, err := s.WriteTo(&b)
	require.NoError(t, err)
	out := b.String()
	assert.Equal(t, int64(len(out)), n)

	assert.True(t, strings.HasPrefix(out, "#!/bin/sh\nset -e\n"))
	assert.Contains(t, out, "DST='/storage/xbmc'\n")
	assert.Contains(t, out, `rm -rf "$DST"/'de'`)
	assert.Equal(t, 1, strings.Count(out, "mkdir -p"), "directories created once")
	assert.Contains(t, out, `cp "$SRC"/'de/Filme/Heat (1995)/Heat (1995).nfo' "$DST"/'de/Filme/Heat (1995)/Heat (1995).nfo'`)
	assert.Contains(t, out, `ln -sf 'nfs://b/heat.mkv' "$DST"/'de/Filme/Heat (1995)/Heat (1995).mkv'`)
	assert.Contains(t, out, `wget -q -O "$DST"/'de/Filme/Heat (1995)/Heat (1995)-poster.jpg' 'http://img/heat.jpg'`)
	assert.Contains(t, out, `cp '/mnt/b/fanart.jpg'`)
}

func TestScript_CopyModeNoClean(t *testing.T) {
	s := newScript("/x", LinkCopy, false)
	s.mkdir("en/Serien")
	s.video("/v.mkv", "en/Serien/v.mkv")

	var b strings.Builder
	_, err := s.WriteTo(&b)
	require.NoError(t, err)

	assert.NotContains(t, b.String(), "rm -rf")
	assert.Contains(t, b.String(), `cp '/v.mkv' "$DST"/'en/Serien/v.mkv'`)
}
