package prospect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelRollup_AggregatesPerChannel(t *testing.T) {
	records := []Record{
		testRecord("vid1", func(r *Record) {
			r.ChannelID = "UC-a"
			r.ChannelTitle = "Workshop A"
			r.ChannelURL = "https://www.youtube.com/channel/UC-a"
			r.ViewCount = 300_000
		}),
		testRecord("vid2", func(r *Record) {
			r.ChannelID = "UC-a"
			r.ChannelTitle = "Workshop A"
			r.ViewCount = 750_000
		}),
		testRecord("vid3", func(r *Record) {
			r.ChannelID = "UC-b"
			r.ChannelTitle = "Workshop B"
			r.ViewCount = 500_000
		}),
	}

	out := ChannelRollup(records)

	require.Len(t, out, 2)

	assert.Equal(t, "UC-a", out[0].ChannelID)
	assert.Equal(t, "Workshop A", out[0].ChannelTitle)
	assert.Equal(t, 2, out[0].VideoCount)
	assert.Equal(t, int64(750_000), out[0].TopVideoViews)
	assert.Equal(t, "https://www.youtube.com/channel/UC-a", out[0].ChannelURL)

	assert.Equal(t, "UC-b", out[1].ChannelID)
	assert.Equal(t, 1, out[1].VideoCount)
	assert.Equal(t, int64(500_000), out[1].TopVideoViews)
}

func TestChannelRollup_RanksByCountThenTopViews(t *testing.T) {
	records := []Record{
		// One channel with three hits, two channels with one hit each.
		testRecord("v1", func(r *Record) { r.ChannelID = "UC-three"; r.ViewCount = 210_000 }),
		testRecord("v2", func(r *Record) { r.ChannelID = "UC-three"; r.ViewCount = 220_000 }),
		testRecord("v3", func(r *Record) { r.ChannelID = "UC-three"; r.ViewCount = 230_000 }),
		testRecord("v4", func(r *Record) { r.ChannelID = "UC-one-small"; r.ViewCount = 400_000 }),
		testRecord("v5", func(r *Record) { r.ChannelID = "UC-one-big"; r.ViewCount = 900_000 }),
	}

	out := ChannelRollup(records)

	require.Len(t, out, 3)
	assert.Equal(t, "UC-three", out[0].ChannelID, "most qualifying videos ranks first")
	assert.Equal(t, "UC-one-big", out[1].ChannelID, "count tie broken by best video's views")
	assert.Equal(t, "UC-one-small", out[2].ChannelID)
}

func TestChannelRollup_FullTieBreaksOnChannelID(t *testing.T) {
	records := []Record{
		testRecord("v1", func(r *Record) { r.ChannelID = "UC-b"; r.ViewCount = 500_000 }),
		testRecord("v2", func(r *Record) { r.ChannelID = "UC-a"; r.ViewCount = 500_000 }),
	}

	out := ChannelRollup(records)

	require.Len(t, out, 2)
	assert.Equal(t, "UC-a", out[0].ChannelID)
	assert.Equal(t, "UC-b", out[1].ChannelID)
}

func TestChannelRollup_Empty(t *testing.T) {
	out := ChannelRollup(nil)

	assert.NotNil(t, out)
	assert.Empty(t, out)
}
