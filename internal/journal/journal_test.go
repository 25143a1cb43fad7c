package journal

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/require"

	"github.com/akorchagin/mobd/internal/combat"
)

func TestWriterRoundTrip(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, "combat")

	events := []combat.Event{
		{Kind: combat.EventAttackStarted, Tick: 1, AgentID: 10, Archetype: "Zombie", TargetID: 20},
		{Kind: combat.EventHitLanded, Tick: 9, AgentID: 10, TargetID: 20, Damage: 70},
		{Kind: combat.EventAgentDied, Tick: 12, AgentID: 20, KillerID: 10, KillerArchetype: "Zombie"},
	}
	for _, e := range events {
		w.HandleEvent(e)
	}
	require.NoError(t, w.Close())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	name := entries[0].Name()
	require.True(t, strings.HasPrefix(name, "combat-"), name)
	require.True(t, strings.HasSuffix(name, ".jsonl.zst"), name)

	f, err := os.Open(filepath.Join(dir, name))
	require.NoError(t, err)
	defer f.Close()
	dec, err := zstd.NewReader(f)
	require.NoError(t, err)
	defer dec.Close()

	var got []combat.Event
	scanner := bufio.NewScanner(dec)
	for scanner.Scan() {
		var e combat.Event
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &e))
		got = append(got, e)
	}
	require.NoError(t, scanner.Err())

	require.Equal(t, events, got)
}

func TestWriterCloseWithoutWrites(t *testing.T) {
	w := NewWriter(t.TempDir(), "combat")
	require.NoError(t, w.Close())
}
