package snapshot_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alecthomas/chomsky"
	"github.com/alecthomas/chomsky/internal/catalog"
	"github.com/alecthomas/chomsky/internal/snapshot"
)

func TestAutomatonRoundTrip(t *testing.T) {
	entry, ok := catalog.Default().Automaton("epsilon")
	require.True(t, ok)
	fa, err := entry.Build()
	require.NoError(t, err)
	data, err := snapshot.Marshal(snapshot.FromAutomaton("epsilon", fa))
	require.NoError(t, err)

	s, err := snapshot.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, "epsilon", s.Name)
	restored, err := s.ToAutomaton()
	require.NoError(t, err)
	require.Equal(t, fa.String(), restored.String())

	_, err = s.ToGrammar()
	require.ErrorIs(t, err, snapshot.ErrKind)
}

func TestGrammarRoundTrip(t *testing.T) {
	entry, ok := catalog.Default().Grammar("context-sensitive")
	require.True(t, ok)
	g, err := entry.Build()
	require.NoError(t, err)
	buf := &bytes.Buffer{}
	require.NoError(t, snapshot.Encode(buf, snapshot.FromGrammar("cs", g)))

	s, err := snapshot.Decode(buf)
	require.NoError(t, err)
	restored, err := s.ToGrammar()
	require.NoError(t, err)
	require.Equal(t, g.String(), restored.String())
	require.Equal(t, chomsky.ContextSensitive, restored.Classify())
}

func TestDecodeRejectsVersion(t *testing.T) {
	data, err := snapshot.Marshal(&snapshot.Snapshot{Version: 99, Kind: snapshot.KindGrammar})
	require.NoError(t, err)
	_, err = snapshot.Decode(bytes.NewReader(data))
	require.EqualError(t, err, "unsupported snapshot version 99")
}
