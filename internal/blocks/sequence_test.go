package blocks

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequenceKeepsInsertionOrder(t *testing.T) {
	seq := NewSequence()
	seq.Append(NewText(TypeParagraph, "first"))
	seq.Append(NewLink("http://x.test/", "second"))
	seq.Append(NewList("ul", []string{"a", "b"}))

	got := seq.Blocks()
	require.Len(t, got, 3)
	assert.Equal(t, "first", got[0].Content)
	assert.Equal(t, "second", got[1].Title)
	assert.Equal(t, []string{"a", "b"}, got[2].Items)
	assert.Equal(t, 3, seq.Len())
}

func TestSequenceBlocksIsACopy(t *testing.T) {
	seq := NewSequence()
	seq.Append(NewText(TypeDefault, "keep"))

	got := seq.Blocks()
	got[0].Content = "changed"

	assert.Equal(t, "keep", seq.Blocks()[0].Content)
}

func TestNewListCopiesItems(t *testing.T) {
	items := []string{"one"}
	b := NewList("ul", items)
	items[0] = "mutated"

	assert.Equal(t, []string{"one"}, b.Items)
}

func TestSequenceJSON(t *testing.T) {
	t.Run("empty sequence encodes as array", func(t *testing.T) {
		data, err := json.Marshal(NewSequence())
		require.NoError(t, err)
		assert.JSONEq(t, `[]`, string(data))
	})

	t.Run("record shapes", func(t *testing.T) {
		seq := NewSequence()
		seq.Append(NewText(TypeImage, "http://x.test/a.png"))
		seq.Append(NewLink("http://y.test/p", "Click"))
		seq.Append(NewList("ul", nil))

		data, err := json.Marshal(seq)
		require.NoError(t, err)
		assert.JSONEq(t, `[
			{"type":"image","content":"http://x.test/a.png"},
			{"type":"link","url":"http://y.test/p","title":"Click"},
			{"type":"ul","content":[]}
		]`, string(data))
	})
}

func TestBlockUnmarshalJSON(t *testing.T) {
	var got []Block
	err := json.Unmarshal([]byte(`[
		{"type":"paragraph","content":"Hello world"},
		{"type":"link","url":"http://y.test/p","title":"Click"},
		{"type":"ul","content":["One","Two"]}
	]`), &got)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, NewText(TypeParagraph, "Hello world"), got[0])
	assert.Equal(t, NewLink("http://y.test/p", "Click"), got[1])
	assert.Equal(t, NewList("ul", []string{"One", "Two"}), got[2])
}

func TestBlockMarshalUnknownKind(t *testing.T) {
	_, err := json.Marshal(Block{Type: "broken", Kind: Kind(42)})
	assert.Error(t, err)
}
