package html

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrimContent(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"outer whitespace", "  hello  ", "hello"},
		{"each line trimmed", "  one  \n   two  ", "one\ntwo"},
		{"blank lines collapse", "a\n   \n b", "a\nb"},
		{"inner spacing kept", "a   b", "a   b"},
		{"entities decoded", "Tom &amp; Jerry", "Tom & Jerry"},
		{"double encoded entity", "&amp;lt;", "&lt;"},
		{"nbsp stripped at edges", "\u00a0hi\u00a0", "hi"},
		{"whitespace only", " \n\t ", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TrimContent(tt.in))
		})
	}
}

func TestGoQueryParserTree(t *testing.T) {
	doc, err := NewParser().Parse(`<p class="lead">Hello <b>world</b><!-- note --></p>`)
	require.NoError(t, err)

	root := doc.Root()
	require.NotNil(t, root)
	assert.Equal(t, "html", root.NodeName())

	var body Node
	for _, child := range root.ChildNodes() {
		if child.NodeName() == BodyTag {
			body = child
		}
	}
	require.NotNil(t, body)

	paragraphs := body.ChildNodes()
	require.Len(t, paragraphs, 1)
	p := paragraphs[0]
	assert.Equal(t, "p", p.NodeName())
	assert.Equal(t, "Hello world", p.TextContent())
	assert.Equal(t, map[string]string{"class": "lead"}, p.Attributes())

	class, ok := p.Attr("class")
	assert.True(t, ok)
	assert.Equal(t, "lead", class)
	_, ok = p.Attr("id")
	assert.False(t, ok)

	children := p.ChildNodes()
	require.Len(t, children, 3)
	assert.True(t, children[0].IsText())
	assert.Equal(t, "b", children[1].NodeName())
	assert.Equal(t, "#comment", children[2].NodeName())
	assert.Equal(t, "", children[2].TextContent())

	parent := children[0].Parent()
	require.NotNil(t, parent)
	assert.Equal(t, "p", parent.NodeName())
}

func TestGoQueryParserUppercaseTags(t *testing.T) {
	doc, err := NewParser().Parse(`<DIV><IMG SRC="/a.png"></DIV>`)
	require.NoError(t, err)

	html := doc.Root().ChildNodes()
	body := html[len(html)-1]
	div := body.ChildNodes()[0]
	assert.Equal(t, "div", div.NodeName())

	src, ok := div.ChildNodes()[0].Attr("src")
	assert.True(t, ok)
	assert.Equal(t, "/a.png", src)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(path, []byte("<p>file</p>"), 0644))

	doc, err := NewParser().ParseFile(path)
	require.NoError(t, err)
	assert.Contains(t, doc.Root().TextContent(), "file")

	_, err = NewParser().ParseFile(filepath.Join(t.TempDir(), "missing.html"))
	assert.Error(t, err)
}

func TestReadUTF8(t *testing.T) {
	t.Run("utf-8 kept", func(t *testing.T) {
		got, err := ReadUTF8(strings.NewReader("<p>Привет</p>"), "")
		require.NoError(t, err)
		assert.Equal(t, "<p>Привет</p>", got)
	})

	t.Run("charset from content type", func(t *testing.T) {
		// "café" in ISO-8859-1
		got, err := ReadUTF8(strings.NewReader("caf\xe9"), "text/html; charset=iso-8859-1")
		require.NoError(t, err)
		assert.Equal(t, "café", got)
	})

	t.Run("charset from meta", func(t *testing.T) {
		input := `<meta charset="windows-1251"><p>` + "\xcf\xf0\xe8\xe2\xe5\xf2" + `</p>`
		got, err := ReadUTF8(strings.NewReader(input), "")
		require.NoError(t, err)
		assert.Contains(t, got, "Привет")
	})
}

func TestSanitize(t *testing.T) {
	got := Sanitize(`<p onclick="x()">Hi</p><script>alert(1)</script><img src="/a.png">`)

	assert.NotContains(t, got, "script")
	assert.NotContains(t, got, "onclick")
	assert.Contains(t, got, "<p>Hi</p>")
	assert.Contains(t, got, `src="/a.png"`)
}
