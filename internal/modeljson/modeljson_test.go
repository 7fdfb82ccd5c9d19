package modeljson

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func TestStripFenceAndTag(t *testing.T) {
	raw := "```json\n{\"topics\":[]}\n```"
	require.Equal(t, `{"topics":[]}`, Strip(raw))
}

func TestStripFenceWithoutTag(t *testing.T) {
	raw := "```\n{\"a\":1}\n```"
	require.Equal(t, `{"a":1}`, Strip(raw))
}

func TestStripBareTag(t *testing.T) {
	require.Equal(t, `{"a":1}`, Strip("JSON {\"a\":1}"))
}

func TestStripPlainText(t *testing.T) {
	require.Equal(t, `{"a":1}`, Strip(" {\"a\":1} "))
}

func TestExtractDirect(t *testing.T) {
	doc, err := Extract(`{"topics":[{"topic":"t","content":"c"}]}`)
	require.NoError(t, err)
	require.JSONEq(t, `{"topics":[{"topic":"t","content":"c"}]}`, doc)
}

func TestExtractFenced(t *testing.T) {
	doc, err := Extract("```json\n{\"topics\":[]}\n```")
	require.NoError(t, err)
	require.JSONEq(t, `{"topics":[]}`, doc)
}

func TestExtractSpanFallback(t *testing.T) {
	raw := `Here is the quiz you asked for: {"questions":[]} hope it helps!`
	doc, err := Extract(raw)
	require.NoError(t, err)
	require.JSONEq(t, `{"questions":[]}`, doc)
}

func TestExtractArraySpan(t *testing.T) {
	raw := `Sure! [1,2,3] is the answer.`
	doc, err := Extract(raw)
	require.NoError(t, err)
	require.JSONEq(t, `[1,2,3]`, doc)
}

func TestExtractRepairsRawNewlines(t *testing.T) {
	raw := "{\"topic\":\"line one\nline two\"}"
	doc, err := Extract(raw)
	require.NoError(t, err)

	var parsed map[string]string
	require.NoError(t, Unmarshal(doc, &parsed))
	require.Equal(t, "line one\nline two", parsed["topic"])
}

func TestExtractRepairsStrayBackslash(t *testing.T) {
	raw := `{"path":"C:\Users\alice"}`
	doc, err := Extract(raw)
	require.NoError(t, err)

	var parsed map[string]string
	require.NoError(t, Unmarshal(doc, &parsed))
	require.Equal(t, `C:\Users\alice`, parsed["path"])
}

func TestExtractKeepsValidEscapes(t *testing.T) {
	raw := `{"quote":"she said \"hi\"","tab":"a\tb"}`
	var parsed map[string]string
	require.NoError(t, Unmarshal(raw, &parsed))
	require.Equal(t, `she said "hi"`, parsed["quote"])
	require.Equal(t, "a\tb", parsed["tab"])
}

func TestExtractNoJSON(t *testing.T) {
	_, err := Extract("I cannot help with that request.")
	require.ErrorIs(t, err, ErrNoJSON)
}

func TestUnmarshalIntoStruct(t *testing.T) {
	raw := "```json\n{\"topics\":[{\"topic\":\"travel\",\"content\":\"went to Lisbon\"}]}\n```"
	var out struct {
		Topics []struct {
			Topic   string `json:"topic"`
			Content string `json:"content"`
		} `json:"topics"`
	}
	require.NoError(t, Unmarshal(raw, &out))
	require.Len(t, out.Topics, 1)
	require.Equal(t, "travel", out.Topics[0].Topic)
}

func TestTruncate(t *testing.T) {
	require.Equal(t, "abc", Truncate("abc", 10))
	require.Equal(t, "abcde...", Truncate("abcdefgh", 5))
}

func TestTruncateKeepsRuneBoundary(t *testing.T) {
	// "héllo": cutting at byte 2 would split the two-byte é.
	out := Truncate("héllo", 2)
	require.Equal(t, "h...", out)
	require.True(t, utf8.ValidString(out))

	out = Truncate("日本語テキスト", 7)
	require.Equal(t, "日本...", out)
	require.True(t, utf8.ValidString(out))
}
