package decode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_Empty(t *testing.T) {
	res := Decode(nil)
	assert.Equal(t, KindEmpty, res.Kind)

	res = Decode([]byte{})
	assert.Equal(t, KindEmpty, res.Kind)
}

func TestDecode_WholeJSONObject(t *testing.T) {
	res := Decode([]byte(`{"status":"completed","full_text":"## slack_agent\nfound 3 links"}`))
	require.Equal(t, KindStructured, res.Kind)

	data, ok := res.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "completed", data["status"])
}

func TestDecode_WholeJSONArray(t *testing.T) {
	res := Decode([]byte(`[{"name":"slack_agent"},{"name":"tavily_agent"}]`))
	require.Equal(t, KindStructured, res.Kind)

	arr, ok := res.Data.([]any)
	require.True(t, ok)
	assert.Len(t, arr, 2)
}

func TestDecode_ErrorObject(t *testing.T) {
	res := Decode([]byte(`{"error":"gateway returned 401"}`))
	require.Equal(t, KindError, res.Kind)
	assert.Equal(t, "gateway returned 401", res.Message)
}

func TestDecode_BareJSONString(t *testing.T) {
	res := Decode([]byte(`"just a quoted sentence"`))
	require.Equal(t, KindText, res.Kind)
	assert.Equal(t, "just a quoted sentence", res.Message)
}

func TestDecode_SSEStream(t *testing.T) {
	raw := []byte("data: {\"error\":\"stream failed\"}\ndata: {\"ignored\":true}\n")
	res := Decode(raw)
	require.Equal(t, KindError, res.Kind)
	assert.Equal(t, "stream failed", res.Message)
}

func TestDecode_SSEStreamFirstClassifiableWins(t *testing.T) {
	raw := []byte("\n\ndata: 42\ndata: {\"answer\":42}\n")
	res := Decode(raw)
	// The bare number stays unclassified; the object on the next line wins.
	require.Equal(t, KindStructured, res.Kind)

	data, ok := res.Data.(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 42, data["answer"])
}

func TestDecode_NDJSONWithoutPrefix(t *testing.T) {
	raw := []byte("not json at all\n{\"key\":\"value\"}\n")
	res := Decode(raw)
	require.Equal(t, KindStructured, res.Kind)
}

func TestDecode_PlainTextFallback(t *testing.T) {
	raw := []byte("The agent said something\nacross two lines")
	res := Decode(raw)
	require.Equal(t, KindText, res.Kind)
	// Fallback preserves the raw input verbatim.
	assert.Equal(t, string(raw), res.Message)
}

func TestDecode_ScalarDocumentFallsThrough(t *testing.T) {
	// A whole-document number is valid JSON but not classifiable; with no
	// classifiable lines either, the decoder lands on text.
	res := Decode([]byte("42"))
	require.Equal(t, KindText, res.Kind)
	assert.Equal(t, "42", res.Message)
}
