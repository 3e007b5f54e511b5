package toast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderShowEscapes(t *testing.T) {
	script, err := RenderShow("O'Brien.App", Notification{
		Title:     `Tom & "Jerry"`,
		Message:   "line1\nline2 <b>",
		Arguments: "contoso.app:action=view&id=1",
		Actions:   []Action{{Label: "Like", Arguments: "contoso.app:action=like"}},
		Tag:       "msg-1",
		Group:     "chat's",
	})
	require.NoError(t, err)

	assert.Contains(t, script, `launch="contoso.app:action=view&amp;id=1"`)
	assert.Contains(t, script, `<text>Tom &amp; &#34;Jerry&#34;</text>`)
	assert.Contains(t, script, `<text>line1&#xA;line2 &lt;b&gt;</text>`)
	assert.Contains(t, script, `content="Like" arguments="contoso.app:action=like"`)
	assert.Contains(t, script, `$toast.Tag = 'msg-1'`)
	assert.Contains(t, script, `$toast.Group = 'chat''s'`)
	assert.Contains(t, script, `CreateToastNotifier('O''Brien.App')`)
	assert.NotContains(t, script, "<actions></actions>")
}

func TestRenderShowWithoutActions(t *testing.T) {
	script, err := RenderShow("Contoso.App", Notification{Title: "hi", Tag: "t"})
	require.NoError(t, err)
	assert.NotContains(t, script, "<actions>")
	assert.NotContains(t, script, "appLogoOverride")
}

func TestRenderShowPackagedUsesDefaultNotifier(t *testing.T) {
	script, err := RenderShow("", Notification{Title: "hi"})
	require.NoError(t, err)
	assert.Contains(t, script, "::CreateToastNotifier().Show($toast)")
	assert.Contains(t, script, "$toast.Tag = ''")
}

func TestRenderHistoryScopes(t *testing.T) {
	assert.Contains(t, RenderClear(""), "$history.Clear()")
	assert.Contains(t, RenderClear("Contoso.App"), "$history.Clear('Contoso.App')")

	assert.Contains(t, RenderRemove("", "t", ""), "$history.Remove('t')")
	assert.Contains(t, RenderRemove("", "t", "g"), "$history.Remove('t', 'g')")
	assert.Contains(t, RenderRemove("Contoso.App", "t", ""), "$history.Remove('t', '', 'Contoso.App')")

	assert.Contains(t, RenderRemoveGroup("", "g"), "$history.RemoveGroup('g')")
	assert.Contains(t, RenderRemoveGroup("Contoso.App", "g"), "$history.RemoveGroup('g', 'Contoso.App')")

	assert.Contains(t, RenderList(""), "$history.GetHistory()")
	assert.Contains(t, RenderList("Contoso.App"), "$history.GetHistory('Contoso.App')")
}

func TestParseList(t *testing.T) {
	records, err := ParseList([]byte(`[{"tag":"a","group":"g","title":"T","message":"M","arguments":"x:y"},{"tag":"b","group":"","title":"","message":"","arguments":""}]` + "\r\n"))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, Record{Tag: "a", Group: "g", Title: "T", Message: "M", Arguments: "x:y"}, records[0])
	assert.Equal(t, "b", records[1].Tag)

	records, err = ParseList([]byte("  \n"))
	require.NoError(t, err)
	assert.Empty(t, records)

	records, err = ParseList([]byte("[]"))
	require.NoError(t, err)
	assert.Empty(t, records)

	_, err = ParseList([]byte("not json"))
	assert.Error(t, err)
}
