package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderListBullets(t *testing.T) {
	got := RenderList("- en\n- to\n- tre")
	assert.Equal(t, "<ul><li>en</li><li>to</li><li>tre</li></ul>", got)
}

func TestRenderListBulletGlyphs(t *testing.T) {
	got := RenderList("• frukt\n• grønt")
	assert.Equal(t, "<ul><li>frukt</li><li>grønt</li></ul>", got)
}

func TestRenderListOrdinals(t *testing.T) {
	got := RenderList("1. First\n2. Second")
	assert.Equal(t, "<ol><li>First</li><li>Second</li></ol>", got)

	got = RenderList("a) alfa\nb) beta")
	assert.Equal(t, "<ol><li>alfa</li><li>beta</li></ol>", got)

	got = RenderList("1 - en\n2 - to")
	assert.Equal(t, "<ol><li>en</li><li>to</li></ol>", got)
}

func TestRenderListMixedMarkersRejected(t *testing.T) {
	assert.Equal(t, "", RenderList("- en\n2. to"))
	assert.Equal(t, "", RenderList("en\nto"))
}

func TestRenderListRequiresTwoLines(t *testing.T) {
	assert.Equal(t, "", RenderList("- bare en"))
}

func TestRenderListColonHeadingWithBulletLines(t *testing.T) {
	got := RenderList("Items:\n- one\n- two")
	assert.Equal(t, "<p><strong>Items</strong></p><ul><li>one</li><li>two</li></ul>", got)
}

func TestRenderListColonHeadingWithOrdinalLines(t *testing.T) {
	got := RenderList("Steg:\n1. pakk ut\n2. installer")
	assert.Equal(t, "<p><strong>Steg</strong></p><ol><li>pakk ut</li><li>installer</li></ol>", got)
}

func TestRenderListColonSemicolonItems(t *testing.T) {
	got := RenderList("Pros: fast; cheap; simple")
	assert.Equal(t, "<p><strong>Pros:</strong></p><ul><li>fast</li><li>cheap</li><li>simple</li></ul>", got)
}

func TestRenderListSemicolonPriorityOverLines(t *testing.T) {
	// Two semicolon items outrank line classification inside the colon path:
	// the bullet lines are consumed as inline items, markers stripped.
	got := RenderList("Meny:\n- fisk; kjøtt")
	assert.Equal(t, "<p><strong>Meny:</strong></p><ul><li>fisk</li><li>kjøtt</li></ul>", got)
}

func TestRenderListSingleSemicolonItemIsNotAList(t *testing.T) {
	assert.Equal(t, "", RenderList("Vilkår: krever registrering"))
}

func TestRenderListItemsAreEscaped(t *testing.T) {
	got := RenderList("Tags: <b>; \"quote\"; Q&A")
	assert.Equal(t, "<p><strong>Tags:</strong></p><ul><li>b&gt;</li><li>quote&quot;</li><li>Q&amp;A</li></ul>", got)
}

func TestRenderListLeadingJunkStripped(t *testing.T) {
	got := RenderList("- ** en\n- -- to")
	assert.Equal(t, "<ul><li>en</li><li>to</li></ul>", got)
}

func TestRenderListAllItemsJunkIsNotAList(t *testing.T) {
	assert.Equal(t, "", RenderList("- **\n- --"))
}
