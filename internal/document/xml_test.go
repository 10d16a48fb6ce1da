package document

import (
	"strings"
	"testing"
)

func decode(t *testing.T, raw string) *Object {
	t.Helper()
	node, err := DecodeXML(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("DecodeXML failed: %v", err)
	}
	obj, ok := node.(*Object)
	if !ok {
		t.Fatalf("DecodeXML returned %T, want *Object", node)
	}
	return obj
}

func TestDecodeXMLTextOnlyElementCollapses(t *testing.T) {
	doc := decode(t, `<root><p>plain text</p></root>`)

	root, _ := doc.Get("root")
	obj, ok := root.(*Object)
	if !ok {
		t.Fatalf("root is %T, want *Object", root)
	}
	p, _ := obj.Get("p")
	if p != any("plain text") {
		t.Fatalf("p=%v, want collapsed string", p)
	}
}

func TestDecodeXMLAttributesAndMixedContent(t *testing.T) {
	doc := decode(t, `<root><DIV3 N="I" TYPE="CHAPTER"><p>before <i>middle</i> after</p></DIV3></root>`)

	chapters := Search(doc, "DIV3")
	if len(chapters) != 1 {
		t.Fatalf("found %d chapters, want 1", len(chapters))
	}
	chapter, ok := chapters[0].(*Object)
	if !ok {
		t.Fatalf("chapter is %T, want *Object", chapters[0])
	}
	if got := chapter.GetString("@N"); got != "I" {
		t.Fatalf("@N=%q, want %q", got, "I")
	}

	paragraphs := Search(chapter, "p")
	if len(paragraphs) != 1 {
		t.Fatalf("found %d paragraphs, want 1", len(paragraphs))
	}
	// Mixed content keeps the object shape: char data under #text, the
	// inline element under its own name.
	text := FlattenText(paragraphs[0])
	for _, word := range []string{"before", "middle", "after"} {
		if !strings.Contains(text, word) {
			t.Fatalf("flattened paragraph %q missing %q", text, word)
		}
	}
}

func TestDecodeXMLRepeatedElementsBecomeArray(t *testing.T) {
	doc := decode(t, `<root><p>one</p><p>two</p><p>three</p></root>`)

	paragraphs := Search(doc, "p")
	if len(paragraphs) != 3 {
		t.Fatalf("found %d paragraphs, want 3 spliced elements", len(paragraphs))
	}
	if paragraphs[0] != any("one") || paragraphs[2] != any("three") {
		t.Fatalf("paragraphs=%v, want document order", paragraphs)
	}
}

func TestDecodeXMLNestedChapters(t *testing.T) {
	raw := `<ECFR>
	  <DIV1 N="1" TYPE="TITLE">
	    <DIV2 N="A" TYPE="SUBTITLE">
	      <DIV3 N="I" TYPE="CHAPTER"><HEAD>CHAPTER I</HEAD><p>chapter one text</p></DIV3>
	    </DIV2>
	    <DIV3 N="II" TYPE="CHAPTER"><HEAD>CHAPTER II</HEAD></DIV3>
	  </DIV1>
	</ECFR>`
	doc := decode(t, raw)

	chapters := Search(doc, "div3")
	if len(chapters) != 2 {
		t.Fatalf("found %d chapters, want 2 at mixed depths", len(chapters))
	}
}

func TestDecodeXMLMalformed(t *testing.T) {
	if _, err := DecodeXML(strings.NewReader(`<root><p>unclosed`)); err == nil {
		t.Fatalf("DecodeXML accepted malformed input")
	}
}
