package model

import "testing"

func TestNodeKindText(t *testing.T) {
	for _, k := range []NodeKind{NodeRoot, NodeCategory, NodeLeaf} {
		b, err := k.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v): %v", k, err)
		}
		var got NodeKind
		if err := got.UnmarshalText(b); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", b, err)
		}
		if got != k {
			t.Errorf("kind %q decoded as %v", b, got)
		}
	}

	var k NodeKind
	if err := k.UnmarshalText([]byte("branch")); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestNodeDataTitle(t *testing.T) {
	if got := (NodeData{Label: "Calendar"}).Title(); got != "Calendar" {
		t.Errorf("Title() = %q", got)
	}
	if got := (NodeData{Label: "Email", Icon: "📧"}).Title(); got != "📧 Email" {
		t.Errorf("Title() = %q", got)
	}
}
