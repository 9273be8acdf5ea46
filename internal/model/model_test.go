package model

import "testing"

func TestInteractionConstructorsValidate(t *testing.T) {
	cases := []struct {
		name string
		in   Interaction
	}{
		{"view", NewView(1, 2)},
		{"like", NewLike(1, 2)},
		{"share", NewShare(1, 2, ShareMetadata{Platform: "mastodon", Message: "worth a read"})},
		{"comment", NewComment(1, 2, "agreed")},
	}
	for _, c := range cases {
		if err := c.in.Validate(); err != nil {
			t.Errorf("%s: constructor output failed validation: %v", c.name, err)
		}
	}
}

func TestInteractionValidate_RejectsMixedPayloads(t *testing.T) {
	cases := []struct {
		name string
		in   Interaction
	}{
		{"view with comment", Interaction{Type: InteractionView, Comment: "hi"}},
		{"like with share", Interaction{Type: InteractionLike, Share: &ShareMetadata{Platform: "x"}}},
		{"share without metadata", Interaction{Type: InteractionShare}},
		{"share with comment", Interaction{Type: InteractionShare, Share: &ShareMetadata{}, Comment: "hi"}},
		{"comment without text", Interaction{Type: InteractionComment}},
		{"comment with share", Interaction{Type: InteractionComment, Comment: "hi", Share: &ShareMetadata{}}},
		{"unknown type", Interaction{Type: InteractionType("bookmark")}},
	}
	for _, c := range cases {
		if err := c.in.Validate(); err == nil {
			t.Errorf("%s: expected validation error", c.name)
		}
	}
}

func TestEngagementWeight(t *testing.T) {
	want := map[InteractionType]int{
		InteractionView:    1,
		InteractionLike:    3,
		InteractionShare:   5,
		InteractionComment: 4,
	}
	for typ, w := range want {
		if got := typ.EngagementWeight(); got != w {
			t.Errorf("%s: weight %d, want %d", typ, got, w)
		}
	}
}
