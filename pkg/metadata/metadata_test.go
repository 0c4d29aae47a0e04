package metadata

import (
	"encoding/json"
	"testing"
)

func TestBuild(t *testing.T) {
	doc := Build("abcdef0123456789", Refs{
		AadhaarCID:     "QmAadhaar",
		VoterCID:       "QmVoter",
		PhotoCID:       "QmPhoto",
		FingerprintCID: "QmFinger",
	})

	if doc.Name != "Biometric Identity" {
		t.Errorf("unexpected name %q", doc.Name)
	}
	if doc.Description != "Verified identity with biometrics" {
		t.Errorf("unexpected description %q", doc.Description)
	}
	if doc.Image != "ipfs://QmPhoto" {
		t.Errorf("unexpected image %q", doc.Image)
	}

	want := []Attribute{
		{TraitType: "Aadhaar", Value: "ipfs://QmAadhaar"},
		{TraitType: "Voter", Value: "ipfs://QmVoter"},
		{TraitType: "Fingerprint", Value: "ipfs://QmFinger"},
		{TraitType: "Hash", Value: "abcdef0123"},
	}
	if len(doc.Attributes) != len(want) {
		t.Fatalf("expected %d attributes, got %d", len(want), len(doc.Attributes))
	}
	for i, attr := range doc.Attributes {
		if attr != want[i] {
			t.Errorf("attribute %d: got %+v want %+v", i, attr, want[i])
		}
	}
}

func TestBuild_ShortFingerprint(t *testing.T) {
	doc := Build("abc", Refs{})
	if got := doc.Attributes[3].Value; got != "abc" {
		t.Errorf("expected full short fingerprint, got %q", got)
	}
}

func TestDocument_JSONShape(t *testing.T) {
	raw, err := json.Marshal(Build("0011223344556677", Refs{PhotoCID: "QmP"}))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	for _, key := range []string{"name", "description", "image", "attributes"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("document missing %q field", key)
		}
	}

	attrs, ok := decoded["attributes"].([]any)
	if !ok || len(attrs) == 0 {
		t.Fatal("attributes should be a non-empty array")
	}
	first, ok := attrs[0].(map[string]any)
	if !ok {
		t.Fatal("attribute should be an object")
	}
	if _, ok := first["trait_type"]; !ok {
		t.Error("attribute missing trait_type field")
	}
}

func TestURI(t *testing.T) {
	if got := URI("QmX"); got != "ipfs://QmX" {
		t.Errorf("URI() = %q", got)
	}
}
