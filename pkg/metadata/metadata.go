// Package metadata builds the attestation document pinned alongside a mint.
package metadata

// Attribute is a single display trait on the attestation document.
type Attribute struct {
	TraitType string `json:"trait_type"`
	Value     string `json:"value"`
}

// Document is the attestation metadata pinned to IPFS and referenced by the
// minted token URI.
type Document struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Image       string      `json:"image"`
	Attributes  []Attribute `json:"attributes"`
}

// Refs holds the CIDs of the staged artifacts referenced by the document.
type Refs struct {
	AadhaarCID     string
	VoterCID       string
	PhotoCID       string
	FingerprintCID string
}

// Hash attribute length; display only, never used for uniqueness checks.
const hashPreviewLen = 10

// URI renders a CID in ipfs:// form.
func URI(cid string) string {
	return "ipfs://" + cid
}

// Build assembles the attestation document for a verified identity.
func Build(identityFingerprint string, refs Refs) Document {
	preview := identityFingerprint
	if len(preview) > hashPreviewLen {
		preview = preview[:hashPreviewLen]
	}

	return Document{
		Name:        "Biometric Identity",
		Description: "Verified identity with biometrics",
		Image:       URI(refs.PhotoCID),
		Attributes: []Attribute{
			{TraitType: "Aadhaar", Value: URI(refs.AadhaarCID)},
			{TraitType: "Voter", Value: URI(refs.VoterCID)},
			{TraitType: "Fingerprint", Value: URI(refs.FingerprintCID)},
			{TraitType: "Hash", Value: preview},
		},
	}
}
