// Package mint holds the domain model for biometric identity minting.
package mint

import (
	"errors"
	"io"
)

// ErrDuplicateIdentity is returned when any fingerprint of the submitted
// identity is already recorded in the uniqueness index.
var ErrDuplicateIdentity = errors.New("identity already minted")

// Artifact labels, also used as multipart field names on the mint endpoint.
const (
	ArtifactAadhaar     = "aadhaar_file"
	ArtifactVoter       = "voter_file"
	ArtifactPhoto       = "photo"
	ArtifactFingerprint = "fingerprint"
	ArtifactMetadata    = "metadata"
)

// Upload is a single uploaded artifact. Content must be rewindable: it is
// hashed first and then re-read for staging.
type Upload struct {
	Name    string
	Content io.ReadSeeker
}

// Request carries one identity through the mint pipeline. It is
// request-scoped and never retained after the response is written.
type Request struct {
	AadhaarNumber string
	VoterNumber   string

	Aadhaar     Upload
	Voter       Upload
	Photo       Upload
	Fingerprint Upload
}

// Fingerprints are the three hex SHA-256 digests derived from a request.
type Fingerprints struct {
	Identity  string
	Photo     string
	Biometric string
}

// Result is returned to the caller once the mint transaction confirmed.
type Result struct {
	TxHash string `json:"tx_hash"`
	URI    string `json:"uri"`
	Status string `json:"status"`
}
