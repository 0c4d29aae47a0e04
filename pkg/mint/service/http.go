package service

import (
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/veridlabs/biomint-middleware/pkg/app/errors"
	apphttp "github.com/veridlabs/biomint-middleware/pkg/app/http"
	"github.com/veridlabs/biomint-middleware/pkg/mint"
)

// Handler exposes the mint service over HTTP
type Handler struct {
	svc            Service
	maxUploadBytes int64
}

// NewHandler creates a new mint HTTP handler
func NewHandler(svc Service, maxUploadBytes int64) *Handler {
	return &Handler{
		svc:            svc,
		maxUploadBytes: maxUploadBytes,
	}
}

// RegisterRoutes mounts the mint endpoints on the given router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/mint", apphttp.HandleError(h.handleMint))
	r.Post("/hasMinted", apphttp.HandleError(h.handleHasMinted))
}

func (h *Handler) handleMint(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		return apperrors.BadRequestError(err, "invalid multipart form")
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	aadhaarNumber := r.FormValue("aadhaar_number")
	voterNumber := r.FormValue("voter_number")
	if aadhaarNumber == "" || voterNumber == "" {
		return apperrors.BadRequestError(nil, "aadhaar_number and voter_number are required")
	}

	req := &mint.Request{
		AadhaarNumber: aadhaarNumber,
		VoterNumber:   voterNumber,
	}
	files := make([]multipart.File, 0, 4)
	defer func() {
		for _, f := range files {
			_ = f.Close()
		}
	}()

	for _, field := range []struct {
		name string
		dst  *mint.Upload
	}{
		{mint.ArtifactAadhaar, &req.Aadhaar},
		{mint.ArtifactVoter, &req.Voter},
		{mint.ArtifactPhoto, &req.Photo},
		{mint.ArtifactFingerprint, &req.Fingerprint},
	} {
		file, _, err := r.FormFile(field.name)
		if err != nil {
			return apperrors.BadRequestError(err, fmt.Sprintf("missing %s upload", field.name))
		}
		files = append(files, file)
		*field.dst = mint.Upload{Name: field.name, Content: file}
	}

	res, err := h.svc.Mint(r.Context(), req)
	if err != nil {
		return err
	}

	apphttp.WriteJSON(w, http.StatusOK, res)
	return nil
}

type hasMintedRequest struct {
	Wallet string `json:"wallet"`
}

type hasMintedResponse struct {
	HasMinted bool `json:"hasMinted"`
}

func (h *Handler) handleHasMinted(w http.ResponseWriter, r *http.Request) error {
	var req hasMintedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return apperrors.BadRequestError(err, "invalid request body")
	}

	minted, err := h.svc.HasMinted(r.Context(), req.Wallet)
	if err != nil {
		return err
	}

	apphttp.WriteJSON(w, http.StatusOK, hasMintedResponse{HasMinted: minted})
	return nil
}
