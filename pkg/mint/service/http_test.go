package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/veridlabs/biomint-middleware/pkg/app/errors"
	"github.com/veridlabs/biomint-middleware/pkg/mint"
)

type fakeMintSvc struct {
	res     *mint.Result
	mintErr error
	gotReq  *mint.Request

	minted    bool
	hasErr    error
	gotWallet string
}

func (f *fakeMintSvc) Mint(_ context.Context, req *mint.Request) (*mint.Result, error) {
	f.gotReq = req
	return f.res, f.mintErr
}

func (f *fakeMintSvc) HasMinted(_ context.Context, wallet string) (bool, error) {
	f.gotWallet = wallet
	return f.minted, f.hasErr
}

func newTestRouter(svc Service) http.Handler {
	r := chi.NewRouter()
	NewHandler(svc, 32<<20).RegisterRoutes(r)
	return r
}

func buildMintForm(t *testing.T, fields map[string]string, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			t.Fatalf("WriteField(%s) failed: %v", name, err)
		}
	}
	for name, content := range files {
		part, err := writer.CreateFormFile(name, name+".bin")
		if err != nil {
			t.Fatalf("CreateFormFile(%s) failed: %v", name, err)
		}
		if _, err := io.Copy(part, strings.NewReader(content)); err != nil {
			t.Fatalf("copy failed: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	return &body, writer.FormDataContentType()
}

func allUploads() map[string]string {
	return map[string]string{
		mint.ArtifactAadhaar:     "aadhaar-doc",
		mint.ArtifactVoter:       "voter-doc",
		mint.ArtifactPhoto:       "photo-bytes",
		mint.ArtifactFingerprint: "fingerprint-bytes",
	}
}

func TestHandleMint(t *testing.T) {
	svc := &fakeMintSvc{res: &mint.Result{TxHash: "0xabc", URI: "ipfs://QmMeta", Status: "confirmed"}}
	router := newTestRouter(svc)

	body, contentType := buildMintForm(t,
		map[string]string{"aadhaar_number": "A1234", "voter_number": "V5678"},
		allUploads(),
	)
	req := httptest.NewRequest(http.MethodPost, "/mint", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var res mint.Result
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if res.TxHash != "0xabc" || res.URI != "ipfs://QmMeta" || res.Status != "confirmed" {
		t.Fatalf("unexpected response %+v", res)
	}

	if svc.gotReq.AadhaarNumber != "A1234" || svc.gotReq.VoterNumber != "V5678" {
		t.Errorf("service received %+v", svc.gotReq)
	}
	content, err := io.ReadAll(svc.gotReq.Photo.Content)
	if err != nil {
		t.Fatalf("failed to read photo upload: %v", err)
	}
	if string(content) != "photo-bytes" {
		t.Errorf("photo upload content %q", content)
	}
}

func TestHandleMint_MissingFields(t *testing.T) {
	svc := &fakeMintSvc{}
	router := newTestRouter(svc)

	body, contentType := buildMintForm(t,
		map[string]string{"aadhaar_number": "A1234"},
		allUploads(),
	)
	req := httptest.NewRequest(http.MethodPost, "/mint", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if svc.gotReq != nil {
		t.Error("service must not be called on an invalid request")
	}
}

func TestHandleMint_MissingUpload(t *testing.T) {
	svc := &fakeMintSvc{}
	router := newTestRouter(svc)

	uploads := allUploads()
	delete(uploads, mint.ArtifactPhoto)
	body, contentType := buildMintForm(t,
		map[string]string{"aadhaar_number": "A1234", "voter_number": "V5678"},
		uploads,
	)
	req := httptest.NewRequest(http.MethodPost, "/mint", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var res struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	if !strings.Contains(res.Error, mint.ArtifactPhoto) {
		t.Errorf("error should name the missing upload, got %q", res.Error)
	}
}

func TestHandleMint_DuplicateConflict(t *testing.T) {
	svc := &fakeMintSvc{mintErr: apperrors.ConflictError(mint.ErrDuplicateIdentity, "identity already minted")}
	router := newTestRouter(svc)

	body, contentType := buildMintForm(t,
		map[string]string{"aadhaar_number": "A1234", "voter_number": "V5678"},
		allUploads(),
	)
	req := httptest.NewRequest(http.MethodPost, "/mint", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}

	var res struct {
		Error string `json:"error"`
		Code  int    `json:"code"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	if res.Error != "identity already minted" || res.Code != http.StatusConflict {
		t.Fatalf("unexpected error body %+v", res)
	}
}

func TestHandleMint_InternalErrorDoesNotLeak(t *testing.T) {
	svc := &fakeMintSvc{mintErr: errors.New("pq: connection reset at 10.0.0.3:5432")}
	router := newTestRouter(svc)

	body, contentType := buildMintForm(t,
		map[string]string{"aadhaar_number": "A1234", "voter_number": "V5678"},
		allUploads(),
	)
	req := httptest.NewRequest(http.MethodPost, "/mint", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "10.0.0.3") {
		t.Error("internal error details leaked to the response")
	}
}

func TestHandleHasMinted(t *testing.T) {
	svc := &fakeMintSvc{minted: true}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/hasMinted",
		strings.NewReader(`{"wallet": "0x000000000000000000000000000000000000dEaD"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var res struct {
		HasMinted bool `json:"hasMinted"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !res.HasMinted {
		t.Error("expected hasMinted = true")
	}
	if svc.gotWallet != "0x000000000000000000000000000000000000dEaD" {
		t.Errorf("service received wallet %q", svc.gotWallet)
	}
}

func TestHandleHasMinted_BadBody(t *testing.T) {
	router := newTestRouter(&fakeMintSvc{})

	req := httptest.NewRequest(http.MethodPost, "/hasMinted", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
