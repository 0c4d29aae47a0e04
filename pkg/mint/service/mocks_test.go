package service

import (
	"context"
	"io"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/veridlabs/biomint-middleware/pkg/ethereum"
)

type fakeStore struct {
	existsResult bool
	existsErr    error
	existsCalls  int

	recordErr   error
	recordCalls int
	recorded    [][3]string
}

func (f *fakeStore) Exists(_ context.Context, identityHash, photoHash, fingerprintHash string) (bool, error) {
	f.existsCalls++
	return f.existsResult, f.existsErr
}

func (f *fakeStore) Record(_ context.Context, identityHash, photoHash, fingerprintHash string) error {
	f.recordCalls++
	f.recorded = append(f.recorded, [3]string{identityHash, photoHash, fingerprintHash})
	return f.recordErr
}

type fakePinner struct {
	mu       sync.Mutex
	failOn   string
	failErr  error
	pinned   []string
	jsonDocs []any
}

func (f *fakePinner) PinFile(_ context.Context, name string, content io.Reader) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if name == f.failOn {
		return "", f.failErr
	}
	f.pinned = append(f.pinned, name)
	return "Qm" + name, nil
}

func (f *fakePinner) PinJSON(_ context.Context, name string, document any) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if name == f.failOn {
		return "", f.failErr
	}
	f.pinned = append(f.pinned, name)
	f.jsonDocs = append(f.jsonDocs, document)
	return "Qm" + name, nil
}

func (f *fakePinner) pinCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pinned)
}

type fakeLedger struct {
	receipt *ethereum.Receipt
	mintErr error
	mintURI string

	hasMinted    bool
	hasMintedErr error
	queried      []common.Address
}

func (f *fakeLedger) MintAttestation(_ context.Context, uri string) (*ethereum.Receipt, error) {
	f.mintURI = uri
	if f.mintErr != nil {
		return nil, f.mintErr
	}
	return f.receipt, nil
}

func (f *fakeLedger) HasMinted(_ context.Context, wallet common.Address) (bool, error) {
	f.queried = append(f.queried, wallet)
	return f.hasMinted, f.hasMintedErr
}
