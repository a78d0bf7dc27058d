package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/dom/crowd-translate/internal/service"
)

// FakeVerifier accepts only ID tokens registered with it.
type FakeVerifier struct {
	mu     sync.Mutex
	tokens map[string]service.IdentityClaims
}

func NewFakeVerifier() *FakeVerifier {
	return &FakeVerifier{tokens: make(map[string]service.IdentityClaims)}
}

// Register makes idToken verify to claims.
func (f *FakeVerifier) Register(idToken string, claims service.IdentityClaims) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[idToken] = claims
}

func (f *FakeVerifier) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens = make(map[string]service.IdentityClaims)
}

func (f *FakeVerifier) Verify(ctx context.Context, idToken string) (*service.IdentityClaims, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	claims, ok := f.tokens[idToken]
	if !ok {
		return nil, fmt.Errorf("%w: unknown test token", service.ErrInvalidCredential)
	}
	return &claims, nil
}

// FakeTranslator echoes the text tagged with the target language, or fails
// with Err when set.
type FakeTranslator struct {
	mu    sync.Mutex
	Err   error
	calls int
}

func NewFakeTranslator() *FakeTranslator {
	return &FakeTranslator{}
}

func (f *FakeTranslator) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	if f.Err != nil {
		return "", f.Err
	}
	return fmt.Sprintf("[%s] %s", targetLanguage, text), nil
}

// SetErr makes every later call fail with err.
func (f *FakeTranslator) SetErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Err = err
}

func (f *FakeTranslator) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *FakeTranslator) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Err = nil
	f.calls = 0
}
