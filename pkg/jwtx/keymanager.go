package jwtx

import (
	"fmt"
	"math/rand/v2"

	"github.com/heymumma/heymumma/pkg/cryptox"
)

// KeyManager owns the in-memory signing keys for one process. Keys are never
// persisted, so every restart invalidates outstanding sessions.
type KeyManager struct {
	Verifier *Verifier
	KeySet   *KeySet

	signers []*Signer
}

// KeyManagerOptions configures NewEphemeralKeyManager.
type KeyManagerOptions struct {
	Issuer string

	// NumKeys defaults to 2 and is capped at 10.
	NumKeys int
}

// NewEphemeralKeyManager generates NumKeys Ed25519 keys with random kids.
func NewEphemeralKeyManager(opts KeyManagerOptions) (*KeyManager, error) {
	if opts.Issuer == "" {
		return nil, fmt.Errorf("jwtx: Issuer is required")
	}

	n := opts.NumKeys
	if n <= 0 {
		n = 2
	}
	n = min(n, 10)

	keyset := NewKeySet()
	signers := make([]*Signer, 0, n)
	for i := range n {
		token, err := cryptox.GenerateToken(cryptox.TokenSize128)
		if err != nil {
			return nil, fmt.Errorf("jwtx: key id: %w", err)
		}
		pemBytes, err := cryptox.GenerateEd25519Key()
		if err != nil {
			return nil, fmt.Errorf("jwtx: key %d: %w", i+1, err)
		}
		signer, err := NewSigner("heymumma-"+token, pemBytes)
		if err != nil {
			return nil, err
		}
		if err := keyset.AddJWK(signer.PublicJWK()); err != nil {
			return nil, err
		}
		signers = append(signers, signer)
	}

	return &KeyManager{
		Verifier: NewVerifier(keyset, opts.Issuer),
		KeySet:   keyset,
		signers:  signers,
	}, nil
}

// Signer picks one of the signing keys at random.
func (km *KeyManager) Signer() *Signer {
	return km.signers[rand.IntN(len(km.signers))]
}

func (km *KeyManager) IsReady() bool {
	return km.KeySet.IsReady()
}
