// Copyright 2025 The Athenaeum Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package gpg manages the asymmetric signing identity for a run: loading an
// externally supplied armored secret key, or generating a fresh self-signed
// key pair, and producing armored detached signatures.
package gpg

import (
	"bytes"
	"crypto"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/openpgp"
	"golang.org/x/crypto/openpgp/armor"
	"golang.org/x/crypto/openpgp/packet"
)

var (
	// ErrKeyLoad indicates externally supplied key material could not be
	// parsed or carries no usable private key.
	ErrKeyLoad = errors.New("failed to load signing key")

	// ErrKeyGen indicates key pair generation or self-signing failed.
	ErrKeyGen = errors.New("failed to generate signing key")

	// ErrSign indicates signing failed. An unsigned manifest is not a valid
	// terminal artifact, so callers must treat this as fatal.
	ErrSign = errors.New("failed to sign data")
)

// Key generation parameters, matching the manifest's compatibility
// expectations: RSA 2048 with SHA-256 signatures.
var keyConfig = &packet.Config{
	RSABits:     2048,
	DefaultHash: crypto.SHA256,
}

// Identity is a loaded or generated signing identity. It owns the private
// signing capability for exactly one run.
type Identity struct {
	entity *openpgp.Entity
}

// LoadIdentity parses armored secret-key material from path and returns the
// identity of the first key that carries a private key.
func LoadIdentity(path string) (*Identity, error) {
	keyData, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrKeyLoad, path, err)
	}

	entities, err := openpgp.ReadArmoredKeyRing(bytes.NewReader(keyData))
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrKeyLoad, path, err)
	}

	for _, entity := range entities {
		if entity.PrivateKey == nil {
			continue
		}
		if entity.PrivateKey.Encrypted {
			return nil, fmt.Errorf("%w: %s: private key is passphrase-protected", ErrKeyLoad, path)
		}
		return &Identity{entity: entity}, nil
	}
	return nil, fmt.Errorf("%w: %s contains no private key", ErrKeyLoad, path)
}

// GenerateIdentity creates a fresh RSA key pair bound to the given identity
// and self-signs it. Each call produces a different key.
func GenerateIdentity(name, comment, email string) (*Identity, error) {
	entity, err := openpgp.NewEntity(name, comment, email, keyConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyGen, err)
	}

	for _, id := range entity.Identities {
		if err := id.SelfSignature.SignUserId(id.UserId.Id, entity.PrimaryKey, entity.PrivateKey, keyConfig); err != nil {
			return nil, fmt.Errorf("%w: self-sign: %v", ErrKeyGen, err)
		}
	}

	return &Identity{entity: entity}, nil
}

// GenerateHostIdentity generates an identity bound to a synthetic user made
// from the tool name and the local hostname. This is the unattended-run
// default when no key is supplied.
func GenerateHostIdentity() (*Identity, error) {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	return GenerateIdentity("Athenaeum", "Directory Sealer", fmt.Sprintf("athenaeum@%s", hostname))
}

// KeyID returns the primary key's id formatted as 0x-prefixed hex.
func (id *Identity) KeyID() string {
	return fmt.Sprintf("0x%X", id.entity.PrimaryKey.KeyId)
}

// ArmoredPublicKey exports the public half of the identity as an armored
// block suitable for publishing next to signed manifests.
func (id *Identity) ArmoredPublicKey() (string, error) {
	var buf bytes.Buffer
	w, err := armor.Encode(&buf, openpgp.PublicKeyType, nil)
	if err != nil {
		return "", err
	}
	if err := id.entity.Serialize(w); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// SavePrivateKey writes the armored private key to path with owner-only
// permissions, so a generated identity can be re-supplied to later runs.
func (id *Identity) SavePrivateKey(path string) error {
	var buf bytes.Buffer
	w, err := armor.Encode(&buf, openpgp.PrivateKeyType, nil)
	if err != nil {
		return err
	}
	if err := id.entity.SerializePrivate(w, keyConfig); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o600)
}

// Sign produces an armored detached signature over data.
func (id *Identity) Sign(data []byte) (string, error) {
	var buf bytes.Buffer
	if err := openpgp.ArmoredDetachSign(&buf, id.entity, bytes.NewReader(data), keyConfig); err != nil {
		return "", fmt.Errorf("%w: %v", ErrSign, err)
	}
	return buf.String(), nil
}

// VerifyDetached checks an armored detached signature over data against an
// armored public key.
func VerifyDetached(armoredPublicKey string, data []byte, armoredSignature string) error {
	keyring, err := openpgp.ReadArmoredKeyRing(strings.NewReader(armoredPublicKey))
	if err != nil {
		return fmt.Errorf("decode public key: %w", err)
	}
	_, err = openpgp.CheckArmoredDetachedSignature(keyring, bytes.NewReader(data), strings.NewReader(armoredSignature))
	if err != nil {
		return fmt.Errorf("signature verification failed: %w", err)
	}
	return nil
}
