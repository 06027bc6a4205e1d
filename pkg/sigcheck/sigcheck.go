// Package sigcheck signs and verifies files with RSA keys stored in PEM files.
//
// The PSS scheme uses SHA-256 for the digest and MGF1 with a fixed salt
// length of 32 bytes, matching
//
//	openssl dgst -sha256 -sigopt rsa_padding_mode:pss -sigopt rsa_pss_saltlen:32
package sigcheck

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
)

// Scheme selects the RSA signature padding.
type Scheme string

const (
	// SchemePSS is RSASSA-PSS with SHA-256 and a 32 byte salt.
	SchemePSS Scheme = "pss"
	// SchemePKCS1v15 is RSASSA-PKCS1-v1_5 with SHA-256.
	SchemePKCS1v15 Scheme = "pkcs1v15"
)

// SaltLength is the PSS salt length in bytes.
const SaltLength = 32

var (
	// ErrVerification indicates a signature that does not match the message.
	ErrVerification = errors.New("signature verification failed")
	// ErrUnsupportedKey indicates a PEM block that holds no RSA key.
	ErrUnsupportedKey = errors.New("unsupported key")
	// ErrUnknownScheme indicates a Scheme value other than pss or pkcs1v15.
	ErrUnknownScheme = errors.New("unknown signature scheme")
)

// ParseScheme converts a scheme name to a Scheme.
func ParseScheme(s string) (Scheme, error) {
	switch Scheme(s) {
	case SchemePSS, SchemePKCS1v15:
		return Scheme(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownScheme, s)
}

// LoadPrivateKey reads an RSA private key in PKCS#1 or PKCS#8 PEM form.
func LoadPrivateKey(path string) (*rsa.PrivateKey, error) {
	block, err := readPEM(path)
	if err != nil {
		return nil, err
	}
	if key, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return key, nil
	}
	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnsupportedKey, path, err)
	}
	key, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("%w: %s holds %T", ErrUnsupportedKey, path, parsed)
	}
	return key, nil
}

// LoadPublicKey reads an RSA public key in PKIX ("PUBLIC KEY") or PKCS#1
// ("RSA PUBLIC KEY") PEM form.
func LoadPublicKey(path string) (*rsa.PublicKey, error) {
	block, err := readPEM(path)
	if err != nil {
		return nil, err
	}
	if key, err := x509.ParsePKCS1PublicKey(block.Bytes); err == nil {
		return key, nil
	}
	parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnsupportedKey, path, err)
	}
	key, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: %s holds %T", ErrUnsupportedKey, path, parsed)
	}
	return key, nil
}

func readPEM(path string) (*pem.Block, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read key: %w", err)
	}
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("%w: %s is not PEM encoded", ErrUnsupportedKey, path)
	}
	return block, nil
}

// Sign signs the SHA-256 digest of msg.
func Sign(key *rsa.PrivateKey, msg []byte, scheme Scheme) ([]byte, error) {
	digest := sha256.Sum256(msg)
	switch scheme {
	case SchemePSS:
		return rsa.SignPSS(rand.Reader, key, crypto.SHA256, digest[:], &rsa.PSSOptions{SaltLength: SaltLength})
	case SchemePKCS1v15:
		return rsa.SignPKCS1v15(rand.Reader, key, crypto.SHA256, digest[:])
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScheme, scheme)
}

// Verify checks sig against the SHA-256 digest of msg. A mismatch is
// reported as ErrVerification.
func Verify(pub *rsa.PublicKey, msg, sig []byte, scheme Scheme) error {
	digest := sha256.Sum256(msg)
	var err error
	switch scheme {
	case SchemePSS:
		err = rsa.VerifyPSS(pub, crypto.SHA256, digest[:], sig, &rsa.PSSOptions{SaltLength: SaltLength})
	case SchemePKCS1v15:
		err = rsa.VerifyPKCS1v15(pub, crypto.SHA256, digest[:], sig)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownScheme, scheme)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrVerification, err)
	}
	return nil
}

// SignFile signs the contents of msgPath with the key at keyPath and
// writes the raw signature to sigPath.
func SignFile(keyPath, msgPath, sigPath string, scheme Scheme) error {
	key, err := LoadPrivateKey(keyPath)
	if err != nil {
		return err
	}
	msg, err := os.ReadFile(msgPath)
	if err != nil {
		return fmt.Errorf("failed to read message: %w", err)
	}
	sig, err := Sign(key, msg, scheme)
	if err != nil {
		return err
	}
	return os.WriteFile(sigPath, sig, 0644)
}

// VerifyFile verifies the raw signature at sigPath over the contents of
// msgPath with the public key at pubPath.
func VerifyFile(pubPath, msgPath, sigPath string, scheme Scheme) error {
	pub, err := LoadPublicKey(pubPath)
	if err != nil {
		return err
	}
	msg, err := os.ReadFile(msgPath)
	if err != nil {
		return fmt.Errorf("failed to read message: %w", err)
	}
	sig, err := os.ReadFile(sigPath)
	if err != nil {
		return fmt.Errorf("failed to read signature: %w", err)
	}
	return Verify(pub, msg, sig, scheme)
}
