package cookie

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"slices"
	"strings"
)

const minSecretLength = 32

var encoding = base64.RawURLEncoding

// keyring holds the secrets; index 0 is the active one.
type keyring struct {
	macKeys [][]byte
	aeads   []cipher.AEAD
}

func newKeyring(secrets []string) (*keyring, error) {
	secrets = slices.DeleteFunc(slices.Clone(secrets), func(s string) bool { return s == "" })
	if len(secrets) == 0 {
		return nil, ErrNoSecret
	}

	k := &keyring{}
	for i, s := range secrets {
		if len(s) < minSecretLength {
			return nil, fmt.Errorf("%w: secret %d has %d chars, need at least %d", ErrSecretTooShort, i, len(s), minSecretLength)
		}
		block, err := aes.NewCipher([]byte(s[:32]))
		if err != nil {
			return nil, err
		}
		aead, err := cipher.NewGCM(block)
		if err != nil {
			return nil, err
		}
		k.macKeys = append(k.macKeys, []byte(s))
		k.aeads = append(k.aeads, aead)
	}
	return k, nil
}

// sign returns "<value>.<mac>", both base64url encoded.
func (k *keyring) sign(value string) string {
	return encoding.EncodeToString([]byte(value)) + "." + encoding.EncodeToString(mac(k.macKeys[0], []byte(value)))
}

func (k *keyring) verify(signed string) (string, error) {
	encValue, encSig, ok := strings.Cut(signed, ".")
	if !ok {
		return "", ErrInvalidFormat
	}
	value, err := encoding.DecodeString(encValue)
	if err != nil {
		return "", ErrInvalidFormat
	}
	sig, err := encoding.DecodeString(encSig)
	if err != nil {
		return "", ErrInvalidFormat
	}

	for _, key := range k.macKeys {
		if hmac.Equal(sig, mac(key, value)) {
			return string(value), nil
		}
	}
	return "", ErrInvalidSignature
}

// seal encrypts value with a random nonce prepended to the ciphertext.
func (k *keyring) seal(value string) (string, error) {
	aead := k.aeads[0]
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	return encoding.EncodeToString(aead.Seal(nonce, nonce, []byte(value), nil)), nil
}

func (k *keyring) open(sealed string) (string, error) {
	data, err := encoding.DecodeString(sealed)
	if err != nil {
		return "", ErrInvalidFormat
	}
	for _, aead := range k.aeads {
		if len(data) < aead.NonceSize() {
			return "", ErrInvalidFormat
		}
		nonce, ciphertext := data[:aead.NonceSize()], data[aead.NonceSize():]
		if plain, err := aead.Open(nil, nonce, ciphertext, nil); err == nil {
			return string(plain), nil
		}
	}
	return "", ErrDecryptionFailed
}

func mac(key, value []byte) []byte {
	h := hmac.New(sha256.New, key)
	h.Write(value)
	return h.Sum(nil)
}
