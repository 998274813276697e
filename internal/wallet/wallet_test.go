package wallet

import (
	"crypto/ed25519"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestNewWalletFromPrivateKey(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	w, err := NewWalletFromPrivateKey(base58.Encode(priv))
	require.NoError(t, err)
	assert.Equal(t, base58.Encode(pub), w.PublicKeyString())
}

func TestNewWalletFromPrivateKeyRejectsBadInput(t *testing.T) {
	_, err := NewWalletFromPrivateKey("not-base58-0OIl")
	assert.Error(t, err)

	_, err = NewWalletFromPrivateKey(base58.Encode([]byte("too short")))
	assert.Error(t, err)
}

func TestNewWalletFromMnemonicIsDeterministic(t *testing.T) {
	w1, err := NewWalletFromMnemonic(testMnemonic)
	require.NoError(t, err)
	w2, err := NewWalletFromMnemonic(testMnemonic)
	require.NoError(t, err)

	assert.Equal(t, w1.PublicKeyString(), w2.PublicKeyString())
}

func TestNewWalletFromMnemonicRejectsInvalidPhrase(t *testing.T) {
	_, err := NewWalletFromMnemonic("definitely not a valid phrase")
	assert.Error(t, err)
}

func TestSignProducesVerifiableSignature(t *testing.T) {
	w, err := NewWalletFromMnemonic(testMnemonic)
	require.NoError(t, err)

	message := []byte(`{"message":"Sign-in to Rugcheck.xyz"}`)
	sig, err := w.Sign(message)
	require.NoError(t, err)
	require.Len(t, sig, ed25519.SignatureSize)

	pub, err := base58.Decode(w.PublicKeyString())
	require.NoError(t, err)
	assert.True(t, ed25519.Verify(ed25519.PublicKey(pub), message, sig))
}
