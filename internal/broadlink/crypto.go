package broadlink

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

// Well-known Broadlink initial key material, used until Auth installs the
// per-session key. The IV is fixed for the life of a session.
var (
	initialKey = []byte{
		0x09, 0x76, 0x28, 0x34, 0x3f, 0xe9, 0x9e, 0x23,
		0x76, 0x5c, 0x15, 0x13, 0xac, 0xcf, 0x8b, 0x02,
	}
	commonIV = []byte{
		0x56, 0x2e, 0x17, 0x99, 0x6d, 0x09, 0x3d, 0x28,
		0xdd, 0xb3, 0xba, 0x69, 0x5a, 0x2e, 0x6f, 0x58,
	}
)

// encryptCBC encrypts data with AES-128-CBC, zero-padding to the block size
// first (device convention; the inner protocol carries its own length).
func encryptCBC(key, data []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	padded := data
	if rem := len(data) % aes.BlockSize; rem != 0 {
		padded = make([]byte, len(data)+aes.BlockSize-rem)
		copy(padded, data)
	}

	out := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, commonIV).CryptBlocks(out, padded)
	return out, nil
}

// decryptCBC decrypts data with AES-128-CBC. Padding is left in place; the
// caller slices by the length its own protocol declares.
func decryptCBC(key, data []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	if len(data)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("ciphertext length %d is not a multiple of the block size", len(data))
	}

	out := make([]byte, len(data))
	cipher.NewCBCDecrypter(block, commonIV).CryptBlocks(out, data)
	return out, nil
}
