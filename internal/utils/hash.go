// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"sync"
)

// HashHeader is the HTTP header carrying the hex HMAC-SHA256 of a request body.
const HashHeader = "HashSHA256"

// Hasher computes keyed HMAC-SHA256 digests used to sign request bodies.
// Hash instances are pooled to keep the hot path allocation free.
//
// A nil *Hasher or one built with an empty key is disabled: Sign returns ""
// and Verify accepts everything.
type Hasher struct {
	pool sync.Pool
}

// NewHasher returns a Hasher for hashKey, or nil when hashKey is empty.
//
// Example usage:
//
//	h := utils.NewHasher("my-secret-key")
//	req.Header.Set(utils.HashHeader, h.Sign(body))
func NewHasher(hashKey string) *Hasher {
	if hashKey == "" {
		return nil
	}

	key := []byte(hashKey)
	return &Hasher{pool: sync.Pool{
		New: func() any {
			return hmac.New(sha256.New, key)
		},
	}}
}

// Enabled reports whether the hasher signs and verifies payloads.
func (h *Hasher) Enabled() bool {
	return h != nil
}

// Sum computes the raw HMAC-SHA256 digest of data.
func (h *Hasher) Sum(data []byte) []byte {
	mac := h.pool.Get().(hash.Hash)
	mac.Reset()

	mac.Write(data)
	sum := mac.Sum(nil)

	mac.Reset()
	h.pool.Put(mac)

	return sum
}

// Sign returns the hex-encoded digest of data, or "" for a disabled hasher.
func (h *Hasher) Sign(data []byte) string {
	if !h.Enabled() {
		return ""
	}
	return hex.EncodeToString(h.Sum(data))
}

// Verify reports whether signature is the hex digest of data.
// Comparison is constant-time.
func (h *Hasher) Verify(data []byte, signature string) bool {
	if !h.Enabled() {
		return true
	}

	expected, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	return hmac.Equal(h.Sum(data), expected)
}
