package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasher(t *testing.T) {
	tests := []struct {
		name      string
		algorithm HashAlgorithm
		input     string
		want      string
	}{
		{"sha256", SHA256, "abc", "sha256:ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
		{"xxh64", XXH64, "abc", "xxh64:44bc2cf5ad770999"},
		{"xxh64 empty", XXH64, "", "xxh64:ef46db3751d8e999"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHasher(tt.algorithm)
			assert.Equal(t, tt.want, h.HashString(tt.input))
			assert.Equal(t, tt.want, h.Hash([]byte(tt.input)))
		})
	}

	assert.Equal(t, SHA256, DefaultHasher().Algorithm())
	assert.Equal(t, SHA256, NewHasher("").Algorithm())
}

func TestParseHashAlgorithm(t *testing.T) {
	for name, want := range map[string]HashAlgorithm{"": SHA256, "sha256": SHA256, "XXH64": XXH64} {
		got, err := ParseHashAlgorithm(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got)
	}

	_, err := ParseHashAlgorithm("md5")
	assert.Error(t, err)
}

func TestShortHash(t *testing.T) {
	assert.Equal(t, "sha256:ba7816bf", ShortHash("sha256:ba7816bf8f01cfea"))
	assert.Equal(t, "xxh64:44bc2cf5", ShortHash("xxh64:44bc2cf5ad770999"))
	assert.Equal(t, "abc", ShortHash("abc"))
	assert.Equal(t, "01234567", ShortHash("0123456789"))
}
