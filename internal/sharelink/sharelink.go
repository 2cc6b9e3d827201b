// Package sharelink encodes playlists into compact URL-safe tokens and back.
//
// A token is the JSON array of OutputParams, brotli-compressed and encoded
// with unpadded URL-safe base64. The literal query "default" stands for the
// built-in default playlist.
package sharelink

import (
	"bytes"
	_ "embed"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/brotli"

	"github.com/llehouerou/genwaves/internal/params"
)

// DefaultQuery is the sentinel query that expands to the default playlist.
const DefaultQuery = "default"

// maxDecompressed bounds the decoded payload size.
const maxDecompressed = 4 << 20

// ErrTooLarge is returned when a token decompresses past maxDecompressed.
var ErrTooLarge = errors.New("sharelink: payload too large")

//go:embed default_playlist.json
var defaultPlaylistJSON []byte

// DefaultToken is the compressed form of the built-in default playlist.
var DefaultToken = mustCompress(defaultPlaylistJSON)

// Encode compresses list into a share token.
func Encode(list []params.OutputParams) (string, error) {
	data, err := params.MarshalList(list)
	if err != nil {
		return "", fmt.Errorf("sharelink: marshal: %w", err)
	}
	return Compress(data)
}

// Decode expands a query (a token or DefaultQuery) into its playlist.
func Decode(query string) ([]params.OutputParams, error) {
	data, err := Decompress(Expand(query))
	if err != nil {
		return nil, err
	}
	list, err := params.ParseList(data)
	if err != nil {
		return nil, fmt.Errorf("sharelink: %w", err)
	}
	return list, nil
}

// Expand replaces the default sentinel with the default token.
func Expand(query string) string {
	if query == DefaultQuery {
		return DefaultToken
	}
	return query
}

// Compress brotli-compresses data and returns it as URL-safe base64.
func Compress(data []byte) (string, error) {
	var buf bytes.Buffer
	w := brotli.NewWriterLevel(&buf, brotli.BestCompression)
	if _, err := w.Write(data); err != nil {
		return "", fmt.Errorf("sharelink: compress: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("sharelink: compress: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf.Bytes()), nil
}

// Decompress reverses Compress.
func Decompress(token string) ([]byte, error) {
	token = strings.TrimRight(strings.TrimSpace(token), "=")
	if token == "" {
		return nil, errors.New("sharelink: empty token")
	}
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("sharelink: decode base64: %w", err)
	}

	r := brotli.NewReader(bytes.NewReader(raw))
	data, err := io.ReadAll(io.LimitReader(r, maxDecompressed+1))
	if err != nil {
		return nil, fmt.Errorf("sharelink: decompress: %w", err)
	}
	if len(data) > maxDecompressed {
		return nil, ErrTooLarge
	}
	return data, nil
}

// URL returns base with the share token of list as its query.
func URL(base string, list []params.OutputParams) (string, error) {
	token, err := Encode(list)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(base, "?") + "?" + token, nil
}

func mustCompress(data []byte) string {
	token, err := Compress(data)
	if err != nil {
		panic(err)
	}
	return token
}
