package kvstore

import (
	"errors"
	"strings"
)

var (
	ErrKeyNotFound = errors.New("key not found")
	ErrKeyEmpty    = errors.New("key is empty")
	ErrPrefixEmpty = errors.New("prefix is empty")
	ErrStoreClosed = errors.New("store is closed")
)

// namespace joins an optional store prefix onto keys with "/".
type namespace string

func (n namespace) fullKey(k string) (string, error) {
	if k == "" {
		return "", ErrKeyEmpty
	}
	if n != "" {
		return string(n) + "/" + k, nil
	}
	return k, nil
}

func (n namespace) searchPrefix(prefix string) (string, error) {
	if prefix == "" {
		return "", ErrPrefixEmpty
	}
	if n != "" {
		return string(n) + "/" + prefix, nil
	}
	return prefix, nil
}

// trim strips the store prefix from a native key.
func (n namespace) trim(k string) string {
	if n == "" {
		return k
	}
	return strings.TrimPrefix(k, string(n)+"/")
}
