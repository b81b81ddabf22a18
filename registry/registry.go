// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package registry - list of tradable token identifiers
//
// holds the token list and a cursor that starts at zero; nothing else
// reads or moves the cursor yet and the ledger does not use this
// package
package registry

import (
	"bufio"
	"os"
	"strings"
	"sync"

	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/logger"
)

// fixed limits of the token list
const (
	MaximumTokens     = 8
	MaximumTokenBytes = 32
)

// Registry - token identifiers plus a cursor
type Registry struct {
	sync.RWMutex
	log         *logger.L
	tokens      []string
	cursor      uint64
	initialised bool
}

// New - an empty, uninitialised registry
func New() *Registry {
	return &Registry{
		log: logger.New("registry"),
	}
}

// Initialise - replace the token list and reset the cursor to zero
func (r *Registry) Initialise(tokens []string) error {
	if len(tokens) > MaximumTokens {
		return fault.TooManyTokens
	}
	for _, token := range tokens {
		if "" == token {
			return fault.EmptyToken
		}
		if len(token) > MaximumTokenBytes {
			return fault.TokenTooLong
		}
	}

	list := make([]string, len(tokens))
	copy(list, tokens)

	r.Lock()
	r.tokens = list
	r.cursor = 0
	r.initialised = true
	r.Unlock()

	r.log.Infof("initialised with %d token(s)", len(list))
	return nil
}

// Tokens - copy of the token list
func (r *Registry) Tokens() []string {
	r.RLock()
	defer r.RUnlock()
	list := make([]string, len(r.tokens))
	copy(list, r.tokens)
	return list
}

// Cursor - current cursor position
func (r *Registry) Cursor() uint64 {
	r.RLock()
	defer r.RUnlock()
	return r.cursor
}

// IsInitialised - true after a successful Initialise
func (r *Registry) IsInitialised() bool {
	r.RLock()
	defer r.RUnlock()
	return r.initialised
}

// ReadFile - one token per line, blank lines and # comments skipped
func ReadFile(name string) ([]string, error) {
	f, err := os.Open(name)
	if nil != err {
		return nil, err
	}
	defer f.Close()

	tokens := make([]string, 0, MaximumTokens)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if "" == line {
			continue
		}
		tokens = append(tokens, line)
	}
	return tokens, scanner.Err()
}

// LoadFile - initialise from a token file
//
// on error the previous list is kept
func (r *Registry) LoadFile(name string) error {
	tokens, err := ReadFile(name)
	if nil != err {
		r.log.Errorf("read: %q  error: %s", name, err)
		return err
	}
	err = r.Initialise(tokens)
	if nil != err {
		r.log.Errorf("load: %q  error: %s", name, err)
	}
	return err
}
