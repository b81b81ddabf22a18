// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ledgerd/util"
)

func TestEnsureAbsolute(t *testing.T) {
	assert.Equal(t, "/data/ledger.leveldb", util.EnsureAbsolute("/data", "ledger.leveldb"), "relative not joined")
	assert.Equal(t, "/var/run/ledgerd.pid", util.EnsureAbsolute("/data", "/var/run/../run/ledgerd.pid"), "absolute not cleaned")
	assert.Equal(t, "/data/log", util.EnsureAbsolute("/data/", "./log/"), "relative not cleaned")
}

func TestIsPlainName(t *testing.T) {
	assert.True(t, util.IsPlainName("testing.leveldb"), "plain name rejected")
	assert.True(t, util.IsPlainName("./ledgerd.log"), "dot prefix rejected")
	assert.False(t, util.IsPlainName("db/testing.leveldb"), "path accepted")
	assert.False(t, util.IsPlainName("/tmp/ledgerd.log"), "absolute path accepted")
	assert.False(t, util.IsPlainName(""), "blank accepted")
	assert.False(t, util.IsPlainName("."), "dot accepted")
}

func TestIsDirectory(t *testing.T) {
	dir, err := ioutil.TempDir("", "ledgerd-paths-")
	if nil != err {
		t.Fatalf("temp dir error: %s", err)
	}
	defer os.RemoveAll(dir)

	file := filepath.Join(dir, "tokens.txt")
	if err := ioutil.WriteFile(file, []byte("LDG\n"), 0600); nil != err {
		t.Fatalf("write error: %s", err)
	}

	isDir, err := util.IsDirectory(dir)
	assert.Nil(t, err, "directory stat error")
	assert.True(t, isDir, "directory not detected")

	isDir, err = util.IsDirectory(file)
	assert.Nil(t, err, "file stat error")
	assert.False(t, isDir, "file is a directory")
	assert.True(t, util.EnsureFileExists(file), "file not found")

	_, err = util.IsDirectory(filepath.Join(dir, "missing"))
	assert.True(t, os.IsNotExist(err), "wrong error: %v", err)
	assert.False(t, util.EnsureFileExists(filepath.Join(dir, "missing")), "missing file found")
}
