// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package zmqutil_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/zmqutil"
)

func tempDir(t *testing.T) (string, func()) {
	dir, err := ioutil.TempDir("", "zmqutil")
	if nil != err {
		t.Fatalf("temp dir error: %s", err)
	}
	return dir, func() { os.RemoveAll(dir) }
}

func TestMakeKeyPair(t *testing.T) {
	dir, cleanup := tempDir(t)
	defer cleanup()

	public := filepath.Join(dir, "publish.public")
	private := filepath.Join(dir, "publish.private")

	err := zmqutil.MakeKeyPair(public, private)
	assert.Nil(t, err, "make key pair error")

	publicKey, err := zmqutil.ReadPublicKeyFile(public)
	assert.Nil(t, err, "read public error")
	assert.Equal(t, 32, len(publicKey), "public key length")

	privateKey, err := zmqutil.ReadPrivateKeyFile(private)
	assert.Nil(t, err, "read private error")
	assert.Equal(t, 32, len(privateKey), "private key length")

	// the wrong kind of file
	_, err = zmqutil.ReadPublicKeyFile(private)
	assert.Equal(t, fault.InvalidPublicKeyFile, err, "private read as public")
	_, err = zmqutil.ReadPrivateKeyFile(public)
	assert.Equal(t, fault.InvalidPrivateKeyFile, err, "public read as private")

	err = zmqutil.MakeKeyPair(public, filepath.Join(dir, "other"))
	assert.Equal(t, fault.KeyFileAlreadyExists, err, "public key overwritten")
	err = zmqutil.MakeKeyPair(filepath.Join(dir, "other"), private)
	assert.Equal(t, fault.KeyFileAlreadyExists, err, "private key overwritten")
}

func TestParseKey(t *testing.T) {
	key := "0102030405060708091011121314151617181920212223242526272829303132"

	data, private, err := zmqutil.ParseKey("  PUBLIC:" + key + "\n")
	assert.Nil(t, err, "parse error")
	assert.False(t, private, "public parsed as private")
	assert.Equal(t, byte(0x32), data[31], "wrong last byte")

	_, private, err = zmqutil.ParseKey("PRIVATE:" + key)
	assert.Nil(t, err, "parse error")
	assert.True(t, private, "private parsed as public")

	_, _, err = zmqutil.ParseKey("PUBLIC:" + key[2:])
	assert.Equal(t, fault.InvalidPublicKeyFile, err, "short public key")
	_, _, err = zmqutil.ParseKey("PRIVATE:" + key + "00")
	assert.Equal(t, fault.InvalidPrivateKeyFile, err, "long private key")
	_, _, err = zmqutil.ParseKey(key)
	assert.Equal(t, fault.InvalidPublicKeyFile, err, "untagged key")
	_, _, err = zmqutil.ParseKey("PUBLIC:xyz")
	assert.NotNil(t, err, "bad hex accepted")
}
