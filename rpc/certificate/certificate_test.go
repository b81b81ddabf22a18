// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package certificate_test

import (
	"crypto/tls"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/fixtures"
	"github.com/bitmark-inc/ledgerd/rpc/certificate"
	"github.com/bitmark-inc/logger"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

func TestGet(t *testing.T) {
	cer, key := fixtures.Certificate(t)

	tlsConfig, fingerprint, err := certificate.Get(
		logger.New(fixtures.LogCategory),
		"test",
		cer,
		key,
	)
	assert.Nil(t, err, "wrong Get")

	pair, _ := tls.X509KeyPair([]byte(cer), []byte(key))

	assert.Equal(t, sha3.Sum256(pair.Certificate[0]), fingerprint, "wrong fingerprint")
	assert.Equal(t, pair, tlsConfig.Certificates[0], "wrong config")

	_, _, err = certificate.Get(logger.New(fixtures.LogCategory), "test", key, cer)
	assert.NotNil(t, err, "swapped pair accepted")
}

func TestMakeSelfSigned(t *testing.T) {
	dir, err := ioutil.TempDir("", "certificate")
	if nil != err {
		t.Fatalf("temp dir error: %s", err)
	}
	defer os.RemoveAll(dir)

	crt := filepath.Join(dir, "rpc.crt")
	key := filepath.Join(dir, "rpc.key")

	err = certificate.MakeSelfSigned("test", crt, key, false, []string{"127.0.0.1"})
	assert.Nil(t, err, "make certificate error")

	_, fingerprint, err := certificate.GetFiles(logger.New(fixtures.LogCategory), "test", crt, key)
	assert.Nil(t, err, "read files error")
	assert.NotEqual(t, [32]byte{}, fingerprint, "empty fingerprint")

	err = certificate.MakeSelfSigned("test", crt, filepath.Join(dir, "other.key"), false, nil)
	assert.Equal(t, fault.CertificateFileAlreadyExists, err, "certificate overwritten")

	err = certificate.MakeSelfSigned("test", filepath.Join(dir, "other.crt"), key, false, nil)
	assert.Equal(t, fault.KeyFileAlreadyExists, err, "key overwritten")

	_, _, err = certificate.GetFiles(logger.New(fixtures.LogCategory), "test", crt+".missing", key)
	assert.NotNil(t, err, "missing certificate accepted")
}
