// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package zmqutil

import (
	"crypto/rand"
	"time"

	zmq "github.com/pebbe/zmq4"

	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/util"
)

const (
	publicKeySize  = 32
	privateKeySize = 32
	identifierSize = 32
)

// Client - subscriber connection to a single publisher
type Client struct {
	topic           string
	publicKey       []byte
	privateKey      []byte
	serverPublicKey []byte
	address         string
	v6              bool
	socket          *zmq.Socket
	timeout         time.Duration
}

// NewClient - create a SUB client receiving messages that start with topic
//
// an empty topic receives everything, nil keys leave key choice to
// Connect which makes a throwaway pair when the server uses CURVE
func NewClient(topic string, privateKey []byte, publicKey []byte, timeout time.Duration) (*Client, error) {

	client := &Client{
		topic:   topic,
		timeout: timeout,
	}

	if nil == privateKey && nil == publicKey {
		return client, nil
	}

	if len(publicKey) != publicKeySize {
		return nil, fault.InvalidPublicKeyFile
	}
	if len(privateKey) != privateKeySize {
		return nil, fault.InvalidPrivateKeyFile
	}

	client.publicKey = append([]byte{}, publicKey...)
	client.privateKey = append([]byte{}, privateKey...)
	return client, nil
}

// ephemeral CURVE pair for a client that was given no keys
func (client *Client) ensureKeys() error {
	if nil != client.privateKey {
		return nil
	}
	public, private, err := zmq.NewCurveKeypair()
	if nil != err {
		return err
	}
	client.publicKey = []byte(zmq.Z85decode(public))
	client.privateKey = []byte(zmq.Z85decode(private))
	return nil
}

// socket options in the order they must be applied
func (client *Client) options(socket *zmq.Socket, identifier []byte) []func() error {
	options := []func() error{}

	if nil != client.serverPublicKey {
		options = append(options,
			func() error { return socket.SetCurveServer(0) },
			func() error { return socket.SetCurvePublickey(string(client.publicKey)) },
			func() error { return socket.SetCurveSecretkey(string(client.privateKey)) },
			func() error { return socket.SetCurveServerkey(string(client.serverPublicKey)) },
		)
	}

	options = append(options,
		func() error { return socket.SetIdentity(string(identifier)) },
		func() error { return socket.SetLinger(0) },
		func() error { return socket.SetSubscribe(client.topic) },
		func() error { return optional(socket.SetHeartbeatIvl(heartbeatInterval)) },
		func() error { return optional(socket.SetHeartbeatTimeout(heartbeatTimeout)) },
		func() error { return optional(socket.SetHeartbeatTtl(heartbeatTTL)) },
		func() error { return socket.SetIpv6(client.v6) },
	)

	// zero => do not set timeout
	if 0 != client.timeout {
		options = append(options,
			func() error { return socket.SetRcvtimeo(client.timeout) },
		)
	}
	return options
}

// heartbeats need libzmq 4.2
func optional(err error) error {
	if zmq.ErrorNotImplemented42 == err {
		return nil
	}
	return err
}

// create the socket and connect it to the current address
func (client *Client) openSocket() error {

	socket, err := zmq.NewSocket(zmq.SUB)
	if nil != err {
		return err
	}

	identifier := make([]byte, identifierSize)
	if _, err := rand.Read(identifier); nil != err {
		socket.Close()
		return err
	}

	for _, set := range client.options(socket, identifier) {
		if err := set(); nil != err {
			socket.Close()
			return err
		}
	}

	if err := socket.Connect(client.address); nil != err {
		socket.Close()
		return err
	}

	client.socket = socket
	return nil
}

// destroy the socket, the address is kept for a later reconnect
func (client *Client) closeSocket() error {

	if nil == client.socket {
		return nil
	}

	if "" != client.address {
		client.socket.Disconnect(client.address)
	}

	err := client.socket.Close()
	client.socket = nil
	return err
}

// Connect - drop any previous publisher and subscribe to conn
//
// a nil server key gives a plain connection
func (client *Client) Connect(conn *util.Connection, serverPublicKey []byte) error {

	if err := client.closeSocket(); nil != err {
		return err
	}
	client.address = ""
	client.serverPublicKey = nil

	if nil != serverPublicKey {
		if len(serverPublicKey) != publicKeySize {
			return fault.InvalidPublicKeyFile
		}
		if err := client.ensureKeys(); nil != err {
			return err
		}
		client.serverPublicKey = append([]byte{}, serverPublicKey...)
	}

	client.address, client.v6 = conn.CanonicalIPandPort("tcp://")

	err := client.openSocket()
	if nil != err {
		client.address = ""
	}
	return err
}

// IsConnected - true after a successful Connect
func (client *Client) IsConnected() bool {
	return "" != client.address
}

// Close - disconnect and close
func (client *Client) Close() error {
	err := client.closeSocket()
	client.address = ""
	return err
}

// Receive - next multipart message, EAGAIN when the timeout expires
func (client *Client) Receive(flags zmq.Flag) ([][]byte, error) {
	if nil == client.socket {
		return nil, fault.NotConnected
	}
	return client.socket.RecvMessageBytes(flags)
}

// String - the connected address
func (client *Client) String() string {
	return client.address
}
