// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/bitmark-inc/ledgerd/transferrecord"
)

// transfers in recorded order, one JSON object per history slot
type transferItem struct {
	Index    uint64                  `json:"index"`
	Transfer transferrecord.Transfer `json:"transfer"`
}

type history interface {
	History() ([]transferrecord.Transfer, uint64)
}

// write the whole history as a JSON array
func dumpTransfers(fd io.Writer, l history) error {

	transfers, count := l.History()

	fmt.Fprintf(fd, "[\n")
	for i, transfer := range transfers {
		s, err := json.MarshalIndent(transferItem{
			Index:    uint64(i),
			Transfer: transfer,
		}, "  ", "  ")
		if nil != err {
			return err
		}

		separator := ","
		if i == len(transfers)-1 {
			separator = ""
		}
		fmt.Fprintf(fd, "  %s%s\n", s, separator)
	}
	fmt.Fprintf(fd, "]\n")

	if count != uint64(len(transfers)) {
		return fmt.Errorf("count: %d does not match history length: %d", count, len(transfers))
	}
	return nil
}
