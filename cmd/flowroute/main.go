// SPDX-License-Identifier: MIT

// Command flowroute routes demands over a capacitated network read from a
// text instance and prints the committed flows.
//
//	flowroute solve --input instance.txt --output flows.txt --policy min_dist
//	flowroute validate --input instance.txt --flows flows.txt
package main

import (
	"os"
	"time"
)

func main() {
	// the solve budget counts from process start, input parsing included
	started := time.Now()
	if err := newRootCmd(started).Execute(); err != nil {
		os.Exit(1)
	}
}
