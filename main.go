// SPDX-License-Identifier: MPL-2.0

package main

import "github.com/gatewaynode/flashbrain/cmd/flashbrain"

func main() {
	cmd.Execute()
}
