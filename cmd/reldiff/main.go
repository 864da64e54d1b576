// Copyright © 2018 One Concern

package main

import (
	"github.com/oneconcern/reldiff/cmd/reldiff/cmd"
)

func main() {
	cmd.Execute()
}
