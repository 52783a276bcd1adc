package main

import (
	"fmt"
	"os"

	"github.com/selectdb/observer/pkg/version"
)

func printVersion() {
	fmt.Println(version.GetVersion())
	os.Exit(0)
}
