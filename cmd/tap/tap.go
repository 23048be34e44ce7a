package main

import "github.com/tapbuild/tap/cmd/tap/internal"

func main() {
	internal.Execute()
}
