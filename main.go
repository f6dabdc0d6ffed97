package main

import "github.com/vishva1703/Nanosingapore-sub000/cmd/nsg"

func main() {
	nsg.Execute()
}
