package main

import "github.com/Ariel-quanyu/spacegreen/cmd/gs/root"

func main() {
	root.Execute()
}
