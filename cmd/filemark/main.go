// Command filemark creates and resolves relocatable file bookmarks.
package main

import "github.com/mesh-intelligence/filemark/internal/cli"

func main() {
	cli.Execute()
}
