// Package main provides the retroshelf CLI application.
// retroshelf keeps a catalog of a retro video game collection.
package main

import "github.com/gnames/retroshelf/cmd"

func main() {
	cmd.Execute()
}
