// Command smartcache classifies Go routines as functional and caches their results.
package main

import "github.com/mouse-blink/smartcache/cmd"

func main() {
	cmd.Execute()
}
