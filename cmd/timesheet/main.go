package main

import "github.com/warp/timesheet-engine/cli"

func main() {
	cli.Execute()
}
