package main

import "github.com/yyyoichi/errdetect/cmd/errdetect/cmd"

func main() {
	cmd.Execute()
}
