package main

import "github.com/yuzeguitarist/loveqr/internal/cmd"

func main() {
	cmd.Execute()
}
