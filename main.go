package main

import "broad-babel/cmd"

func main() {
	cmd.Execute()
}
