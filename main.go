/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/seqard/gqlint/cmd"

func main() {
	cmd.Execute()
}
