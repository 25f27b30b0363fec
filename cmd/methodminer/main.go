package main

import "github.com/NguyenThaiVu/methodminer/internal/cli"

func main() {
	cli.Execute()
}
