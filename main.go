package main

import "github.com/thereayou/bookswap/cmd/server"

func main() {
	server.NewServer().Run()
}
