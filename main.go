package main

import (
	"billora-backend/cmd"
)

func main() {
	cmd.Execute()
}
