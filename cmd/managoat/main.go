package main

import (
	"context"

	"github.com/AnneKitsune/inventory-managoat/internal/interfaces/cli"
)

func main() {
	cli.Execute(context.Background())
}
