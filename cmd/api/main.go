package main

import (
	"context"
	"log"

	"github.com/everestcart/storefront-api/internal/app/api"
)

func main() {
	if err := api.Run(context.Background()); err != nil {
		log.Fatalf("storefront api exited: %v", err)
	}
}
