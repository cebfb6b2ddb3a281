package lshstore_test

import (
	"context"
	"fmt"

	"github.com/hupe1980/lshstore"
)

func ExampleOpen() {
	ctx := context.Background()

	store, err := lshstore.Open(ctx, lshstore.Config{
		Memory: &lshstore.MemoryConfig{},
	}, 0)
	if err != nil {
		panic(err)
	}
	defer store.Close()

	_ = store.AppendValue(ctx, "bucket1", []float64{1, 2, 3})
	_ = store.AppendValue(ctx, "bucket1", []float64{4, 5, 6})

	list, _ := store.GetList(ctx, "bucket1")
	for _, entry := range list {
		fmt.Println(entry)
	}
	// Output:
	// [1 2 3]
	// [4 5 6]
}
