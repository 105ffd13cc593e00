package main

import (
	"context"
	"io"
	"log"
	"os"

	arg "github.com/alexflint/go-arg"

	"tunkrank/graph"
)

var args struct {
	Table     string  `arg:"positional,required" help:"table or collection to create"`
	Provider  string  `arg:"-p" help:"graph store provider: dynamodb, mysql, sqlserver or mongodb"`
	GraphFile string  `arg:"-f,--file" help:"tab-separated edge list to ingest"`
	Powerlaw  uint64  `arg:"--powerlaw" help:"generate a synthetic power-law graph with N vertices instead of reading a file"`
	Alpha     float64 `arg:"--alpha" help:"power-law exponent for synthetic graphs"`
	Seed      int64   `arg:"--seed" help:"RNG seed for synthetic graphs"`
}

func main() {
	args.Provider = graph.ProviderDynamoDB
	args.Alpha = 2.1
	arg.MustParse(&args)

	logFile, err := os.OpenFile(
		"tunkrank.log", os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644,
	)
	if err != nil {
		log.Fatal(err)
	}
	defer logFile.Close()
	mw := io.MultiWriter(os.Stdout, logFile)
	log.SetOutput(mw)
	log.SetPrefix("loader: ")

	if args.GraphFile == "" && args.Powerlaw == 0 {
		log.Fatal("either --file or --powerlaw must be given")
	}

	var records []graph.VertexRecord
	if args.GraphFile != "" {
		records, err = graph.ParseInputGraph(args.GraphFile)
		if err != nil {
			log.Fatalf("could not parse %v: %v\n", args.GraphFile, err)
		}
		log.Printf("parsed %v vertices from %v\n", len(records), args.GraphFile)
	} else {
		records = graph.SyntheticPowerlaw(args.Powerlaw, args.Alpha, args.Seed)
		log.Printf(
			"generated %v vertices (powerlaw alpha=%v seed=%v)\n",
			len(records), args.Alpha, args.Seed,
		)
	}

	store, err := graph.OpenStore(args.Provider)
	if err != nil {
		log.Fatalf("could not open %v store: %v\n", args.Provider, err)
	}

	ctx := context.Background()
	if err := store.CreateTable(ctx, args.Table); err != nil {
		log.Printf("create table: %v (continuing; table may already exist)\n", err)
	}
	if err := store.AddGraph(ctx, args.Table, records); err != nil {
		log.Fatalf("could not ingest graph: %v\n", err)
	}
	log.Printf("ingested %v vertices into %v/%v\n", len(records), args.Provider, args.Table)
}
