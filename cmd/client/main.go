package main

import (
	"context"
	"io"
	"log"
	"os"

	arg "github.com/alexflint/go-arg"

	"tunkrank/gas"
	"tunkrank/graph"
	"tunkrank/util"
)

var args struct {
	Table       string  `arg:"positional,required" help:"graph table to run over"`
	Provider    string  `arg:"-p" help:"graph store provider: dynamodb, mysql, sqlserver or mongodb"`
	RetweetProb float64 `arg:"--prob" help:"probability that a tweet is retweeted"`
	Tolerance   float64 `arg:"--tol" help:"convergence tolerance for the dynamic engine"`
	Iterations  uint64  `arg:"--iterations" help:"fixed round count; 0 runs to convergence"`
	SavePrefix  string  `arg:"--saveprefix" help:"write scores to <prefix>_<i>_of_<n> files"`
	Watch       bool    `arg:"-w" help:"stream per-superstep progress"`
}

func main() {
	args.Provider = graph.ProviderDynamoDB
	arg.MustParse(&args)

	var config util.ClientConfig
	err := util.ReadJSONConfig("config/client_config.json", &config)
	util.CheckErr(err, "Error reading client config: %v\n", err)

	// log to both console and file
	logFile, err := os.OpenFile(
		"tunkrank.log", os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644,
	)
	if err != nil {
		log.Fatal(err)
	}
	defer logFile.Close()
	mw := io.MultiWriter(os.Stdout, logFile)
	log.SetOutput(mw)
	log.SetPrefix(config.ClientId + ": ")

	client := gas.NewClient(config.ClientId)
	err = client.Start(config.CoordAddr)
	util.CheckErr(err, "Error connecting to coord: %v\n", err)
	defer client.Close()

	query := gas.Query{
		ClientId:    config.ClientId,
		TableName:   args.Table,
		Provider:    args.Provider,
		RetweetProb: args.RetweetProb,
		Tolerance:   args.Tolerance,
		Iterations:  args.Iterations,
		SavePrefix:  args.SavePrefix,
	}

	if args.Watch {
		updates, err := client.WatchProgress(context.Background())
		if err != nil {
			log.Printf("could not watch progress: %v\n", err)
		} else {
			go func() {
				for progress := range updates {
					log.Printf(
						"superstep %v: %v active workers, %v signals\n",
						progress.SuperstepNumber, progress.ActiveWorkers,
						progress.MessagesSent,
					)
				}
			}()
		}
	}

	result, err := client.SendQuery(context.Background(), query)
	util.CheckErr(err, "Error running query: %v\n", err)

	log.Printf(
		"computed scores for %v vertices in %v supersteps (%.3fs)\n",
		result.NumVertices, result.Supersteps, result.RuntimeSecs,
	)
	for _, file := range result.OutputFiles {
		log.Printf("wrote %v\n", file)
	}
}
