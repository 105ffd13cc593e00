package main

import (
	"io"
	"log"
	"os"

	"tunkrank/gas"
	"tunkrank/util"
)

func main() {
	var config util.CoordConfig
	err := util.ReadJSONConfig("config/coord_config.json", &config)
	util.CheckErr(err, "Error reading coord config: %v\n", err)

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
	log.SetPrefix("coord: ")

	coord := gas.NewCoord()
	err = coord.Start(gas.CoordConfig{
		ClientAPIListenAddr:     config.ClientAPIListenAddr,
		WorkerAPIListenAddr:     config.WorkerAPIListenAddr,
		ExternalAPIListenAddr:   config.ExternalAPIListenAddr,
		WebAPIListenAddr:        config.WebAPIListenAddr,
		QueryWorkerCount:        config.QueryWorkerCount,
		LostMsgsThresh:          config.LostMsgsThresh,
		StepsBetweenCheckpoints: config.StepsBetweenCheckpoints,
	})
	util.CheckErr(err, "Error starting coord: %v\n", err)
}
