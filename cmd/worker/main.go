package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"tunkrank/gas"
	"tunkrank/util"
)

func main() {
	workerNum := flag.Int("n", 1, "which workerN_config.json to run")
	flag.Parse()

	var config util.WorkerConfig
	configPath := fmt.Sprintf("config/worker%v_config.json", *workerNum)
	err := util.ReadJSONConfig(configPath, &config)
	util.CheckErr(err, "Error reading worker config %v: %v\n", configPath, err)

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
	log.SetPrefix(fmt.Sprintf("worker %v: ", config.WorkerId))

	worker := gas.NewWorker(gas.WorkerConfig{
		WorkerId:              config.WorkerId,
		CoordAddr:             config.CoordAddr,
		WorkerAddr:            config.WorkerAddr,
		WorkerListenAddr:      config.WorkerListenAddr,
		FCheckAckLocalAddress: config.FCheckAckLocalAddress,
	})
	err = worker.Start()
	util.CheckErr(err, "Error starting worker %v: %v\n", config.WorkerId, err)
}
