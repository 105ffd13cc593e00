package util

import (
	"fmt"
	"os"
	"strings"
)

// Config file shapes re-stated here to avoid a circular dependency between
// this package and the engine package.

type CoordConfig struct {
	ClientAPIListenAddr     string // clients use this to contact coord
	WorkerAPIListenAddr     string // new joining workers message this addr
	ExternalAPIListenAddr   string // operational HTTP endpoint
	WebAPIListenAddr        string // grpc-web endpoint
	QueryWorkerCount        uint8
	LostMsgsThresh          uint8 // fcheck
	StepsBetweenCheckpoints uint64
}

type WorkerConfig struct {
	WorkerId              uint32
	CoordAddr             string
	WorkerAddr            string
	WorkerListenAddr      string
	FCheckAckLocalAddress string
}

type ClientConfig struct {
	ClientId   string
	CoordAddr  string
	ClientAddr string
}

const (
	WORKERS = "worker"
	CLIENT  = "client"
)

// SynchronizeConfigs rewrites every worker and client config so their
// CoordAddr fields match the coord config. Run it after editing
// coord_config.json.
func SynchronizeConfigs() error {
	files, err := os.ReadDir("config")
	if err != nil {
		return err
	}

	var coord CoordConfig
	if err := ReadJSONConfig(GetConfigPath("coord_config.json"), &coord); err != nil {
		return err
	}

	for _, file := range files {
		filename := file.Name()

		if IsClientConfig(filename) {
			var client ClientConfig
			if err := ReadJSONConfig(GetConfigPath(filename), &client); err != nil {
				return err
			}
			client.CoordAddr = coord.ClientAPIListenAddr
			if err := WriteJSONConfig(GetConfigPath(filename), client); err != nil {
				return err
			}
		}
		if IsWorkerConfig(filename) {
			var worker WorkerConfig
			if err := ReadJSONConfig(GetConfigPath(filename), &worker); err != nil {
				return err
			}
			worker.CoordAddr = coord.WorkerAPIListenAddr
			if err := WriteJSONConfig(GetConfigPath(filename), worker); err != nil {
				return err
			}
		}
	}
	return nil
}

func IsClientConfig(filename string) bool {
	return strings.HasPrefix(filename, CLIENT)
}

func IsWorkerConfig(filename string) bool {
	return strings.HasPrefix(filename, WORKERS)
}

func GetConfigPath(filename string) string {
	return fmt.Sprintf("config/%s", filename)
}
