package util

import (
	"encoding/json"
	"fmt"
	"net"
	"net/rpc"
	"os"
)

func ReadJSONConfig(filename string, config interface{}) error {
	configData, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	return json.Unmarshal(configData, config)
}

func WriteJSONConfig(filename string, config interface{}) error {
	configData, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, append(configData, '\n'), 0644)
}

func CheckErr(err error, errfmsg string, fargs ...interface{}) {
	if err != nil {
		fmt.Fprintf(os.Stderr, errfmsg, fargs...)
		os.Exit(1)
	}
}

func DialTCPCustom(localAddr string, remoteAddr string) (*net.TCPConn, error) {
	var laddr *net.TCPAddr = nil
	var err error

	if localAddr != "" {
		laddr, err = net.ResolveTCPAddr("tcp", localAddr)
		CheckErr(err, "could not resolve local address: %v", localAddr)
	}

	raddr, err := net.ResolveTCPAddr("tcp", remoteAddr)
	CheckErr(err, "could not resolve remote address: %v", remoteAddr)

	return net.DialTCP("tcp", laddr, raddr)
}

func DialRPC(remoteAddr string) (*rpc.Client, error) {
	conn, err := DialTCPCustom("", remoteAddr)
	if err != nil {
		return nil, err
	}
	return rpc.NewClient(conn), nil
}
