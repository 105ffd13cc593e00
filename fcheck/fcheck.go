// Package fchecker is a UDP heartbeat/ack failure detector. Every node runs
// the responder side; the coord additionally monitors each worker. A node is
// declared failed after LostMsgThresh consecutive unacked heartbeats.
package fchecker

import (
	"bytes"
	"encoding/gob"
	"log"
	"net"
	"time"
)

type HBeatMessage struct {
	EpochNonce uint64 // identifies this fchecker instance/epoch
	SeqNum     uint64 // unique per heartbeat within an epoch
}

type AckMessage struct {
	HBEatEpochNonce uint64
	HBEatSeqNum     uint64
}

// FailureDetected is delivered on the notify channel when the monitored node
// misses too many acks.
type FailureDetected struct {
	UDPIpPort string
	Timestamp time.Time
}

type StartStruct struct {
	AckLocalIPAckLocalPort       string
	EpochNonce                   uint64
	HBeatLocalIPHBeatLocalPort   string
	HBeatRemoteIPHBeatRemotePort string
	LostMsgThresh                uint8
	ServerId                     uint32
}

const ackTimeout = 3 * time.Second

var (
	stopResponder chan struct{}
	stopMonitor   chan struct{}
)

func encodeMessage(msg interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(msg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// respondToHeartbeats acks every heartbeat it receives until the connection
// closes or Stop is called.
func respondToHeartbeats(conn *net.UDPConn, serverId uint32, stop chan struct{}) {
	defer conn.Close()
	buf := make([]byte, 1024)
	for {
		select {
		case <-stop:
			log.Printf("fcheck for server %v: responder stopped\n", serverId)
			return
		default:
		}

		conn.SetReadDeadline(time.Now().Add(time.Second))
		n, srcAddr, err := conn.ReadFromUDP(buf)
		if err != nil {
			if e, ok := err.(net.Error); ok && e.Timeout() {
				continue
			}
			return
		}

		var hbeat HBeatMessage
		if err := gob.NewDecoder(bytes.NewBuffer(buf[0:n])).Decode(&hbeat); err != nil {
			log.Printf("fcheck: responder: decode error: %v\n", err)
			continue
		}

		ack, err := encodeMessage(AckMessage{
			HBEatEpochNonce: hbeat.EpochNonce,
			HBEatSeqNum:     hbeat.SeqNum,
		})
		if err != nil {
			log.Printf("fcheck: responder: encode error: %v\n", err)
			continue
		}
		if _, err := conn.WriteToUDP(ack, srcAddr); err != nil {
			log.Printf("fcheck: responder: UDP write error: %v\n", err)
			return
		}
	}
}

// monitor sends a heartbeat, waits one timeout for a matching ack, and counts
// consecutive losses. Reaching the threshold pushes exactly one notification.
func monitor(arg StartStruct, notifyCh chan FailureDetected, stop chan struct{}) {
	localAddr, err := net.ResolveUDPAddr("udp", arg.HBeatLocalIPHBeatLocalPort)
	if err != nil {
		log.Printf("fcheck: monitor: resolve local addr error: %v\n", err)
		return
	}
	remoteAddr, err := net.ResolveUDPAddr("udp", arg.HBeatRemoteIPHBeatRemotePort)
	if err != nil {
		log.Printf("fcheck: monitor: resolve remote addr error: %v\n", err)
		return
	}
	conn, err := net.DialUDP("udp", localAddr, remoteAddr)
	if err != nil {
		log.Printf("fcheck: monitor: UDP dialing error: %v\n", err)
		return
	}
	defer conn.Close()

	log.Printf(
		"fcheck for server %v: monitoring %v from %v\n",
		arg.ServerId, conn.RemoteAddr(), conn.LocalAddr(),
	)

	lostMsgs := uint8(0)
	seqNum := uint64(0)
	buf := make([]byte, 1024)

	for {
		select {
		case <-stop:
			log.Printf("fcheck for server %v: monitor stopped\n", arg.ServerId)
			return
		default:
		}

		hbeat, err := encodeMessage(HBeatMessage{
			EpochNonce: arg.EpochNonce,
			SeqNum:     seqNum,
		})
		if err != nil {
			log.Printf("fcheck: monitor: encode error: %v\n", err)
			return
		}
		if _, err := conn.Write(hbeat); err != nil {
			log.Printf("fcheck: monitor: UDP write error: %v\n", err)
			return
		}

		conn.SetReadDeadline(time.Now().Add(ackTimeout))
		n, err := conn.Read(buf)
		if err != nil {
			if e, ok := err.(net.Error); ok && e.Timeout() {
				lostMsgs++
				if lostMsgs >= arg.LostMsgThresh {
					log.Printf(
						"fcheck for server %v: failure detected at %v\n",
						arg.ServerId, arg.HBeatRemoteIPHBeatRemotePort,
					)
					notifyCh <- FailureDetected{
						UDPIpPort: arg.HBeatRemoteIPHBeatRemotePort,
						Timestamp: time.Now(),
					}
					return
				}
				continue
			}
			log.Printf("fcheck: monitor: read error: %v\n", err)
			return
		}

		var ack AckMessage
		if err := gob.NewDecoder(bytes.NewBuffer(buf[0:n])).Decode(&ack); err != nil {
			log.Printf("fcheck: monitor: decode error: %v\n", err)
			continue
		}
		if ack.HBEatEpochNonce != arg.EpochNonce || ack.HBEatSeqNum != seqNum {
			continue // stale or foreign ack
		}
		lostMsgs = 0
		seqNum++
	}
}

// Start runs the responder on AckLocalIPAckLocalPort and, when the heartbeat
// fields are set, also monitors the remote node. The returned addr carries
// the responder's bound address (useful when the port was 0); notifyCh is nil
// in responder-only mode.
func Start(arg StartStruct) (
	notifyCh <-chan FailureDetected, addr string, err error,
) {
	ackAddr, err := net.ResolveUDPAddr("udp", arg.AckLocalIPAckLocalPort)
	if err != nil {
		log.Printf("fcheck: Start: could not resolve ack address: %v\n", err)
		return nil, "", err
	}
	conn, err := net.ListenUDP("udp", ackAddr)
	if err != nil {
		log.Printf("fcheck: Start: could not listen for heartbeats: %v\n", err)
		return nil, "", err
	}

	stopResponder = make(chan struct{})
	go respondToHeartbeats(conn, arg.ServerId, stopResponder)

	if arg.HBeatLocalIPHBeatLocalPort == "" {
		// responder-only mode
		return nil, conn.LocalAddr().String(), nil
	}

	stopMonitor = make(chan struct{})
	notify := make(chan FailureDetected, 1)
	go monitor(arg, notify, stopMonitor)

	return notify, conn.LocalAddr().String(), nil
}

// Stop shuts down the responder and any monitor started by Start.
func Stop() {
	if stopResponder != nil {
		close(stopResponder)
		stopResponder = nil
	}
	if stopMonitor != nil {
		close(stopMonitor)
		stopMonitor = nil
	}
}
