package gas

import (
	"bytes"
	"database/sql"
	"encoding/gob"
	"fmt"
	"log"

	_ "github.com/mattn/go-sqlite3"

	"tunkrank/util"
)

// VertexCheckpoint is the durable state of one vertex: its score, its in-edge
// mirrors, whether it is signaled for the next superstep, and whatever the
// vertex program chose to save. In synchronous mode ProgramState is empty
// because the program saves nothing.
type VertexCheckpoint struct {
	CurrentValue float64
	InEdges      map[uint64]InEdge
	IsActive     bool
	ProgramState []byte
}

type Checkpoint struct {
	SuperStepNumber uint64
	CheckpointState map[uint64]VertexCheckpoint
	Inbox           map[uint64][]Message // buffered batches, keyed by consuming superstep
}

// Checkpoint snapshots every vertex in the partition.
func (e *Engine) Checkpoint() (map[uint64]VertexCheckpoint, error) {
	state := make(map[uint64]VertexCheckpoint, len(e.vertices))
	for id, v := range e.vertices {
		mirrors := make(map[uint64]InEdge, len(v.InEdges))
		for sourceId, in := range v.InEdges {
			mirrors[sourceId] = *in
		}

		var buf bytes.Buffer
		if err := e.program(id).Save(gob.NewEncoder(&buf)); err != nil {
			return nil, fmt.Errorf("saving program state for vertex %v: %w", id, err)
		}

		_, active := e.active[id]
		state[id] = VertexCheckpoint{
			CurrentValue: v.Score,
			InEdges:      mirrors,
			IsActive:     active,
			ProgramState: buf.Bytes(),
		}
	}
	return state, nil
}

// Restore rewinds the partition to a checkpointed superstep. Topology is
// untouched; only scores, mirrors, activation and program state are reset.
func (e *Engine) Restore(state map[uint64]VertexCheckpoint, superStep uint64) error {
	e.active = make(map[uint64]struct{})
	for id, saved := range state {
		v, ok := e.vertices[id]
		if !ok {
			return fmt.Errorf("checkpoint contains unknown vertex %v", id)
		}
		v.Score = saved.CurrentValue
		for sourceId, mirror := range saved.InEdges {
			if in, ok := v.InEdges[sourceId]; ok {
				*in = mirror
			}
		}
		if saved.IsActive {
			e.active[id] = struct{}{}
		}
		if len(saved.ProgramState) > 0 {
			dec := gob.NewDecoder(bytes.NewReader(saved.ProgramState))
			if err := e.program(id).Load(dec); err != nil {
				return fmt.Errorf("loading program state for vertex %v: %w", id, err)
			}
		}
	}
	e.superStep = superStep
	return nil
}

func (w *Worker) getConnection() (*sql.DB, error) {
	// file name carries the worker id so workers on one host do not collide
	db, err := sql.Open(
		"sqlite3", fmt.Sprintf("checkpoints%v.db", w.config.WorkerId),
	)
	if err != nil {
		log.Printf("getConnection: database error: %v\n", err)
		return nil, err
	}
	return db, nil
}

func (w *Worker) initializeCheckpoints() error {
	db, err := w.getConnection()
	if err != nil {
		return err
	}
	defer db.Close()

	const createCheckpoints string = `
	  CREATE TABLE IF NOT EXISTS checkpoints (
	  lastCheckpointNumber INTEGER NOT NULL PRIMARY KEY,
	  checkpointState BLOB NOT NULL,
	  inboxState BLOB NOT NULL
	  );`

	if _, err := db.Exec(createCheckpoints); err != nil {
		log.Printf("initializeCheckpoints: failed to execute command: %v\n", err)
		return err
	}
	return nil
}

func (w *Worker) resetCheckpoints() error {
	db, err := w.getConnection()
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.Exec("delete from checkpoints"); err != nil {
		log.Printf("resetCheckpoints: failed to execute command: %v\n", err)
		return err
	}
	return nil
}

func (w *Worker) checkpoint(superStepNum uint64) (Checkpoint, error) {
	state, err := w.engine.Checkpoint()
	if err != nil {
		return Checkpoint{}, err
	}
	w.mu.Lock()
	inbox := make(map[uint64][]Message, len(w.inbox))
	for round, msgs := range w.inbox {
		inbox[round] = append([]Message(nil), msgs...)
	}
	w.mu.Unlock()

	return Checkpoint{
		SuperStepNumber: superStepNum,
		CheckpointState: state,
		Inbox:           inbox,
	}, nil
}

func (w *Worker) storeCheckpoint(checkpoint Checkpoint) (Checkpoint, error) {
	db, err := w.getConnection()
	if err != nil {
		return Checkpoint{}, err
	}
	defer db.Close()

	// drop any checkpoints at or past this superstep from an earlier attempt
	if _, err := db.Exec(
		"delete from checkpoints where lastCheckpointNumber>=?",
		checkpoint.SuperStepNumber,
	); err != nil {
		log.Printf("storeCheckpoint: failed to execute command: %v\n", err)
		return Checkpoint{}, err
	}

	var stateBuf bytes.Buffer
	if err := gob.NewEncoder(&stateBuf).Encode(checkpoint.CheckpointState); err != nil {
		log.Printf("storeCheckpoint: encode error: %v\n", err)
		return Checkpoint{}, err
	}
	var inboxBuf bytes.Buffer
	if err := gob.NewEncoder(&inboxBuf).Encode(checkpoint.Inbox); err != nil {
		log.Printf("storeCheckpoint: encode error: %v\n", err)
		return Checkpoint{}, err
	}

	if _, err := db.Exec(
		"INSERT INTO checkpoints VALUES(?,?,?)",
		checkpoint.SuperStepNumber, stateBuf.Bytes(), inboxBuf.Bytes(),
	); err != nil {
		log.Printf("storeCheckpoint: error inserting into db: %v\n", err)
		return Checkpoint{}, err
	}

	// notify coord about the latest checkpoint saved
	coordClient, err := util.DialRPC(w.config.CoordAddr)
	if err != nil {
		log.Printf(
			"storeCheckpoint: worker %v could not dial coord addr %v: %v\n",
			w.LogicalId, w.config.CoordAddr, err,
		)
		return Checkpoint{}, err
	}
	defer coordClient.Close()

	checkpointMsg := CheckpointMsg{
		SuperStepNumber: checkpoint.SuperStepNumber,
		WorkerId:        w.LogicalId,
	}
	var reply CheckpointMsg
	if err := coordClient.Call("Coord.UpdateCheckpoint", checkpointMsg, &reply); err != nil {
		log.Printf(
			"storeCheckpoint: worker %v could not call UpdateCheckpoint: %v\n",
			w.LogicalId, err,
		)
		return Checkpoint{}, err
	}

	log.Printf(
		"storeCheckpoint: worker %v saved superstep %v\n",
		w.LogicalId, checkpoint.SuperStepNumber,
	)
	return checkpoint, nil
}

func (w *Worker) retrieveCheckpoint(superStepNumber uint64) (Checkpoint, error) {
	db, err := w.getConnection()
	if err != nil {
		return Checkpoint{}, err
	}
	defer db.Close()

	res := db.QueryRow(
		"SELECT * FROM checkpoints WHERE lastCheckpointNumber=?", superStepNumber,
	)
	checkpoint := Checkpoint{}
	var stateBuf []byte
	var inboxBuf []byte
	if err := res.Scan(&checkpoint.SuperStepNumber, &stateBuf, &inboxBuf); err != nil {
		log.Printf("retrieveCheckpoint: scan error: %v\n", err)
		return Checkpoint{}, err
	}

	var checkpointState map[uint64]VertexCheckpoint
	if err := gob.NewDecoder(bytes.NewBuffer(stateBuf)).Decode(&checkpointState); err != nil {
		log.Printf("retrieveCheckpoint: decode error: %v\n", err)
		return Checkpoint{}, err
	}
	checkpoint.CheckpointState = checkpointState

	var inbox map[uint64][]Message
	if err := gob.NewDecoder(bytes.NewBuffer(inboxBuf)).Decode(&inbox); err != nil {
		log.Printf("retrieveCheckpoint: decode error: %v\n", err)
		return Checkpoint{}, err
	}
	checkpoint.Inbox = inbox

	return checkpoint, nil
}
