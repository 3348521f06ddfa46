package main

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"
)

type telemetryCounters struct {
	bytesSent             atomic.Uint64
	snapshotsSent         atomic.Uint64
	tickDurationMillis    atomic.Int64
	lastBroadcastBytes    atomic.Uint64
	lastBroadcastEntities atomic.Uint64
	debug                 bool
}

type telemetrySnapshot struct {
	BytesSent     uint64 `json:"bytesSent"`
	SnapshotsSent uint64 `json:"snapshotsSent"`
	TickDuration  int64  `json:"tickDurationMillis"`
	LastBytes     uint64 `json:"lastBroadcastBytes"`
	LastEntities  uint64 `json:"lastBroadcastEntities"`
}

func newTelemetryCounters() *telemetryCounters {
	t := &telemetryCounters{}
	if os.Getenv("DEBUG_TELEMETRY") == "1" {
		t.debug = true
	}
	return t
}

func (t *telemetryCounters) RecordBroadcast(bytes, entities int) {
	if bytes < 0 {
		bytes = 0
	}
	if entities < 0 {
		entities = 0
	}
	t.bytesSent.Add(uint64(bytes))
	t.snapshotsSent.Add(1)
	t.lastBroadcastBytes.Store(uint64(bytes))
	t.lastBroadcastEntities.Store(uint64(entities))
	if t.debug {
		fmt.Fprintf(os.Stderr, "telemetry: broadcast bytes=%d entities=%d\n", bytes, entities)
	}
}

func (t *telemetryCounters) RecordTickDuration(duration time.Duration) {
	t.tickDurationMillis.Store(duration.Milliseconds())
}

func (t *telemetryCounters) Snapshot() telemetrySnapshot {
	return telemetrySnapshot{
		BytesSent:     t.bytesSent.Load(),
		SnapshotsSent: t.snapshotsSent.Load(),
		TickDuration:  t.tickDurationMillis.Load(),
		LastBytes:     t.lastBroadcastBytes.Load(),
		LastEntities:  t.lastBroadcastEntities.Load(),
	}
}
