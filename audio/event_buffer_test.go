package audio

import (
	"context"
	"testing"
)

// Push a flattened cycle the way the player schedules one: two note onsets
// and a sample onset, then drain block by block like Instrument.Process.
func TestEventBufferBlockConsumption(t *testing.T) {
	buf := newEventBuffer(8)
	buf.push(event{offset: 0, freq: 261.63, gain: 0.8})
	buf.push(event{offset: blockSize + 3, sound: "bd", pan: -1})
	buf.push(event{offset: 3 * blockSize, freq: 392, gain: 0.8})

	var events []event
	drain := func(untilOffset int) int {
		n := 0
		buf.iter(untilOffset, func(ev event) {
			events = append(events, ev)
			n++
		})
		return n
	}

	// Each block picks up exactly the onsets that fall inside it.
	if want, got := 1, drain(blockSize); want != got {
		t.Fatalf("first block: want %v event, got %v", want, got)
	}
	if events[0].freq != 261.63 {
		t.Errorf("first block: wrong event %+v", events[0])
	}
	if want, got := 1, drain(2*blockSize); want != got {
		t.Fatalf("second block: want %v event, got %v", want, got)
	}
	if ev := events[1]; ev.sound != "bd" || ev.pan != -1 {
		t.Errorf("second block: payload lost in transit: %+v", ev)
	}
	if want, got := 0, drain(3*blockSize); want != got {
		t.Fatalf("third block: want no events, got %v", got)
	}
	if want, got := 1, drain(4*blockSize); want != got {
		t.Fatalf("fourth block: want %v event, got %v", want, got)
	}
}

// A pattern thread pushing while the audio thread drains must hand every
// event over exactly once, in order, payload intact.
func TestEventBufferHandoff(t *testing.T) {
	buf := newEventBuffer(8)

	done := make(chan struct{})
	ctx, cancel := context.WithCancel(context.Background())

	var events []event
	go func() {
		for {
			select {
			case <-ctx.Done():
				buf.iter(-1, func(ev event) {
					events = append(events, ev)
				})
				done <- struct{}{}
				return
			default:
				buf.iter(-1, func(ev event) {
					events = append(events, ev)
				})
			}
		}
	}()

	const numEvents = 1_000_000
	for n := 0; n < numEvents; n++ {
		buf.push(event{offset: n, freq: float64(n)})
	}

	cancel()
	<-done

	if len(events) != numEvents {
		t.Fatalf("wrong number of events: want %v, got %v", numEvents, len(events))
	}
	for n, ev := range events {
		if ev.offset != n || ev.freq != float64(n) {
			t.Fatalf("event %d arrived out of order or mangled: %+v", n, ev)
		}
	}
}
