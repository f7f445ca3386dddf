/*
 * MilkyGo - UCI chess engine in GO
 *
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

// Package transpositiontable implements a transposition table (cache) for a
// chess engine search. The Table type is not thread safe and needs to be
// synchronized externally if used from multiple threads; this is especially
// relevant for Resize and Clear, which must not run concurrently with a
// search probing or putting entries.
package transpositiontable

import (
	"math"
	"sync"
	"time"
	"unsafe"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/frankkopp/milky/assert"
	"github.com/frankkopp/milky/logging"
	"github.com/frankkopp/milky/types"
)

var out = message.NewPrinter(language.German)
var log = logging.GetLog("tt")

const (
	// MB is the byte size used to interpret a requested table size.
	MB = 1024 * 1024

	// MaxSizeInMB is the largest table size this engine will allocate.
	MaxSizeInMB = 65_536
)

// Entry is one slot of the table. The search score is kept in its own field
// rather than packed into the move, since a Move has only 8 unused high
// bits, not enough room for a centipawn score.
type Entry struct {
	Key   uint64
	Move  types.Move
	Value types.Value
	Depth int8
	Age   int8
	Type  types.ValueType
}

const entrySize = int(unsafe.Sizeof(Entry{}))

// Stats holds counters on table usage, exposed for UCI "info" output.
type Stats struct {
	Puts       uint64
	Collisions uint64
	Overwrites uint64
	Updates    uint64
	Probes     uint64
	Hits       uint64
	Misses     uint64
}

// Table is the transposition table itself. Create with New.
type Table struct {
	data        []Entry
	sizeInByte  uint64
	hashMask    uint64
	maxEntries  uint64
	numEntries  uint64
	Stats       Stats
}

// New creates a Table sized to the largest power-of-two entry count that
// fits within sizeInMByte.
func New(sizeInMByte int) *Table {
	tt := &Table{}
	tt.Resize(sizeInMByte)
	return tt
}

// Resize reallocates the table to the given size, clearing all entries.
func (tt *Table) Resize(sizeInMByte int) {
	if sizeInMByte > MaxSizeInMB {
		log.Error(out.Sprintf("requested TT size %d MB reduced to max %d MB", sizeInMByte, MaxSizeInMB))
		sizeInMByte = MaxSizeInMB
	}

	tt.sizeInByte = uint64(sizeInMByte) * MB
	if tt.sizeInByte == 0 {
		tt.maxEntries = 0
	} else {
		tt.maxEntries = 1 << uint64(math.Floor(math.Log2(float64(tt.sizeInByte/uint64(entrySize)))))
	}
	tt.hashMask = tt.maxEntries - 1
	tt.sizeInByte = tt.maxEntries * uint64(entrySize)
	tt.data = make([]Entry, tt.maxEntries)
	tt.numEntries = 0
	tt.Stats = Stats{}

	log.Info(out.Sprintf("TT size %d MB, capacity %d entries of %d bytes (requested %d MB)",
		tt.sizeInByte/MB, tt.maxEntries, entrySize, sizeInMByte))
}

func (tt *Table) hash(key uint64) uint64 {
	return key & tt.hashMask
}

// GetEntry returns a pointer to the slot key hashes to; the slot may be
// empty (Key == 0) or hold a different position's entry.
func (tt *Table) GetEntry(key uint64) *Entry {
	return &tt.data[tt.hash(key)]
}

// Probe returns the entry for key, or nil on a miss or hash collision. A hit
// resets the entry's age back toward zero.
func (tt *Table) Probe(key uint64) *Entry {
	tt.Stats.Probes++
	e := &tt.data[tt.hash(key)]
	if e.Key == key {
		if e.Age > 0 {
			e.Age--
		}
		tt.Stats.Hits++
		return e
	}
	tt.Stats.Misses++
	return nil
}

// Put stores a search result for key. An empty slot is always filled. A slot
// holding a different key is overwritten when the new entry is deeper, or
// equally deep and either forced or the old entry has aged past one search;
// otherwise the new entry is dropped, even when the deeper old entry is
// stale. A slot already holding key is always refreshed, since reaching
// this call means the previous probe did not satisfy the search.
func (tt *Table) Put(key uint64, move types.Move, value types.Value, depth int8, valueType types.ValueType, forced bool) {
	if assert.DEBUG {
		assert.Assert(depth >= 0, "tt: Put depth must be >= 0")
	}
	if tt.maxEntries == 0 {
		return
	}

	tt.Stats.Puts++
	e := tt.GetEntry(key)

	switch {
	case e.Key == 0:
		tt.numEntries++
	case e.Key != key:
		tt.Stats.Collisions++
		if depth < e.Depth || (depth == e.Depth && !forced && e.Age <= 1) {
			return
		}
		tt.Stats.Overwrites++
	default:
		tt.Stats.Updates++
	}

	e.Key = key
	e.Move = move
	e.Value = value
	e.Depth = depth
	e.Age = 1
	e.Type = valueType
}

// Clear empties the table without resizing it.
func (tt *Table) Clear() {
	tt.data = make([]Entry, tt.maxEntries)
	tt.numEntries = 0
	tt.Stats = Stats{}
}

// Hashfull returns how full the table is in permill, as reported by UCI.
func (tt *Table) Hashfull() int {
	if tt.maxEntries == 0 {
		return 0
	}
	return int((1000 * tt.numEntries) / tt.maxEntries)
}

// Len returns the number of occupied slots.
func (tt *Table) Len() uint64 {
	return tt.numEntries
}

// AgeEntries increments the age of every occupied slot, run once per search
// so Put can tell a stale entry from one written this search. The work is
// split across goroutines since the full table can be tens of millions of
// slots.
func (tt *Table) AgeEntries() {
	start := time.Now()
	if tt.numEntries > 0 {
		const workers = 32
		var wg sync.WaitGroup
		slice := tt.maxEntries / workers
		wg.Add(workers)
		for i := uint64(0); i < workers; i++ {
			go func(i uint64) {
				defer wg.Done()
				begin := i * slice
				end := begin + slice
				if i == workers-1 {
					end = tt.maxEntries
				}
				for n := begin; n < end; n++ {
					if tt.data[n].Key != 0 {
						tt.data[n].Age++
					}
				}
			}(i)
		}
		wg.Wait()
	}
	log.Debug(out.Sprintf("aged %d entries of %d in %d ms", tt.numEntries, len(tt.data), time.Since(start).Milliseconds()))
}

// String renders usage statistics for logging.
func (tt *Table) String() string {
	return out.Sprintf("TT: size %d MB entries %d/%d (%d permill) puts %d updates %d collisions %d "+
		"overwrites %d probes %d hits %d misses %d",
		tt.sizeInByte/MB, tt.numEntries, tt.maxEntries, tt.Hashfull(),
		tt.Stats.Puts, tt.Stats.Updates, tt.Stats.Collisions, tt.Stats.Overwrites,
		tt.Stats.Probes, tt.Stats.Hits, tt.Stats.Misses)
}
