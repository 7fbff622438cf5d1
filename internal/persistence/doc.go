// Package persistence saves and restores the whole deck as one JSON blob
// under a fixed key of a store.KVStore. It is the only place that knows the
// persisted layout:
//
//	{ "<groupId>": { "id": 1, "name": "...", "cards": [ {"id": 101, "category": "...",
//	  "question": "...", "answer": "...", "easyCount": 0} ] } }
//
// ID counters are never written; Load derives them from the content.
package persistence
