// Package domain contains the core entities of the flashcard deck: groups,
// the cards they own, and the application state that ties them together with
// its ID counters. It is independent of any storage or presentation concern.
package domain
