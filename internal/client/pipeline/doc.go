// Package pipeline turns a raw entity list into the slice a view displays.
//
// Apply is pure: filter (AND of every non-empty filter), then a stable sort,
// then a page window. The same inputs always give the same page and the input
// slice is never modified. State, Tracker and View hold the per-view state
// around it: current filters, sort and page, and the identity of the latest
// fetch so a slow response cannot overwrite a newer one.
package pipeline
