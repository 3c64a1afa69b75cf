// Package models defines the records the cinema client works with: the
// signed-in user and credential, and the catalogue entities shown in list
// views. JSON tags use the snake_case names produced by package normalize.
package models
