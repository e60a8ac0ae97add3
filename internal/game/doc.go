// Package game turns key presses into card moves.
//
// A Machine holds the current Selection and the transient notice. Each key
// first clears the notice, then either advances the selection or, once a
// source and destination are both known, runs Execute against the Engine.
// Every rejection is recovered here and surfaced only as notice text.
package game
