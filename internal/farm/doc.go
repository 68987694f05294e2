// Package farm is the farming simulation core: the tile grid, crops, the
// player state machine and the day/night cycle. It has no knowledge of
// terminals, timers or storage; a game loop drives World.Update at a fixed
// rate and renderers read Snapshots.
package farm
