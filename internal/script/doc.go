// Package script parses interaction scripts and replays them against a
// session tick by tick.
//
// A script is one command per line (or separated by ';'), with '#' comments:
//
//	resize 800 600
//	show
//	wait 60        # let the entry finish
//	grab 120 300
//	drag 180 220
//	release
//	scatter
//	wait 600
//
// Commands between waits are issued together before the next tick.
package script
