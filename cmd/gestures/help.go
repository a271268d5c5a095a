// SPDX-License-Identifier: Unlicense OR MIT

package main

const mainUsage = `The gestures command feeds pointer input to a set of gesture
recognizers: swipe, long press, rotate and zoom. All recognizers see
the same input and report their notifications in the order they
happen.

Input comes from one of three places:

	gestures replay <script.yaml>   scripted events, printed as JSON lines
	gestures tui                    the mouse, in a terminal
	gestures serve                  WebSocket clients

The -c flag names a TOML file selecting the recognizers and their
parameters:

	[gestures]
	enabled = ["swipe", "long-press", "rotate", "zoom"]

	[longpress]
	delay_ms = 500
	threshold = 32

	[log]
	level = "info"

	[server]
	addr = "localhost:8085"
	allow_any_origin = false
`
